package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"cogcompress/internal/config"
	"cogcompress/internal/descriptor"
	"cogcompress/internal/instance"
	"cogcompress/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

const repositoryName = "cognitive-compressor"

// app carries the state shared by every subcommand of one invocation.
type app struct {
	flags struct {
		root       string
		configPath string
		logLevel   string
		logFormat  string
	}
	cfg    config.Config
	clock  instance.Clock
	logger *slog.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   repositoryName,
		Short: "Generate timestamped, integrity-checked instances of cognitive-function descriptors",
		Long: "cognitive-compressor loads <name>-core-logic.json descriptors, stamps them with a UTC\n" +
			"timestamp, an integrity hash over the descriptor content and a per-execution\n" +
			"instance hash, and optionally records each instance as a trace file.",
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           version,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Usage()
			return errors.New("a command is required")
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.flags.root, "root", ".", "Directory holding the descriptor and trace directories")
	f.StringVar(&a.flags.configPath, "config", "", "Optional YAML config file")
	f.StringVar(&a.flags.logLevel, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
	f.StringVar(&a.flags.logFormat, "log-format", config.DefaultLogFormat, "Log format: text or json")

	root.AddCommand(newListCmd(a))
	root.AddCommand(newGetCmd(a))
	root.AddCommand(newVerifyCmd(a))
	root.AddCommand(newTracesCmd(a))
	return root
}

// setup resolves configuration (defaults, then config file, then explicitly
// set flags) and initialises logging.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	if a.flags.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(a.flags.configPath); err != nil {
			return err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Root = a.flags.root
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.flags.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = a.flags.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	a.cfg = cfg

	logging.Init(cfg.Level(), cfg.LogFormat, cmd.ErrOrStderr())
	a.logger = logging.New("cli").With(slog.String("run_id", uuid.NewString()))
	a.logger.Debug("configuration resolved",
		slog.String("command", cmd.Name()),
		slog.String("descriptor_dir", cfg.DescriptorPath()),
		slog.String("trace_dir", cfg.TracePath()))
	return nil
}

func (a *app) store() descriptor.Store {
	return descriptor.NewDirStore(a.cfg.DescriptorPath())
}

func (a *app) generator() *instance.Generator {
	return instance.NewGenerator(a.clock)
}

// execute runs the command tree for args and returns the process exit code.
func execute(ctx context.Context, a *app, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		var de *descriptor.Error
		if a.logger != nil && errors.As(err, &de) {
			a.logger.Debug("command failed",
				slog.String("kind", string(de.Kind())),
				slog.String("repository", de.Name()),
				slog.String("path", de.Path()))
		}
		return exitCode(err)
	}
	return 0
}

// Exit codes. Anything unclassified exits with exitFailure.
const (
	exitOK        = 0
	exitFailure   = 1
	exitNotFound  = 2
	exitMalformed = 3
	exitWrite     = 4
	exitClock     = 5
	exitMismatch  = 6
)

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if instance.IsMismatch(err) {
		return exitMismatch
	}
	var de *descriptor.Error
	if !errors.As(err, &de) {
		return exitFailure
	}
	switch de.Kind() {
	case descriptor.KindNotFound:
		return exitNotFound
	case descriptor.KindMalformed:
		return exitMalformed
	case descriptor.KindWriteError:
		return exitWrite
	case descriptor.KindClockError:
		return exitClock
	default:
		return exitFailure
	}
}
