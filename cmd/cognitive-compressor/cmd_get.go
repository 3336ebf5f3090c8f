package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"cogcompress/internal/instance"
	"cogcompress/internal/trace"
)

func newGetCmd(a *app) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Generate and print an instance of a descriptor",
		Long: "Load <name>-core-logic.json, derive a timestamped instance with integrity and\n" +
			"instance hashes, and print it as JSON. With --save the instance is also\n" +
			"written to a new trace file.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGet(cmd, args[0], save)
		},
	}
	cmd.Flags().BoolVarP(&save, "save", "s", false, "Record the instance in a trace file")
	return cmd
}

func (a *app) runGet(cmd *cobra.Command, name string, save bool) error {
	d, err := a.store().Load(cmd.Context(), name)
	if err != nil {
		return err
	}
	inst, err := a.generator().Generate(d)
	if err != nil {
		return err
	}
	data, err := instance.Marshal(inst)
	if err != nil {
		return err
	}
	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return fmt.Errorf("write instance: %w", err)
	}
	if !save {
		return nil
	}

	// The printed instance stays valid even if the trace cannot be written.
	tf, _ := trace.ParseFormat(a.cfg.TraceFormat)
	path, err := trace.NewWriter(a.cfg.TracePath(), tf).Persist(inst)
	if err != nil {
		a.logger.Error("persist trace", slog.String("repository", name), slog.String("error", err.Error()))
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "\n✓ Hash recorded in %s\n", filepath.ToSlash(filepath.Join(a.cfg.TraceDir, filepath.Base(path))))
	return nil
}
