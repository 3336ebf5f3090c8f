package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cogcompress/internal/instance"
	"cogcompress/internal/trace"
)

func newVerifyCmd(a *app) *cobra.Command {
	var againstDescriptor bool
	cmd := &cobra.Command{
		Use:   "verify <trace-file>",
		Short: "Recompute and check the hashes of a stored JSON trace",
		Long: "Recompute integrity_hash from the stored descriptor fields and instance_hash from\n" +
			"temporal_grounding + integrity_hash. A bare file name is looked up in the trace\n" +
			"directory. With --descriptor the stored integrity_hash is also compared with the\n" +
			"current descriptor of the same repository.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runVerify(cmd, args[0], againstDescriptor)
		},
	}
	cmd.Flags().BoolVar(&againstDescriptor, "descriptor", false, "Also compare against the current descriptor")
	return cmd
}

func (a *app) runVerify(cmd *cobra.Command, arg string, againstDescriptor bool) error {
	path := a.resolveTrace(arg)
	inst, err := trace.Load(path)
	if err != nil {
		return err
	}
	if err := instance.Verify(inst); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if againstDescriptor {
		d, err := a.store().Load(cmd.Context(), inst.Repository)
		if err != nil {
			return err
		}
		current := instance.IntegrityHash(instance.Canonical(d))
		if err := instance.VerifyAgainst(inst, current); err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "OK %s\n", filepath.Base(path))
	fmt.Fprintf(out, "  repository:         %s\n", inst.Repository)
	fmt.Fprintf(out, "  temporal_grounding: %s\n", inst.TemporalGrounding)
	fmt.Fprintf(out, "  integrity_hash:     %s\n", inst.IntegrityHash)
	fmt.Fprintf(out, "  instance_hash:      %s\n", inst.InstanceHash)
	return nil
}

// resolveTrace returns arg unchanged when it names an existing file, and the
// same name inside the trace directory otherwise.
func (a *app) resolveTrace(arg string) string {
	if _, err := os.Stat(arg); err == nil || !errors.Is(err, fs.ErrNotExist) {
		return arg
	}
	if filepath.Base(arg) != arg {
		return arg
	}
	return filepath.Join(a.cfg.TracePath(), arg)
}
