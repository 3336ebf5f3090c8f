package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"cogcompress/internal/format"
	"cogcompress/internal/instance"
	"cogcompress/internal/trace"
)

func newTracesCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "traces",
		Short: "List recorded trace files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTraces(cmd, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "plain", "Output: plain, table or markdown")
	return cmd
}

func (a *app) runTraces(cmd *cobra.Command, output string) error {
	mode, table := format.ParseMode(output)
	if !table && output != "plain" {
		return fmt.Errorf("unknown output %q (want plain, table or markdown)", output)
	}
	dir := a.cfg.TracePath()
	names, err := trace.List(dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !table {
		for _, n := range names {
			fmt.Fprintln(out, n)
		}
		return nil
	}

	tb := format.NewTable(mode)
	tb.Header("Trace", "Repository", "Instance", "Verified")
	for _, n := range names {
		if filepath.Ext(n) != trace.FormatJSON.Ext() {
			tb.Row(n, "-", "-", "-")
			continue
		}
		inst, err := trace.Load(filepath.Join(dir, n))
		if err != nil {
			tb.Row(n, "-", "-", format.BoolMark(false))
			continue
		}
		tb.Row(n, inst.Repository, format.Truncate(inst.InstanceHash, 15), format.BoolMark(instance.Verify(inst) == nil))
	}
	fmt.Fprintln(out, tb.String())
	return nil
}
