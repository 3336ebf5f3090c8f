package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"cogcompress/internal/descriptor"
	"cogcompress/internal/format"
)

func newListCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available descriptors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runList(cmd, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "plain", "Output: plain, table or markdown")
	return cmd
}

func (a *app) runList(cmd *cobra.Command, output string) error {
	mode, table := format.ParseMode(output)
	if !table && output != "plain" {
		return fmt.Errorf("unknown output %q (want plain, table or markdown)", output)
	}

	store := a.store()
	names, err := store.List(cmd.Context())
	if err != nil {
		// An unreadable descriptor directory lists as empty.
		a.logger.Warn("list descriptors", slog.String("error", err.Error()))
		names = nil
	}

	out := cmd.OutOrStdout()
	if !table {
		fmt.Fprintf(out, "Central Repository: %s\n", repositoryName)
		for _, n := range names {
			fmt.Fprintf(out, "  - %s\n", n)
		}
		return nil
	}

	tb := format.NewTable(mode)
	tb.Header("Repository", "File", "Valid")
	for _, n := range names {
		_, err := store.Load(cmd.Context(), n)
		if err != nil {
			a.logger.Debug("descriptor invalid", slog.String("repository", n), slog.String("error", err.Error()))
		}
		tb.Row(n, descriptor.NameToPath(n), format.BoolMark(err == nil))
	}
	fmt.Fprintln(out, tb.String())
	return nil
}
