package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robertrahardja/ytpy/internal/deps"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

func newDepsCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check availability of external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := isTerminal(out)
			statuses := deps.CheckBinaries(deps.Requirements(cfg.Fetch.YtDlpBinary))
			for _, status := range statuses {
				label := "MISSING"
				color := ansiRed
				if status.Available {
					label = "OK"
					color = ansiGreen
				}
				line := fmt.Sprintf("  %-12s [%s] %s", status.Name+":", label, status.Description)
				if status.Detail != "" {
					line += " (" + status.Detail + ")"
				}
				if colorize {
					line = color + line + ansiReset
				}
				fmt.Fprintln(out, line)
			}

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return fmt.Errorf("missing required dependencies: %v", missing)
			}
			return nil
		},
	}
}
