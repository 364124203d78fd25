package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trimline/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check directories, database and track sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config: %s\n", ctx.configPath)

			failed := 0
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				mark := "ok"
				if !result.Passed {
					mark = "FAIL"
					failed++
				}
				fmt.Fprintf(out, "[%s] %s: %s\n", mark, result.Name, result.Detail)
			}
			if failed > 0 {
				return fmt.Errorf("%d check(s) failed", failed)
			}
			return nil
		},
	}
}
