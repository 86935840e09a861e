package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hbjs97/use/internal/doctor"
)

func (a *App) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "use 실행 환경을 진단한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDoctor(cmd)
		},
	}
}

func (a *App) runDoctor(cmd *cobra.Command) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	results := []doctor.DiagResult{
		doctor.CheckShell(cmd.Context(), a.Commander),
		doctor.CheckConfigFile(a.CfgPath),
		doctor.CheckSearchPaths(cfg),
		doctor.CheckScan(a.roots(cfg), cfg.AutoVersionOffset),
	}

	failed := 0
	for _, r := range results {
		fmt.Fprintf(a.Stdout, "[%s] %-14s %s\n", r.Status, r.Name, r.Message)
		if r.Fix != "" {
			fmt.Fprintf(a.Stdout, "       └ %s\n", r.Fix)
		}
		if r.Status == doctor.StatusFail {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("cli.runDoctor: 진단 실패 %d건", failed)
	}
	return nil
}
