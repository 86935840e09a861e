package cli

import (
	"github.com/spf13/cobra"

	"github.com/hbjs97/use/internal/engine"
	"github.com/hbjs97/use/internal/history"
)

func (a *App) newUnuseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unuse <패키지>",
		Short: "활성화된 use 패키지를 현재 셸에서 해제한다",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runUnuse(args[0])
		},
	}
}

func (a *App) runUnuse(name string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	histPath, err := a.historyPath()
	if err != nil {
		return err
	}
	hist, err := history.Load(histPath)
	if err != nil {
		return err
	}

	eng := engine.New(a.scan(cfg), hist, a.policy(cfg), cfg.AutoVersionOffset)
	plan, err := eng.Deactivate(name, a.session())
	if err != nil {
		return err
	}

	if err := a.emit(plan.Steps); err != nil {
		return err
	}
	return hist.Save(histPath)
}
