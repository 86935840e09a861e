package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hbjs97/use/internal/engine"
	"github.com/hbjs97/use/internal/history"
	"github.com/hbjs97/use/internal/shell"
)

func (a *App) newUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <패키지>",
		Short: "use 패키지를 현재 셸에 활성화한다",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runUse(args[0])
		},
	}
}

func (a *App) runUse(name string) error {
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
	plan, err := eng.Activate(name, a.session())
	if err != nil {
		return err
	}
	if plan.AlreadyActive {
		a.Logger.Info("이미 활성화되어 있습니다", "package", name)
		return nil
	}

	if err := a.emit(plan.Steps); err != nil {
		return err
	}
	// plan이 stdout에 나간 뒤에만 히스토리를 기록한다. 저장이 실패하면
	// 셸은 바뀌었는데 기록이 없는 상태가 되므로 에러로 알린다.
	return hist.Save(histPath)
}

// emit는 plan을 bash 명령으로 렌더링해 eval 스트림(stdout)에 쓴다.
func (a *App) emit(steps []engine.Step) error {
	r := shell.NewRenderer(a.LookupEnv)
	cmds, err := r.Render(steps)
	if err != nil {
		return err
	}
	if out := shell.Export(cmds); out != "" {
		fmt.Fprintln(a.Stdout, out)
	}
	return nil
}
