package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hbjs97/use/internal/index"
)

func (a *App) newWhichCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "which <패키지>",
		Short: "use 패키지의 .use 파일 경로를 출력한다",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWhich(args[0])
		},
	}
}

func (a *App) runWhich(name string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	ent, ok := index.Find(a.scan(cfg), name)
	if !ok {
		return fmt.Errorf("cli.runWhich: %w: %s", ErrPackageNotFound, name)
	}
	// which는 eval 대상이 아니라 사용자가 직접 읽는 출력이다.
	fmt.Fprintln(a.Stdout, ent.File)
	return nil
}
