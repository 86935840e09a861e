package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hbjs97/use/internal/shell"
)

func (a *App) newHookCmd() *cobra.Command {
	var (
		shellType string
		install   bool
	)
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "셸 rc 파일용 use 통합 스니펫을 출력하거나 설치한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHook(shellType, install)
		},
	}
	cmd.Flags().StringVar(&shellType, "shell", "bash", "대상 셸")
	cmd.Flags().BoolVar(&install, "install", false, "rc 파일에 직접 설치")
	return cmd
}

func (a *App) runHook(shellType string, install bool) error {
	snippet := shell.HookSnippet(shellType)
	if snippet == "" {
		return fmt.Errorf("cli.runHook: 지원하지 않는 셸: %s", shellType)
	}
	if !install {
		fmt.Fprint(a.Stdout, snippet)
		return nil
	}

	rcPath := shell.RCPath(shellType)
	if err := shell.InstallHook(shellType, rcPath); err != nil {
		return err
	}
	a.Logger.Info("셸 통합 설치 완료", "rc", rcPath)
	return nil
}
