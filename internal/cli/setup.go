package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hbjs97/use/internal/engine"
)

func (a *App) newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "setup",
		Aliases: []string{"refresh"},
		Short:   "셸 세션을 초기화한다 (rc 파일의 스니펫이 eval한다)",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSetup()
		},
	}
}

func (a *App) runSetup() error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	// 검색 경로가 전부 없으면 이 시스템에서 use는 무의미하다.
	found := false
	for _, p := range append(append([]string{}, cfg.AutoVersionPaths...), cfg.BakedVersionPaths...) {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("cli.runSetup: use 패키지 디렉토리가 없습니다: %v %v",
			cfg.AutoVersionPaths, cfg.BakedVersionPaths)
	}

	// 세션당 하나의 히스토리 파일. 이미 있으면(refresh) 그대로 쓴다.
	histPath, ok := a.LookupEnv(historyFileEnv)
	if !ok || histPath == "" {
		f, err := os.CreateTemp("", "*.usehistory")
		if err != nil {
			return fmt.Errorf("cli.runSetup: %w", err)
		}
		histPath = f.Name()
		if err := f.Close(); err != nil {
			return fmt.Errorf("cli.runSetup: %w", err)
		}
	}

	return a.emit([]engine.Step{engine.SetEnv{Name: historyFileEnv, Value: histPath}})
}
