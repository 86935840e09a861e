package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const configTemplate = `# use 설정 파일
version = 1

# 디렉토리 구조에서 버전을 유도하는 검색 경로
auto_version_paths = ["/opt/apps"]

# 파일명에 버전이 박힌 검색 경로
baked_version_paths = ["/opt/use"]

recursive_search = true

# .use 파일로부터 몇 단계 위 디렉토리를 버전으로 볼지
auto_version_offset = 2

[permissions]
enforce_use_pkg = false
enforce_scripts = false
allow_arbitrary_commands = true
display_violations = true
trusted_uid = 0
`

func (a *App) newInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "기본 설정 파일을 생성한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "기존 설정 파일을 덮어쓴다")
	return cmd
}

func (a *App) runInit(force bool) error {
	if !force {
		if _, err := os.Stat(a.CfgPath); err == nil {
			return fmt.Errorf("cli.runInit: 설정 파일이 이미 있습니다: %s (--force로 덮어쓰기)", a.CfgPath)
		}
	}
	if err := os.MkdirAll(filepath.Dir(a.CfgPath), 0700); err != nil {
		return fmt.Errorf("cli.runInit: %w", err)
	}
	if err := os.WriteFile(a.CfgPath, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("cli.runInit: %w", err)
	}
	a.Logger.Info("설정 파일 생성 완료", "path", a.CfgPath)
	return nil
}
