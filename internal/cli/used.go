package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hbjs97/use/internal/history"
)

func (a *App) newUsedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "used",
		Short: "현재 셸에 활성화된 use 패키지 목록을 출력한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runUsed()
		},
	}
}

func (a *App) runUsed() error {
	histPath, err := a.historyPath()
	if err != nil {
		return err
	}
	hist, err := history.Load(histPath)
	if err != nil {
		return err
	}

	names := hist.ListActive()
	if len(names) == 0 {
		return nil
	}
	// used의 stdout도 eval되므로 목록 자체를 printf 명령으로 감싼다.
	// 패키지 이름은 파일명/브랜치에서 왔으므로 셸 메타문자가 없다.
	fmt.Fprintf(a.Stdout, "printf \"%s\\n\"\n", strings.Join(names, "\\n"))
	return nil
}
