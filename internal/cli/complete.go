package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hbjs97/use/internal/history"
	"github.com/hbjs97/use/internal/index"
)

func (a *App) newCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "complete <use|unuse> [입력]",
		Short:  "셸 자동완성 후보를 출력한다",
		Hidden: true,
		Args:   cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			stub := ""
			if len(args) > 1 {
				stub = args[1]
			}
			return a.runComplete(args[0], stub)
		},
	}
}

// runComplete는 prefix 일치 후보를 한 줄에 하나씩 출력한다. use는 전체
// 인덱스에서, unuse는 활성화된 패키지에서 고른다.
func (a *App) runComplete(kind, stub string) error {
	var names []string
	switch kind {
	case "use":
		cfg, err := a.loadConfig()
		if err != nil {
			return err
		}
		// 완성 중에는 stderr 경고가 프롬프트를 깨뜨리므로 issue는 버린다.
		entries, _ := index.Scan(a.roots(cfg), cfg.AutoVersionOffset)
		for _, ent := range entries {
			names = append(names, ent.Name)
		}
	case "unuse":
		histPath, err := a.historyPath()
		if err != nil {
			return err
		}
		hist, err := history.Load(histPath)
		if err != nil {
			return err
		}
		names = hist.ListActive()
	default:
		return fmt.Errorf("cli.runComplete: 알 수 없는 완성 대상: %s", kind)
	}

	for _, name := range names {
		if strings.HasPrefix(name, stub) {
			fmt.Fprintln(a.Stdout, name)
		}
	}
	return nil
}
