package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hbjs97/use/internal/cmdexec"
	"github.com/hbjs97/use/internal/config"
	"github.com/hbjs97/use/internal/engine"
	"github.com/hbjs97/use/internal/index"
	"github.com/hbjs97/use/internal/permissions"
	"github.com/hbjs97/use/internal/shell"
)

// historyFileEnv는 세션 히스토리 파일 경로를 담는 env 변수다.
// setup이 설정하고 이후의 모든 use/unuse/used 호출이 읽는다.
const historyFileEnv = "USE_PKG_HISTORY_FILE"

// App은 CLI 명령들이 공유하는 의존성이다. stdout은 호출 셸이 eval하는
// 명령 스트림 전용이므로 사람이 읽을 출력은 전부 Logger(stderr)로 나간다.
type App struct {
	CfgPath   string
	Verbose   bool
	Logger    *log.Logger
	Commander cmdexec.Commander
	Stdin     io.Reader
	Stdout    io.Writer
	LookupEnv func(string) (string, bool)
}

// NewRootCmd는 기본 의존성(실제 환경, 실제 stdin/stdout)으로 use CLI의
// 루트 명령을 생성한다. main이 쓰는 진입점이다.
func NewRootCmd() *cobra.Command {
	app := &App{
		Logger:    log.New(os.Stderr),
		Commander: &cmdexec.RealCommander{},
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		LookupEnv: os.LookupEnv,
	}
	return app.NewRootCmd()
}

// NewRootCmd는 App의 의존성으로 루트 명령을 조립한다. 테스트는 가짜
// 환경을 담은 App으로 이 메서드를 직접 호출한다.
func (app *App) NewRootCmd() *cobra.Command {
	app.fillDefaults()

	cmd := &cobra.Command{
		Use:          "use",
		Short:        "셸 환경 use 패키지 스위처",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if app.Verbose {
				app.Logger.SetLevel(log.DebugLevel)
			}
		},
	}

	// 테스트가 CfgPath를 미리 넣어두면 그 값을 기본값으로 쓴다.
	defaultCfg := app.CfgPath
	if defaultCfg == "" {
		defaultCfg = filepath.Join(homeDir(), ".config", "use", "config.toml")
	}
	cmd.PersistentFlags().StringVar(&app.CfgPath, "config", defaultCfg, "설정 파일 경로")
	cmd.PersistentFlags().BoolVar(&app.Verbose, "verbose", false, "상세 출력")

	cmd.AddCommand(
		app.newSetupCmd(),
		app.newUseCmd(),
		app.newUnuseCmd(),
		app.newUsedCmd(),
		app.newWhichCmd(),
		app.newCompleteCmd(),
		app.newHookCmd(),
		app.newInitCmd(),
		app.newDoctorCmd(),
	)
	return cmd
}

func (a *App) fillDefaults() {
	if a.Logger == nil {
		a.Logger = log.New(os.Stderr)
	}
	if a.Commander == nil {
		a.Commander = &cmdexec.RealCommander{}
	}
	if a.Stdin == nil {
		a.Stdin = os.Stdin
	}
	if a.Stdout == nil {
		a.Stdout = os.Stdout
	}
	if a.LookupEnv == nil {
		a.LookupEnv = os.LookupEnv
	}
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "경고: 홈 디렉토리 확인 실패: %v\n", err)
		return "."
	}
	return home
}

func (a *App) loadConfig() (*config.Config, error) {
	return config.Load(a.CfgPath)
}

// roots는 설정을 인덱스 검색 경로 목록으로 변환한다. auto가 baked보다
// 먼저 오는 순서가 이름 충돌 시의 우선순위를 결정한다.
func (a *App) roots(cfg *config.Config) []index.Root {
	var roots []index.Root
	for _, p := range cfg.AutoVersionPaths {
		roots = append(roots, index.Root{Path: p, Mode: index.ModeAuto, Recursive: cfg.IsRecursiveSearch()})
	}
	for _, p := range cfg.BakedVersionPaths {
		roots = append(roots, index.Root{Path: p, Mode: index.ModeBaked, Recursive: cfg.IsRecursiveSearch()})
	}
	return roots
}

func (a *App) policy(cfg *config.Config) permissions.Policy {
	return permissions.Policy{
		EnforceUsePkg:          cfg.Permissions.EnforceUsePkg,
		EnforceScripts:         cfg.Permissions.EnforceScripts,
		AllowArbitraryCommands: cfg.IsAllowArbitraryCommands(),
		TrustedUID:             cfg.Permissions.TrustedUID,
	}
}

// scan은 인덱스를 새로 만들고 제외된 파일을 stderr에 보고한다.
func (a *App) scan(cfg *config.Config) []index.Entry {
	entries, issues := index.Scan(a.roots(cfg), cfg.AutoVersionOffset)
	if cfg.IsDisplayViolations() {
		for _, issue := range issues {
			a.Logger.Warn("use 패키지 제외", "file", issue.File, "reason", issue.Err)
		}
	}
	return entries
}

// historyPath는 현재 세션의 히스토리 파일 경로를 반환한다.
func (a *App) historyPath() (string, error) {
	path, ok := a.LookupEnv(historyFileEnv)
	if !ok || path == "" {
		return "", fmt.Errorf("cli.historyPath: 히스토리 파일이 없습니다. setup을 먼저 실행했나요?")
	}
	return path, nil
}

// session은 호출 셸의 스냅샷을 만든다. alias 목록은 래퍼 함수가
// stdin으로 넘겨준다.
func (a *App) session() *engine.Session {
	return &engine.Session{
		Env:     shell.EnvMap(),
		Aliases: shell.ParseAliases(a.Stdin),
	}
}
