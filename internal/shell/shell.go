package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// HookSnippet는 셸 rc 파일에 들어가는 use 통합 스니펫을 반환한다.
// 래퍼 함수들이 현재 alias 목록을 stdin으로 넘기고 stdout을 eval한다.
func HookSnippet(shellType string) string {
	switch shellType {
	case "bash":
		return `# use shell integration (bash)
use() { eval "$(alias | command use use "$1")"; }
unuse() { eval "$(alias | command use unuse "$1")"; }
used() { eval "$(command use used)"; }
use-refresh() { eval "$(command use refresh)"; }
_use_complete() {
  COMPREPLY=( $(command use complete use "${COMP_WORDS[$COMP_CWORD]}") )
}
_unuse_complete() {
  COMPREPLY=( $(command use complete unuse "${COMP_WORDS[$COMP_CWORD]}") )
}
complete -F _use_complete use
complete -F _unuse_complete unuse
eval "$(command use setup)"
`
	default:
		return ""
	}
}

// RCPath는 셸별 rc 파일 경로를 반환한다.
func RCPath(shellType string) string {
	home, _ := os.UserHomeDir() // 홈 디렉토리 조회 실패 시 빈 문자열
	switch shellType {
	case "bash":
		return filepath.Join(home, ".bashrc")
	default:
		return ""
	}
}

// InstallHook은 rc 파일에 use 통합 스니펫을 추가한다. 이미 설치되어
// 있으면 건너뛴다.
func InstallHook(shellType, rcPath string) error {
	snippet := HookSnippet(shellType)
	if snippet == "" {
		return fmt.Errorf("shell.InstallHook: 지원하지 않는 셸: %s", shellType)
	}

	existing, _ := os.ReadFile(rcPath) // 파일이 없으면 빈 바이트
	if strings.Contains(string(existing), "use shell integration") {
		return nil // 이미 설치됨
	}

	f, err := os.OpenFile(rcPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("shell.InstallHook: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "\n%s", snippet); err != nil {
		return fmt.Errorf("shell.InstallHook: %w", err)
	}
	return nil
}

// ParseAliases는 bash alias 빌트인의 출력("alias k='v'" 줄들)을 파싱한다.
// 형식에 맞지 않는 줄은 무시한다.
func ParseAliases(r io.Reader) map[string]string {
	out := make(map[string]string)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		rest, ok := strings.CutPrefix(line, "alias ")
		if !ok {
			continue
		}
		key, value, ok := strings.Cut(rest, "=")
		if !ok {
			continue
		}
		out[key] = strings.Trim(value, "'")
	}
	return out
}

// EnvMap은 현재 프로세스 환경을 맵으로 반환한다.
func EnvMap() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		if key, value, ok := strings.Cut(kv, "="); ok {
			out[key] = value
		}
	}
	return out
}
