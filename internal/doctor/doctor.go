// Package doctor는 use 실행 환경을 진단한다.
package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/hbjs97/use/internal/cmdexec"
	"github.com/hbjs97/use/internal/config"
	"github.com/hbjs97/use/internal/index"
)

// Status는 진단 결과 상태다.
type Status string

const (
	// StatusOK는 정상 상태다.
	StatusOK Status = "OK"
	// StatusWarn는 경고 상태다.
	StatusWarn Status = "WARN"
	// StatusFail는 실패 상태다.
	StatusFail Status = "FAIL"
)

// DiagResult는 하나의 진단 결과다.
type DiagResult struct {
	Name    string
	Status  Status
	Message string
	Fix     string
}

// CheckShell은 bash가 실행 가능한지 확인한다. stdout을 eval하는 구조상
// 셸이 없으면 아무것도 동작하지 않는다.
func CheckShell(ctx context.Context, cmd cmdexec.Commander) DiagResult {
	if _, err := cmd.Run(ctx, "bash", "--version"); err != nil {
		return DiagResult{
			Name:    "bash",
			Status:  StatusFail,
			Message: "bash를 실행할 수 없습니다",
			Fix:     "bash를 설치하세요",
		}
	}
	return DiagResult{Name: "bash", Status: StatusOK, Message: "bash 사용 가능"}
}

// CheckSearchPaths는 설정된 검색 경로가 하나라도 존재하는지 확인한다.
func CheckSearchPaths(cfg *config.Config) DiagResult {
	all := append(append([]string{}, cfg.AutoVersionPaths...), cfg.BakedVersionPaths...)
	var missing []string
	found := false
	for _, p := range all {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			found = true
			continue
		}
		missing = append(missing, p)
	}
	if !found {
		return DiagResult{
			Name:    "search_paths",
			Status:  StatusFail,
			Message: fmt.Sprintf("use 패키지 디렉토리가 하나도 없습니다: %v", all),
			Fix:     "config.toml의 auto_version_paths/baked_version_paths를 확인하세요",
		}
	}
	if len(missing) > 0 {
		return DiagResult{
			Name:    "search_paths",
			Status:  StatusWarn,
			Message: fmt.Sprintf("일부 검색 경로가 없습니다: %v", missing),
		}
	}
	return DiagResult{Name: "search_paths", Status: StatusOK, Message: "검색 경로 정상"}
}

// CheckConfigFile은 설정 파일의 권한을 확인한다 (0644보다 넓으면 경고).
func CheckConfigFile(path string) DiagResult {
	info, err := os.Stat(path)
	if err != nil {
		return DiagResult{
			Name:    "config",
			Status:  StatusWarn,
			Message: "설정 파일이 없습니다 (기본값 사용)",
			Fix:     "use init으로 생성할 수 있습니다",
		}
	}
	if perm := info.Mode().Perm(); perm&0022 != 0 {
		return DiagResult{
			Name:    "config",
			Status:  StatusWarn,
			Message: fmt.Sprintf("설정 파일 권한이 %o입니다 (그룹/기타 쓰기 가능)", perm),
			Fix:     fmt.Sprintf("chmod 644 %s", path),
		}
	}
	return DiagResult{Name: "config", Status: StatusOK, Message: "설정 파일 정상"}
}

// CheckScan은 인덱스 스캔을 실행해 발견된 패키지 수와 제외된 파일을
// 보고한다.
func CheckScan(roots []index.Root, offset int) DiagResult {
	entries, issues := index.Scan(roots, offset)
	if len(issues) > 0 {
		return DiagResult{
			Name:    "scan",
			Status:  StatusWarn,
			Message: fmt.Sprintf("패키지 %d개 발견, 파일 %d개 제외", len(entries), len(issues)),
			Fix:     "use --verbose로 제외 이유를 확인하세요",
		}
	}
	return DiagResult{
		Name:    "scan",
		Status:  StatusOK,
		Message: fmt.Sprintf("패키지 %d개 발견", len(entries)),
	}
}
