// Package index는 검색 경로에서 use 패키지 파일을 찾아 외부 이름으로
// 매핑한다. 인덱스는 캐시 없이 요청마다 새로 만들어진다.
package index

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbjs97/use/internal/descriptor"
	"github.com/hbjs97/use/internal/expand"
)

// ErrReservedVersion은 derived/baked 버전이 예약어 "latest"일 때의
// sentinel error다. 해당 파일은 인덱스에서 제외된다.
var ErrReservedVersion = errors.New("'latest'는 예약된 버전 이름입니다")

const (
	useExt          = ".use"
	reservedVersion = "latest"
)

// Mode는 검색 경로의 버전 판별 방식이다.
type Mode string

const (
	// ModeAuto는 조상 디렉토리 이름에서 버전을 추출한다.
	ModeAuto Mode = "auto"
	// ModeBaked는 파일 이름의 마지막 하이픈 뒤를 버전으로 취급한다.
	ModeBaked Mode = "baked"
)

// Root는 하나의 검색 경로다.
type Root struct {
	Path      string
	Mode      Mode
	Recursive bool
}

// Entry는 발견된 use 패키지 하나다. Name이 사용자가 입력하는 외부
// 이름이다. Branch는 auto 모드에서만 스캔 시점에 채워진다.
type Entry struct {
	Name    string
	File    string
	Version string
	Branch  string
	Mode    Mode
}

// Issue는 스캔 중 제외된 파일과 그 이유다. 스캔 전체를 중단시키지 않는다.
type Issue struct {
	File string
	Err  error
}

// Scan은 모든 검색 경로에서 use 패키지를 수집한다. 결과는 파일 시스템
// 상태가 같으면 결정적이다: root는 설정 순서대로, root 내부는 사전식
// 순서로 순회하며 외부 이름이 충돌하면 먼저 발견된 항목이 이긴다.
// 존재하지 않는 검색 경로는 건너뛴다.
func Scan(roots []Root, offset int) ([]Entry, []Issue) {
	var entries []Entry
	var issues []Issue
	seen := make(map[string]string) // 외부 이름 -> 최초 발견 파일

	collect := func(path string, mode Mode) {
		if filepath.Ext(path) != useExt {
			return
		}
		entry, issue := evaluate(path, mode, offset)
		if issue != nil {
			issues = append(issues, *issue)
			return
		}
		if first, dup := seen[entry.Name]; dup {
			issues = append(issues, Issue{
				File: entry.File,
				Err:  fmt.Errorf("외부 이름 %q 충돌: %s 유지, %s 무시", entry.Name, first, entry.File),
			})
			return
		}
		seen[entry.Name] = entry.File
		entries = append(entries, *entry)
	}

	for _, root := range roots {
		info, err := os.Stat(root.Path)
		if err != nil || !info.IsDir() {
			continue
		}
		if root.Recursive {
			filepath.WalkDir(root.Path, func(path string, d fs.DirEntry, err error) error {
				if err != nil || d.IsDir() {
					return nil
				}
				collect(path, root.Mode)
				return nil
			})
			continue
		}
		children, err := os.ReadDir(root.Path)
		if err != nil {
			continue
		}
		for _, child := range children {
			if child.IsDir() {
				continue
			}
			collect(filepath.Join(root.Path, child.Name()), root.Mode)
		}
	}
	return entries, issues
}

// Find는 외부 이름이 정확히 일치하는 항목을 찾는다. 부분 일치는
// 탭 완성의 몫이며 여기서는 하지 않는다.
func Find(entries []Entry, name string) (Entry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

func evaluate(path string, mode Mode, offset int) (*Entry, *Issue) {
	stem := strings.TrimSuffix(filepath.Base(path), useExt)

	if mode == ModeBaked {
		entry := &Entry{Name: stem, File: path, Mode: mode}
		if i := strings.LastIndex(stem, "-"); i >= 0 {
			entry.Version = stem[i+1:]
		}
		if entry.Version == reservedVersion {
			return nil, &Issue{File: path, Err: fmt.Errorf("index.Scan: %w", ErrReservedVersion)}
		}
		return entry, nil
	}

	// auto 모드: offset 단계 위의 조상 디렉토리가 버전이다.
	p := path
	for i := 0; i < offset; i++ {
		parent := filepath.Dir(p)
		if parent == p {
			return nil, &Issue{
				File: path,
				Err:  fmt.Errorf("버전 디렉토리를 찾을 수 없습니다 (offset %d)", offset),
			}
		}
		p = parent
	}
	version := filepath.Base(p)
	if version == reservedVersion {
		return nil, &Issue{File: path, Err: fmt.Errorf("index.Scan: %w", ErrReservedVersion)}
	}

	d, err := descriptor.ParseFile(path)
	if err != nil {
		return nil, &Issue{File: path, Err: err}
	}

	return &Entry{
		Name:    d.Branch + "-" + version,
		File:    path,
		Version: version,
		Branch:  d.Branch,
		Mode:    mode,
	}, nil
}

// Context는 항목의 버전 모드에 맞는 확장 컨텍스트를 만든다.
func (e Entry) Context(offset int) expand.Context {
	if e.Mode == ModeAuto {
		return expand.AutoContext(e.File, offset)
	}
	return expand.PlainContext(e.File)
}
