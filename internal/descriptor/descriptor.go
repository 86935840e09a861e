// Package descriptor는 use 패키지 파일(.use)을 파싱한다.
// 형식은 INI와 유사하지만 섹션 순서와 값 없는 항목 라인을 그대로 보존한다.
package descriptor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrMalformed는 use 패키지 파일을 파싱할 수 없을 때의 sentinel error다.
var ErrMalformed = errors.New("use 패키지 파일 형식 오류")

const (
	prependPrefix  = "path-prepend-"
	postpendPrefix = "path-postpend-"
)

// KeyValue는 env/alias 섹션의 한 항목이다. 선언 순서를 유지한다.
type KeyValue struct {
	Key   string
	Value string
}

// PathMutation은 하나의 path 변수 섹션이 선언한 경로 목록이다.
type PathMutation struct {
	Variable string
	Prepend  bool
	Paths    []string
}

// Descriptor는 파싱된 use 패키지 파일의 내용이다.
// Branch를 제외한 모든 필드는 비어 있을 수 있으며, 값에는 확장 전의
// 플레이스홀더 토큰($VERSION 등)이 그대로 남아 있다.
type Descriptor struct {
	Branch        string
	EnvVars       []KeyValue
	Aliases       []KeyValue
	PathMutations []PathMutation
	UseScripts    []string
	UnuseScripts  []string
	UseCmds       []string
	UnuseCmds     []string
	DesktopFile   string
}

// ParseFile은 path의 use 패키지 파일을 읽어 파싱한다.
func ParseFile(path string) (*Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("descriptor.ParseFile: %w", err)
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse는 use 패키지 텍스트를 Descriptor로 파싱한다. 순수 함수이며 path는
// 에러 메시지에만 쓰인다. 알 수 없는 섹션은 무시한다 (상위 호환).
// branch 섹션은 정확히 한 줄이어야 하고, 그 외 섹션은 중복 선언 시
// 항목이 누적된다.
func Parse(r io.Reader, path string) (*Descriptor, error) {
	d := &Descriptor{}
	section := ""
	branchSeen := false
	branchLines := 0

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			if section == "branch" {
				if branchSeen {
					return nil, malformed(path, "[branch] 섹션이 중복되었습니다")
				}
				branchSeen = true
			}
			continue
		}

		if section == "" {
			return nil, malformed(path, "섹션 헤더 이전에 값이 있습니다: "+line)
		}

		switch {
		case section == "branch":
			branchLines++
			if branchLines > 1 {
				return nil, malformed(path, "[branch] 섹션은 한 줄이어야 합니다")
			}
			d.Branch = line
		case section == "env":
			k, v := splitKeyValue(line)
			d.EnvVars = append(d.EnvVars, KeyValue{Key: k, Value: v})
		case section == "alias":
			k, v := splitKeyValue(line)
			d.Aliases = append(d.Aliases, KeyValue{Key: k, Value: v})
		case section == "desktop":
			if d.DesktopFile == "" {
				d.DesktopFile = line
			}
		case section == "use-scripts":
			d.UseScripts = append(d.UseScripts, line)
		case section == "unuse-scripts":
			d.UnuseScripts = append(d.UnuseScripts, line)
		case section == "use-cmds" || section == "use-shell-cmds":
			d.UseCmds = append(d.UseCmds, line)
		case section == "unuse-cmds" || section == "unuse-shell-cmds":
			d.UnuseCmds = append(d.UnuseCmds, line)
		case strings.HasPrefix(section, prependPrefix) && len(section) > len(prependPrefix):
			d.addPath(strings.TrimPrefix(section, prependPrefix), true, line)
		case strings.HasPrefix(section, postpendPrefix) && len(section) > len(postpendPrefix):
			d.addPath(strings.TrimPrefix(section, postpendPrefix), false, line)
		default:
			// 알 수 없는 섹션은 무시
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("descriptor.Parse: %w", err)
	}

	if !branchSeen || d.Branch == "" {
		return nil, malformed(path, "[branch] 섹션이 필요합니다")
	}
	return d, nil
}

// addPath는 같은 변수/방향의 섹션이 중복 선언되면 기존 그룹에 누적한다.
func (d *Descriptor) addPath(variable string, prepend bool, path string) {
	for i := range d.PathMutations {
		if d.PathMutations[i].Variable == variable && d.PathMutations[i].Prepend == prepend {
			d.PathMutations[i].Paths = append(d.PathMutations[i].Paths, path)
			return
		}
	}
	d.PathMutations = append(d.PathMutations, PathMutation{
		Variable: variable,
		Prepend:  prepend,
		Paths:    []string{path},
	})
}

// splitKeyValue는 첫 번째 '='에서 분리한다. 값에는 '='가 포함될 수 있고,
// '='가 없는 줄은 값이 빈 키로 취급한다.
func splitKeyValue(line string) (string, string) {
	idx := strings.Index(line, "=")
	if idx < 0 {
		return strings.TrimSpace(line), ""
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:])
}

func malformed(path, reason string) error {
	return fmt.Errorf("descriptor.Parse: %w: %s: %s", ErrMalformed, path, reason)
}
