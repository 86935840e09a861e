// Package history는 한 셸 세션에서 활성화된 use 패키지 목록을 관리한다.
// 히스토리는 setup이 만든 세션 단위 파일에 JSON으로 저장되며, 셸이
// 종료되면 함께 버려진다.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// KeyValue는 패키지가 설정한 env/alias 항목 하나다. 선언 순서를 유지한다.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// PathSet은 하나의 path 변수에 추가된 경로 목록이다.
type PathSet struct {
	Variable string   `json:"variable"`
	Paths    []string `json:"paths"`
}

// Entry는 활성화된 use 패키지 하나의 기록이다. 적용한 효과와 함께,
// 되돌리기 위해 활성화 직전의 값들도 보관한다.
type Entry struct {
	Name       string `json:"name"`
	Branch     string `json:"branch"`
	UsePackage string `json:"use_package"`
	Timestamp  int64  `json:"timestamp"`

	NewEnv        []KeyValue `json:"new_env,omitempty"`
	NewAliases    []KeyValue `json:"new_aliases,omitempty"`
	PathPrepends  []PathSet  `json:"path_prepends,omitempty"`
	PathPostpends []PathSet  `json:"path_postpends,omitempty"`
	UnuseScripts  []string   `json:"unuse_scripts,omitempty"`
	UnuseCmds     []string   `json:"unuse_cmds,omitempty"`

	PrevEnv     map[string]string `json:"prev_env,omitempty"`
	PrevAliases map[string]string `json:"prev_aliases,omitempty"`
	PrevPaths   map[string]string `json:"prev_paths,omitempty"`
}

// History는 세션의 활성 패키지 목록이다. Entries의 순서가 활성화 순서다.
type History struct {
	Version int     `json:"version"`
	Entries []Entry `json:"entries"`
}

// New는 빈 히스토리를 생성한다.
func New() *History {
	return &History{Version: 1}
}

// Load는 히스토리 파일을 파싱한다. 파일 없음/파싱 실패 시 빈 히스토리
// 반환 (graceful).
func Load(path string) (*History, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("history.Load: %w", err)
	}
	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		return New(), nil
	}
	if h.Version == 0 {
		h.Version = 1
	}
	return &h, nil
}

// Save는 히스토리를 JSON 파일로 저장한다 (0600 권한).
func (h *History) Save(path string) error {
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("history.Save: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("history.Save: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// Activate는 항목을 목록 끝에 추가한다. 같은 이름이 이미 활성화되어
// 있으면 아무것도 하지 않고 false를 반환한다 (no-op).
func (h *History) Activate(e Entry) bool {
	if h.IsActive(e.Name) {
		return false
	}
	h.Entries = append(h.Entries, e)
	return true
}

// Deactivate는 이름이 일치하는 항목을 제거한다. 없으면 false.
func (h *History) Deactivate(name string) bool {
	for i, e := range h.Entries {
		if e.Name == name {
			h.Entries = append(h.Entries[:i], h.Entries[i+1:]...)
			return true
		}
	}
	return false
}

// IsActive는 이름이 현재 활성화되어 있는지 반환한다.
func (h *History) IsActive(name string) bool {
	_, ok := h.Find(name)
	return ok
}

// Find는 이름으로 항목을 찾는다.
func (h *History) Find(name string) (Entry, bool) {
	for _, e := range h.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// ListActive는 활성 패키지 이름을 활성화 순서대로 반환한다.
func (h *History) ListActive() []string {
	names := make([]string, 0, len(h.Entries))
	for _, e := range h.Entries {
		names = append(names, e.Name)
	}
	return names
}

// FindByBranch는 같은 branch의 활성 항목을 오래된 순서대로 반환한다.
func (h *History) FindByBranch(branch string) []Entry {
	var out []Entry
	for _, e := range h.Entries {
		if e.Branch == branch {
			out = append(out, e)
		}
	}
	return out
}

// Subsequent는 주어진 이름보다 나중에 활성화된 항목들을 반환한다.
// 비활성화 시 이후 패키지가 건드린 값을 보호하는 데 쓰인다.
func (h *History) Subsequent(name string) []Entry {
	var out []Entry
	found := false
	for _, e := range h.Entries {
		if found {
			out = append(out, e)
			continue
		}
		if e.Name == name {
			found = true
		}
	}
	return out
}
