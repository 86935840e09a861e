package engine

import (
	"fmt"
	"slices"

	"github.com/hbjs97/use/internal/history"
	"github.com/hbjs97/use/internal/permissions"
)

// deactivateSteps는 히스토리 항목 하나의 효과를 되돌리는 step들을 만든다.
//
// 무조건 뒤집는 것이 아니라 다음 원칙을 따른다:
//   - env/alias: 현재 셸의 값이 이 패키지가 설정한 값과 다르면 누군가
//     의도적으로 바꾼 것이므로 건드리지 않는다. 이후에 활성화된 다른
//     패키지가 같은 이름을 건드렸어도 건드리지 않는다. 그 외에는
//     활성화 전 값으로 복원하거나, 전에 없던 값이면 제거한다.
//   - path: 이 패키지가 추가한 경로만 제거하되, 활성화 전부터 있던
//     경로이거나 이후 패키지가 같은 경로를 같은 변수에 추가했으면
//     남겨둔다.
func (e *Engine) deactivateSteps(entry history.Entry, sess *Session) ([]Step, error) {
	if !e.policy.AllowArbitraryCommands && len(entry.UnuseCmds) > 0 {
		return nil, fmt.Errorf("engine.deactivateSteps: %w: %s: 임의 명령(unuse-cmds)이 비활성화되어 있습니다",
			permissions.ErrDenied, entry.UsePackage)
	}
	if err := e.policy.ValidateScripts(entry.UnuseScripts); err != nil {
		return nil, err
	}

	subsequent := e.hist.Subsequent(entry.Name)
	var steps []Step

	// 1) path 제거
	for _, set := range mergePathSets(entry.PathPrepends, entry.PathPostpends) {
		prior := splitPathList(entry.PrevPaths[set.Variable])
		for _, p := range set.Paths {
			if slices.Contains(prior, p) {
				continue
			}
			if subsequentAddsPath(subsequent, set.Variable, p) {
				continue
			}
			steps = append(steps, RemovePath{Variable: set.Variable, Path: p})
		}
	}

	// 2) alias 복원/제거
	for _, kv := range entry.NewAliases {
		live, ok := sess.Aliases[kv.Key]
		if !ok || live != kv.Value {
			continue
		}
		if subsequentTouchesAlias(subsequent, kv.Key) {
			continue
		}
		if prev, had := entry.PrevAliases[kv.Key]; had {
			steps = append(steps, DefineAlias{Name: kv.Key, Command: prev})
		} else {
			steps = append(steps, RemoveAlias{Name: kv.Key})
		}
	}

	// 3) env 복원/제거
	for _, kv := range entry.NewEnv {
		live, ok := sess.Env[kv.Key]
		if !ok || live != kv.Value {
			continue
		}
		if subsequentTouchesEnv(subsequent, kv.Key) {
			continue
		}
		if prev, had := entry.PrevEnv[kv.Key]; had {
			steps = append(steps, SetEnv{Name: kv.Key, Value: prev})
		} else {
			steps = append(steps, UnsetEnv{Name: kv.Key})
		}
	}

	// 4) unuse 스크립트, 5) unuse 명령
	for _, s := range entry.UnuseScripts {
		steps = append(steps, SourceScript{Path: s})
	}
	for _, c := range entry.UnuseCmds {
		steps = append(steps, RunCommand{Text: c})
	}
	return steps, nil
}

// mergePathSets는 prepend/postpend 그룹을 변수 등장 순서를 유지하며
// 하나의 목록으로 합친다.
func mergePathSets(prepends, postpends []history.PathSet) []history.PathSet {
	var merged []history.PathSet
	find := func(variable string) *history.PathSet {
		for i := range merged {
			if merged[i].Variable == variable {
				return &merged[i]
			}
		}
		return nil
	}
	for _, set := range append(append([]history.PathSet{}, prepends...), postpends...) {
		if existing := find(set.Variable); existing != nil {
			existing.Paths = append(existing.Paths, set.Paths...)
			continue
		}
		merged = append(merged, history.PathSet{
			Variable: set.Variable,
			Paths:    append([]string{}, set.Paths...),
		})
	}
	return merged
}

func subsequentAddsPath(entries []history.Entry, variable, path string) bool {
	for _, e := range entries {
		for _, set := range mergePathSets(e.PathPrepends, e.PathPostpends) {
			if set.Variable == variable && slices.Contains(set.Paths, path) {
				return true
			}
		}
	}
	return false
}

func subsequentTouchesAlias(entries []history.Entry, name string) bool {
	for _, e := range entries {
		for _, kv := range e.NewAliases {
			if kv.Key == name {
				return true
			}
		}
	}
	return false
}

func subsequentTouchesEnv(entries []history.Entry, name string) bool {
	for _, e := range entries {
		for _, kv := range e.NewEnv {
			if kv.Key == name {
				return true
			}
		}
	}
	return false
}
