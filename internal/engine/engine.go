// Package engine은 use 패키지 해석 엔진이다. (요청, 세션 히스토리,
// 인덱스)로부터 mutation plan과 갱신된 히스토리를 계산하는 순수
// 오케스트레이터로, 셸 없이도 테스트할 수 있다.
package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hbjs97/use/internal/descriptor"
	"github.com/hbjs97/use/internal/expand"
	"github.com/hbjs97/use/internal/history"
	"github.com/hbjs97/use/internal/index"
	"github.com/hbjs97/use/internal/permissions"
)

// ErrPackageNotFound는 요청한 이름이 인덱스(또는 unuse의 경우 히스토리)에
// 없을 때의 sentinel error다.
var ErrPackageNotFound = errors.New("use 패키지를 찾을 수 없습니다")

// Session은 호출 셸의 스냅샷이다. Env는 프로세스가 물려받은 환경,
// Aliases는 stdin으로 전달된 alias 목록을 파싱한 것이다. 엔진은 이
// 스냅샷을 읽기만 하며, 활성화 직전 값을 히스토리에 기록하는 데 쓴다.
type Session struct {
	Env     map[string]string
	Aliases map[string]string
}

// Engine은 하나의 요청을 처리하는 해석 엔진이다. 인덱스는 요청마다
// 새로 스캔되어 들어오므로 캐시 무효화 문제가 없다.
type Engine struct {
	entries []index.Entry
	hist    *history.History
	policy  permissions.Policy
	offset  int
	now     func() time.Time
}

// New는 새 Engine을 생성한다.
func New(entries []index.Entry, hist *history.History, policy permissions.Policy, offset int) *Engine {
	return &Engine{
		entries: entries,
		hist:    hist,
		policy:  policy,
		offset:  offset,
		now:     time.Now,
	}
}

// Activate는 이름으로 패키지를 찾아 활성화 plan을 만든다. 같은 branch의
// 기존 활성 패키지가 있으면 그 비활성화 step들이 plan 앞부분에 놓인다.
// 성공 시 히스토리가 갱신된다 (기존 branch 항목 제거, 새 항목 추가).
// 모든 에러는 해당 요청 전체를 중단시킨다 — 부분 plan은 반환하지 않는다.
func (e *Engine) Activate(name string, sess *Session) (*Plan, error) {
	if e.hist.IsActive(name) {
		return &Plan{AlreadyActive: true}, nil
	}

	ent, ok := index.Find(e.entries, name)
	if !ok {
		return nil, fmt.Errorf("engine.Activate: %w: %s", ErrPackageNotFound, name)
	}

	if err := e.policy.ValidateUsePkg(ent.File); err != nil {
		return nil, err
	}

	d, err := descriptor.ParseFile(ent.File)
	if err != nil {
		return nil, err
	}
	expanded, err := expand.Apply(d, ent.Context(e.offset))
	if err != nil {
		return nil, err
	}

	if !e.policy.AllowArbitraryCommands && (len(expanded.UseCmds) > 0 || len(expanded.UnuseCmds) > 0) {
		return nil, fmt.Errorf("engine.Activate: %w: %s: 임의 명령(use-cmds)이 비활성화되어 있습니다",
			permissions.ErrDenied, ent.File)
	}

	scripts := make([]string, 0, len(expanded.UseScripts)+len(expanded.UnuseScripts))
	scripts = append(scripts, expanded.UseScripts...)
	scripts = append(scripts, expanded.UnuseScripts...)
	if err := e.policy.ValidateScripts(scripts); err != nil {
		return nil, err
	}

	plan := &Plan{}

	// 같은 branch의 기존 활성 패키지를 오래된 순서대로 먼저 비활성화한다.
	incumbents := e.hist.FindByBranch(expanded.Branch)
	for _, inc := range incumbents {
		steps, err := e.deactivateSteps(inc, sess)
		if err != nil {
			return nil, err
		}
		plan.Steps = append(plan.Steps, steps...)
	}

	// 활성화 step: env, alias, path, use-scripts, use-cmds 순서.
	for _, kv := range expanded.EnvVars {
		plan.Steps = append(plan.Steps, SetEnv{Name: kv.Key, Value: kv.Value})
	}
	for _, kv := range expanded.Aliases {
		plan.Steps = append(plan.Steps, DefineAlias{Name: kv.Key, Command: kv.Value})
	}
	for _, pm := range expanded.PathMutations {
		if pm.Prepend {
			// 첫 번째로 선언된 경로가 변수의 맨 앞에 오도록 역순으로
			// 내보낸다 (각 step은 맨 앞 삽입이므로).
			for i := len(pm.Paths) - 1; i >= 0; i-- {
				plan.Steps = append(plan.Steps, PrependPath{Variable: pm.Variable, Path: pm.Paths[i]})
			}
			continue
		}
		for _, p := range pm.Paths {
			plan.Steps = append(plan.Steps, AppendPath{Variable: pm.Variable, Path: p})
		}
	}
	for _, s := range expanded.UseScripts {
		plan.Steps = append(plan.Steps, SourceScript{Path: s})
	}
	for _, c := range expanded.UseCmds {
		plan.Steps = append(plan.Steps, RunCommand{Text: c})
	}

	// plan이 완성된 뒤에야 히스토리를 갱신한다.
	for _, inc := range incumbents {
		e.hist.Deactivate(inc.Name)
	}
	e.hist.Activate(e.buildEntry(ent, expanded, sess))

	return plan, nil
}

// Deactivate는 현재 활성화된 패키지 하나를 비활성화하는 plan을 만든다.
// 이름은 인덱스가 아니라 히스토리에서 찾으며, 같은 branch의 다른 항목은
// 건드리지 않는다.
func (e *Engine) Deactivate(name string, sess *Session) (*Plan, error) {
	entry, ok := e.hist.Find(name)
	if !ok {
		return nil, fmt.Errorf("engine.Deactivate: %w: %s (활성화되어 있지 않습니다)",
			ErrPackageNotFound, name)
	}

	steps, err := e.deactivateSteps(entry, sess)
	if err != nil {
		return nil, err
	}

	e.hist.Deactivate(name)
	return &Plan{Steps: steps}, nil
}

// buildEntry는 활성화되는 패키지의 히스토리 항목을 만든다. 되돌리기에
// 필요한 활성화 직전 값들(겹치는 env/alias/path 변수의 현재 값)을 함께
// 기록한다.
func (e *Engine) buildEntry(ent index.Entry, d *descriptor.Descriptor, sess *Session) history.Entry {
	entry := history.Entry{
		Name:         ent.Name,
		Branch:       d.Branch,
		UsePackage:   ent.File,
		Timestamp:    e.now().Unix(),
		UnuseScripts: d.UnuseScripts,
		UnuseCmds:    d.UnuseCmds,
		PrevEnv:      map[string]string{},
		PrevAliases:  map[string]string{},
		PrevPaths:    map[string]string{},
	}

	for _, kv := range d.EnvVars {
		entry.NewEnv = append(entry.NewEnv, history.KeyValue{Key: kv.Key, Value: kv.Value})
		if prev, ok := sess.Env[kv.Key]; ok {
			entry.PrevEnv[kv.Key] = prev
		}
	}
	for _, kv := range d.Aliases {
		entry.NewAliases = append(entry.NewAliases, history.KeyValue{Key: kv.Key, Value: kv.Value})
		if prev, ok := sess.Aliases[kv.Key]; ok {
			entry.PrevAliases[kv.Key] = prev
		}
	}
	for _, pm := range d.PathMutations {
		set := history.PathSet{Variable: pm.Variable, Paths: pm.Paths}
		if pm.Prepend {
			entry.PathPrepends = append(entry.PathPrepends, set)
		} else {
			entry.PathPostpends = append(entry.PathPostpends, set)
		}
		if prev, ok := sess.Env[pm.Variable]; ok {
			entry.PrevPaths[pm.Variable] = prev
		}
	}
	return entry
}

func splitPathList(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ":")
}
