package shell

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/hbjs97/use/internal/engine"
)

// Renderer는 mutation plan을 bash 명령 목록으로 변환한다. path step은
// 호출 셸의 현재 값(lookup)을 기준으로 전체 값을 다시 계산해야 하므로,
// 이미 렌더링한 step의 결과를 overlay로 추적한다.
type Renderer struct {
	lookup  func(string) (string, bool)
	overlay map[string]*string // nil 값은 unset을 의미한다
}

// NewRenderer는 환경 조회 함수를 받아 Renderer를 만든다. 실제 실행에는
// os.LookupEnv를, 테스트에는 가짜 환경을 넘긴다.
func NewRenderer(lookup func(string) (string, bool)) *Renderer {
	return &Renderer{lookup: lookup, overlay: make(map[string]*string)}
}

// Render는 plan의 step들을 순서대로 bash 명령으로 변환한다.
// RunCommand의 텍스트만 검증 없이 그대로 통과시킨다 (정책).
func (r *Renderer) Render(steps []engine.Step) ([]string, error) {
	var cmds []string
	for _, s := range steps {
		switch st := s.(type) {
		case engine.SetEnv:
			q, err := quote(st.Value)
			if err != nil {
				return nil, err
			}
			cmds = append(cmds, "export "+st.Name+"="+q)
			r.set(st.Name, st.Value)
		case engine.UnsetEnv:
			cmds = append(cmds, "unset "+st.Name)
			r.unset(st.Name)
		case engine.DefineAlias:
			q, err := quote(st.Command)
			if err != nil {
				return nil, err
			}
			cmds = append(cmds, "alias "+st.Name+"="+q)
		case engine.RemoveAlias:
			cmds = append(cmds, "unalias "+st.Name)
		case engine.PrependPath:
			list := removePath(r.pathList(st.Variable), st.Path)
			list = append([]string{st.Path}, list...)
			cmd, err := r.exportPath(st.Variable, list)
			if err != nil {
				return nil, err
			}
			cmds = append(cmds, cmd)
		case engine.AppendPath:
			list := removePath(r.pathList(st.Variable), st.Path)
			list = append(list, st.Path)
			cmd, err := r.exportPath(st.Variable, list)
			if err != nil {
				return nil, err
			}
			cmds = append(cmds, cmd)
		case engine.RemovePath:
			list := removePath(r.pathList(st.Variable), st.Path)
			if len(list) == 0 {
				cmds = append(cmds, "unset "+st.Variable)
				r.unset(st.Variable)
				continue
			}
			cmd, err := r.exportPath(st.Variable, list)
			if err != nil {
				return nil, err
			}
			cmds = append(cmds, cmd)
		case engine.SourceScript:
			q, err := quote(st.Path)
			if err != nil {
				return nil, err
			}
			cmds = append(cmds, "source "+q)
		case engine.RunCommand:
			cmds = append(cmds, st.Text)
		default:
			return nil, fmt.Errorf("shell.Render: 알 수 없는 step 타입: %T", s)
		}
	}
	return cmds, nil
}

// Export는 명령 목록을 eval 가능한 한 줄로 합친다.
func Export(cmds []string) string {
	if len(cmds) == 0 {
		return ""
	}
	return strings.Join(cmds, ";")
}

func (r *Renderer) pathList(variable string) []string {
	raw, ok := r.current(variable)
	if !ok || raw == "" {
		return nil
	}
	return strings.Split(raw, ":")
}

func (r *Renderer) exportPath(variable string, list []string) (string, error) {
	value := strings.Join(list, ":")
	q, err := quote(value)
	if err != nil {
		return "", err
	}
	r.set(variable, value)
	return "export " + variable + "=" + q, nil
}

func (r *Renderer) current(name string) (string, bool) {
	if v, ok := r.overlay[name]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	return r.lookup(name)
}

func (r *Renderer) set(name, value string) {
	v := value
	r.overlay[name] = &v
}

func (r *Renderer) unset(name string) {
	r.overlay[name] = nil
}

func removePath(list []string, path string) []string {
	var out []string
	for _, p := range list {
		if p != path {
			out = append(out, p)
		}
	}
	return out
}

func quote(s string) (string, error) {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return "", fmt.Errorf("shell.quote: %w", err)
	}
	return q, nil
}
