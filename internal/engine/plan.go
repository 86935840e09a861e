package engine

// Step은 mutation plan의 한 단계다. 엔진은 plan을 만들어 반환할 뿐,
// 실제 셸 환경은 절대 직접 건드리지 않는다. 적용과 히스토리 영속화는
// 호출 측(shell 렌더러와 CLI)의 몫이다.
type Step interface {
	isStep()
}

// SetEnv는 env 변수를 설정한다.
type SetEnv struct {
	Name  string
	Value string
}

// UnsetEnv는 env 변수를 제거한다.
type UnsetEnv struct {
	Name string
}

// DefineAlias는 alias를 정의한다.
type DefineAlias struct {
	Name    string
	Command string
}

// RemoveAlias는 alias를 제거한다.
type RemoveAlias struct {
	Name string
}

// PrependPath는 path 목록 변수의 맨 앞에 경로를 추가한다.
type PrependPath struct {
	Variable string
	Path     string
}

// AppendPath는 path 목록 변수의 맨 뒤에 경로를 추가한다.
type AppendPath struct {
	Variable string
	Path     string
}

// RemovePath는 path 목록 변수에서 경로를 제거한다. 마지막 경로가
// 제거되면 변수 자체가 제거된다.
type RemovePath struct {
	Variable string
	Path     string
}

// SourceScript는 스크립트를 현재 셸에서 source한다. 권한 정책의 검사
// 대상이다.
type SourceScript struct {
	Path string
}

// RunCommand는 use 패키지가 선언한 셸 명령을 그대로 실행한다. 정책상
// 권한 검사를 하지 않는 약한 신뢰 경계이므로 SourceScript와 별도의
// step 타입으로 유지한다.
type RunCommand struct {
	Text string
}

func (SetEnv) isStep()       {}
func (UnsetEnv) isStep()     {}
func (DefineAlias) isStep()  {}
func (RemoveAlias) isStep()  {}
func (PrependPath) isStep()  {}
func (AppendPath) isStep()   {}
func (RemovePath) isStep()   {}
func (SourceScript) isStep() {}
func (RunCommand) isStep()   {}

// Plan은 하나의 활성화/비활성화 요청에 대한 순서 있는 mutation plan이다.
type Plan struct {
	Steps []Step
	// AlreadyActive는 요청한 패키지가 이미 정확히 같은 이름으로
	// 활성화되어 있어 no-op임을 나타낸다.
	AlreadyActive bool
}
