package shell_test

import (
	"strings"
	"testing"

	"github.com/hbjs97/use/internal/engine"
	"github.com/hbjs97/use/internal/shell"
	"github.com/hbjs97/use/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, env map[string]string, steps ...engine.Step) []string {
	t.Helper()
	r := shell.NewRenderer(testutil.StaticEnv(env))
	cmds, err := r.Render(steps)
	require.NoError(t, err)
	return cmds
}

func TestRender_SetEnv(t *testing.T) {
	cmds := render(t, nil, engine.SetEnv{Name: "CLARISSE_HOME", Value: "/opt/apps/clarisse"})
	assert.Equal(t, []string{"export CLARISSE_HOME=/opt/apps/clarisse"}, cmds)
}

func TestRender_SetEnvQuotesSpecialCharacters(t *testing.T) {
	cmds := render(t, nil, engine.SetEnv{Name: "OPTS", Value: "a b'c$d"})
	require.Len(t, cmds, 1)
	assert.True(t, strings.HasPrefix(cmds[0], "export OPTS="))
	// 값이 그대로 노출되면 eval 시 단어 분리/확장이 일어난다.
	assert.NotContains(t, cmds[0], "=a b'c$d")
}

func TestRender_UnsetEnvAndAlias(t *testing.T) {
	cmds := render(t, nil,
		engine.UnsetEnv{Name: "CLARISSE_HOME"},
		engine.DefineAlias{Name: "clarisse", Command: "/opt/clarisse -flavor ifx"},
		engine.RemoveAlias{Name: "clarisse"},
	)
	assert.Equal(t, "unset CLARISSE_HOME", cmds[0])
	assert.Equal(t, "alias clarisse='/opt/clarisse -flavor ifx'", cmds[1])
	assert.Equal(t, "unalias clarisse", cmds[2])
}

func TestRender_PrependPathUsesLiveValue(t *testing.T) {
	env := map[string]string{"PATH": "/usr/bin:/bin"}
	cmds := render(t, env, engine.PrependPath{Variable: "PATH", Path: "/opt/x/bin"})
	assert.Equal(t, []string{"export PATH=/opt/x/bin:/usr/bin:/bin"}, cmds)
}

func TestRender_PrependMovesExistingEntryToFront(t *testing.T) {
	env := map[string]string{"PATH": "/usr/bin:/opt/x/bin:/bin"}
	cmds := render(t, env, engine.PrependPath{Variable: "PATH", Path: "/opt/x/bin"})
	assert.Equal(t, []string{"export PATH=/opt/x/bin:/usr/bin:/bin"}, cmds)
}

func TestRender_AppendPath(t *testing.T) {
	env := map[string]string{"LD_LIBRARY_PATH": "/usr/lib"}
	cmds := render(t, env, engine.AppendPath{Variable: "LD_LIBRARY_PATH", Path: "/opt/x/lib"})
	assert.Equal(t, []string{"export LD_LIBRARY_PATH=/usr/lib:/opt/x/lib"}, cmds)
}

func TestRender_AppendToUnsetVariable(t *testing.T) {
	cmds := render(t, nil, engine.AppendPath{Variable: "LD_LIBRARY_PATH", Path: "/opt/x/lib"})
	assert.Equal(t, []string{"export LD_LIBRARY_PATH=/opt/x/lib"}, cmds)
}

func TestRender_RemovePath(t *testing.T) {
	env := map[string]string{"PATH": "/opt/x/bin:/usr/bin"}
	cmds := render(t, env, engine.RemovePath{Variable: "PATH", Path: "/opt/x/bin"})
	assert.Equal(t, []string{"export PATH=/usr/bin"}, cmds)
}

func TestRender_RemoveLastPathUnsetsVariable(t *testing.T) {
	env := map[string]string{"MAYA_PLUGINS": "/opt/maya/plugins"}
	cmds := render(t, env, engine.RemovePath{Variable: "MAYA_PLUGINS", Path: "/opt/maya/plugins"})
	assert.Equal(t, []string{"unset MAYA_PLUGINS"}, cmds)
}

func TestRender_OverlayTracksEarlierSteps(t *testing.T) {
	// 두 번째 step은 lookup이 아니라 첫 step의 결과를 기준으로 계산해야 한다.
	env := map[string]string{"PATH": "/usr/bin"}
	cmds := render(t, env,
		engine.PrependPath{Variable: "PATH", Path: "/opt/a"},
		engine.PrependPath{Variable: "PATH", Path: "/opt/b"},
	)
	require.Len(t, cmds, 2)
	assert.Equal(t, "export PATH=/opt/b:/opt/a:/usr/bin", cmds[1])
}

func TestRender_SourceScriptAndRunCommand(t *testing.T) {
	cmds := render(t, nil,
		engine.SourceScript{Path: "/opt/pkg/post install.sh"},
		engine.RunCommand{Text: "echo hi | tee /tmp/log"},
	)
	assert.Equal(t, "source '/opt/pkg/post install.sh'", cmds[0])
	// RunCommand는 검증 없이 그대로 통과한다.
	assert.Equal(t, "echo hi | tee /tmp/log", cmds[1])
}

func TestExport_JoinsWithSemicolons(t *testing.T) {
	assert.Equal(t, "a;b", shell.Export([]string{"a", "b"}))
	assert.Empty(t, shell.Export(nil))
}
