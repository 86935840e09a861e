package expand_test

import (
	"strings"
	"testing"

	"github.com/hbjs97/use/internal/descriptor"
	"github.com/hbjs97/use/internal/expand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func autoCtx() expand.Context {
	return expand.AutoContext("/opt/apps/isotropix/clarisse/4.0sp4/wrapper/clarisse.use", 2)
}

func TestAutoContext_DerivesVersionFromAncestor(t *testing.T) {
	ctx := autoCtx()
	assert.Equal(t, "/opt/apps/isotropix/clarisse/4.0sp4/wrapper", ctx.PkgDir)
	assert.Equal(t, "4.0sp4", ctx.Version)
	assert.Equal(t, "/opt/apps/isotropix/clarisse/4.0sp4", ctx.VersionDir)
	assert.Equal(t, "/opt/apps/isotropix/clarisse", ctx.PreVersionDir)
}

func TestVersionPath_NegativeOffsetTreatedAsAbsolute(t *testing.T) {
	assert.Equal(t,
		expand.VersionPath("/a/b/c/d.use", 2),
		expand.VersionPath("/a/b/c/d.use", -2))
}

func TestExpand_VersionPathNotSplitIntoVersion(t *testing.T) {
	// $VERSION_PATH가 $VERSION + "_PATH"로 쪼개지면 안 된다.
	out, err := expand.Expand("$VERSION_PATH/bin", autoCtx())
	require.NoError(t, err)
	assert.Equal(t, "/opt/apps/isotropix/clarisse/4.0sp4/bin", out)
}

func TestExpand_AllTokens(t *testing.T) {
	out, err := expand.Expand("$PRE_VERSION_PATH|$VERSION_PATH|$VERSION|$USE_PKG_PATH", autoCtx())
	require.NoError(t, err)
	assert.Equal(t,
		"/opt/apps/isotropix/clarisse|/opt/apps/isotropix/clarisse/4.0sp4|4.0sp4|/opt/apps/isotropix/clarisse/4.0sp4/wrapper",
		out)
}

func TestExpand_UndefinedVersionToken(t *testing.T) {
	ctx := expand.PlainContext("/opt/use/tools.use")
	_, err := expand.Expand("$VERSION_PATH/bin", ctx)
	assert.ErrorIs(t, err, expand.ErrUndefinedVariable)
}

func TestExpand_PkgPathWorksWithoutVersion(t *testing.T) {
	ctx := expand.PlainContext("/opt/use/tools.use")
	out, err := expand.Expand("$USE_PKG_PATH/bin", ctx)
	require.NoError(t, err)
	assert.Equal(t, "/opt/use/bin", out)
}

func TestExpand_UnknownTokenLeftVerbatim(t *testing.T) {
	out, err := expand.Expand("$HOME/bin", autoCtx())
	require.NoError(t, err)
	assert.Equal(t, "$HOME/bin", out)
}

func TestExpand_NoTokensNoVersionNoError(t *testing.T) {
	// 확장은 lazy하다: 버전 토큰을 안 쓰면 버전이 없어도 에러가 아니다.
	ctx := expand.PlainContext("/opt/use/tools.use")
	out, err := expand.Expand("plain value", ctx)
	require.NoError(t, err)
	assert.Equal(t, "plain value", out)
}

func TestApply_ExpandsAllFieldsExceptBranch(t *testing.T) {
	d, err := descriptor.Parse(strings.NewReader(`[branch]
clarisse
[env]
CLARISSE_HOME=$VERSION_PATH
[alias]
clarisse=$VERSION_PATH/clarisse
[path-prepend-PATH]
$VERSION_PATH/bin
[use-scripts]
$USE_PKG_PATH/post.sh
`), "test.use")
	require.NoError(t, err)

	out, err := expand.Apply(d, autoCtx())
	require.NoError(t, err)

	assert.Equal(t, "clarisse", out.Branch)
	assert.Equal(t, "/opt/apps/isotropix/clarisse/4.0sp4", out.EnvVars[0].Value)
	assert.Equal(t, "/opt/apps/isotropix/clarisse/4.0sp4/clarisse", out.Aliases[0].Value)
	assert.Equal(t, []string{"/opt/apps/isotropix/clarisse/4.0sp4/bin"}, out.PathMutations[0].Paths)
	assert.Equal(t, []string{"/opt/apps/isotropix/clarisse/4.0sp4/wrapper/post.sh"}, out.UseScripts)

	// 원본은 그대로 남아야 한다.
	assert.Equal(t, "$VERSION_PATH", d.EnvVars[0].Value)
}

func TestApply_UndefinedVariableSurfaces(t *testing.T) {
	d, err := descriptor.Parse(strings.NewReader("[branch]\ntools\n[env]\nHOME_DIR=$VERSION_PATH\n"), "test.use")
	require.NoError(t, err)

	_, err = expand.Apply(d, expand.PlainContext("/opt/use/tools.use"))
	assert.ErrorIs(t, err, expand.ErrUndefinedVariable)
}
