package config_test

import (
	"testing"

	"github.com/hbjs97/use/internal/config"
	"github.com/hbjs97/use/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("/nonexistent/config.toml")
	require.NoError(t, err)

	assert.Equal(t, []string{"/opt/apps"}, cfg.AutoVersionPaths)
	assert.Equal(t, []string{"/opt/use"}, cfg.BakedVersionPaths)
	assert.Equal(t, 2, cfg.AutoVersionOffset)
	assert.True(t, cfg.IsRecursiveSearch())
	assert.True(t, cfg.IsAllowArbitraryCommands())
	assert.True(t, cfg.IsDisplayViolations())
}

func TestLoad_ParsesAllFields(t *testing.T) {
	path := testutil.TempConfigFile(t, `version = 1
auto_version_paths = ["/srv/apps", "/srv/extra"]
baked_version_paths = ["/srv/use"]
recursive_search = false
auto_version_offset = 3

[permissions]
enforce_use_pkg = true
enforce_scripts = true
allow_arbitrary_commands = false
display_violations = false
trusted_uid = 1000
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"/srv/apps", "/srv/extra"}, cfg.AutoVersionPaths)
	assert.Equal(t, []string{"/srv/use"}, cfg.BakedVersionPaths)
	assert.False(t, cfg.IsRecursiveSearch())
	assert.Equal(t, 3, cfg.AutoVersionOffset)
	assert.True(t, cfg.Permissions.EnforceUsePkg)
	assert.True(t, cfg.Permissions.EnforceScripts)
	assert.False(t, cfg.IsAllowArbitraryCommands())
	assert.False(t, cfg.IsDisplayViolations())
	assert.Equal(t, 1000, cfg.Permissions.TrustedUID)
}

func TestLoad_InvalidToml(t *testing.T) {
	path := testutil.TempConfigFile(t, "version = [broken")
	_, err := config.Load(path)
	assert.ErrorIs(t, err, config.ErrConfig)
}

func TestLoad_InvalidOffset(t *testing.T) {
	path := testutil.TempConfigFile(t, "auto_version_offset = -1\n")
	_, err := config.Load(path)
	assert.ErrorIs(t, err, config.ErrConfig)
}

func TestLoad_OverlappingSearchPaths(t *testing.T) {
	path := testutil.TempConfigFile(t, `auto_version_paths = ["/opt/shared"]
baked_version_paths = ["/opt/shared/"]
`)
	_, err := config.Load(path)
	assert.ErrorIs(t, err, config.ErrConfig)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := testutil.TempConfigFile(t, `auto_version_paths = ["/srv/apps"]`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"/srv/apps"}, cfg.AutoVersionPaths)
	assert.Equal(t, []string{"/opt/use"}, cfg.BakedVersionPaths)
	assert.Equal(t, 2, cfg.AutoVersionOffset)
}
