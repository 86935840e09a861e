package permissions_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hbjs97/use/internal/permissions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pkg.use")
	require.NoError(t, os.WriteFile(path, []byte("[branch]\ntest\n"), perm))
	// umask의 영향을 배제한다.
	require.NoError(t, os.Chmod(path, perm))
	return path
}

func trustingPolicy() permissions.Policy {
	return permissions.Policy{
		EnforceUsePkg:  true,
		EnforceScripts: true,
		TrustedUID:     os.Getuid(),
	}
}

func TestValidateUsePkg_DisabledSkipsCheck(t *testing.T) {
	p := permissions.Policy{EnforceUsePkg: false}
	assert.NoError(t, p.ValidateUsePkg(writeFile(t, 0666)))
}

func TestValidateUsePkg_LegalPerm(t *testing.T) {
	p := trustingPolicy()
	assert.NoError(t, p.ValidateUsePkg(writeFile(t, 0644)))
}

func TestValidateUsePkg_GroupWritableDenied(t *testing.T) {
	p := trustingPolicy()
	err := p.ValidateUsePkg(writeFile(t, 0664))
	assert.ErrorIs(t, err, permissions.ErrDenied)
}

func TestValidateUsePkg_WorldWritableDenied(t *testing.T) {
	p := trustingPolicy()
	err := p.ValidateUsePkg(writeFile(t, 0666))
	assert.ErrorIs(t, err, permissions.ErrDenied)
}

func TestValidateUsePkg_UntrustedOwnerDenied(t *testing.T) {
	p := trustingPolicy()
	p.TrustedUID = os.Getuid() + 1
	err := p.ValidateUsePkg(writeFile(t, 0644))
	assert.ErrorIs(t, err, permissions.ErrDenied)
}

func TestValidateScripts_MissingScriptSkipped(t *testing.T) {
	p := trustingPolicy()
	assert.NoError(t, p.ValidateScripts([]string{"/nonexistent/post.sh"}))
}

func TestValidateScripts_DeniesBadScript(t *testing.T) {
	p := trustingPolicy()
	err := p.ValidateScripts([]string{writeFile(t, 0777)})
	assert.ErrorIs(t, err, permissions.ErrDenied)
}

func TestValidateScripts_DisabledSkipsCheck(t *testing.T) {
	p := permissions.Policy{EnforceScripts: false}
	assert.NoError(t, p.ValidateScripts([]string{writeFile(t, 0777)}))
}
