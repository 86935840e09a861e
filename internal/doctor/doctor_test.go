package doctor_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/hbjs97/use/internal/config"
	"github.com/hbjs97/use/internal/doctor"
	"github.com/hbjs97/use/internal/index"
	"github.com/hbjs97/use/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckShell_Available(t *testing.T) {
	fake := testutil.NewFakeCommander()
	fake.Register("bash --version", "GNU bash, version 5.2", nil)

	result := doctor.CheckShell(context.Background(), fake)
	assert.Equal(t, doctor.StatusOK, result.Status)
}

func TestCheckShell_Missing(t *testing.T) {
	fake := testutil.NewFakeCommander()
	fake.Register("bash --version", "", fmt.Errorf("not found"))

	result := doctor.CheckShell(context.Background(), fake)
	assert.Equal(t, doctor.StatusFail, result.Status)
	assert.NotEmpty(t, result.Fix)
}

func TestCheckSearchPaths_AllPresent(t *testing.T) {
	cfg := config.Default()
	cfg.AutoVersionPaths = []string{t.TempDir()}
	cfg.BakedVersionPaths = []string{t.TempDir()}

	result := doctor.CheckSearchPaths(cfg)
	assert.Equal(t, doctor.StatusOK, result.Status)
}

func TestCheckSearchPaths_SomeMissing(t *testing.T) {
	cfg := config.Default()
	cfg.AutoVersionPaths = []string{t.TempDir()}
	cfg.BakedVersionPaths = []string{"/nonexistent/use"}

	result := doctor.CheckSearchPaths(cfg)
	assert.Equal(t, doctor.StatusWarn, result.Status)
}

func TestCheckSearchPaths_NonePresent(t *testing.T) {
	cfg := config.Default()
	cfg.AutoVersionPaths = []string{"/nonexistent/apps"}
	cfg.BakedVersionPaths = []string{"/nonexistent/use"}

	result := doctor.CheckSearchPaths(cfg)
	assert.Equal(t, doctor.StatusFail, result.Status)
	assert.NotEmpty(t, result.Fix)
}

func TestCheckConfigFile_Missing(t *testing.T) {
	result := doctor.CheckConfigFile(filepath.Join(t.TempDir(), "config.toml"))
	assert.Equal(t, doctor.StatusWarn, result.Status)
	assert.Contains(t, result.Fix, "use init")
}

func TestCheckConfigFile_OK(t *testing.T) {
	path := testutil.TempConfigFile(t, "version = 1\n")
	result := doctor.CheckConfigFile(path)
	assert.Equal(t, doctor.StatusOK, result.Status)
}

func TestCheckConfigFile_WorldWritable(t *testing.T) {
	path := testutil.TempConfigFile(t, "version = 1\n")
	require.NoError(t, os.Chmod(path, 0666))

	result := doctor.CheckConfigFile(path)
	assert.Equal(t, doctor.StatusWarn, result.Status)
}

func TestCheckScan_ReportsCounts(t *testing.T) {
	root, _ := testutil.BakedTree(t, "maya-2018.3", "[branch]\nmaya\n")

	result := doctor.CheckScan([]index.Root{{Path: root, Mode: index.ModeBaked}}, 2)
	assert.Equal(t, doctor.StatusOK, result.Status)
	assert.Contains(t, result.Message, "1")
}

func TestCheckScan_WarnsOnIssues(t *testing.T) {
	root, _ := testutil.BakedTree(t, "maya-latest", "[branch]\nmaya\n")

	result := doctor.CheckScan([]index.Root{{Path: root, Mode: index.ModeBaked}}, 2)
	assert.Equal(t, doctor.StatusWarn, result.Status)
}
