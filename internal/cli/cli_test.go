package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantry-it/backend/internal/cli"
	"github.com/pantry-it/backend/internal/service"
)

type harness struct {
	t      *testing.T
	dbPath string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("API_URL", "")
	t.Setenv("DB_PATH", "")
	return &harness{t: t, dbPath: filepath.Join(t.TempDir(), "pantry.db")}
}

// run executes one command against the harness database and returns stdout.
func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	root := cli.NewRootCmdForTest()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--db", h.dbPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, "pantry %v", args)
	return out
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	root := cli.NewRootCmdForTest()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "pantry dev")
}

func TestMCPServeCommandExists(t *testing.T) {
	root := cli.NewRootCmdForTest()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"mcp", "serve", "--help"})
	assert.NoError(t, root.Execute())
}

func TestCategoryCommands(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("category", "list")
	assert.Contains(t, out, "Uncategorized (default)")

	out = h.mustRun("category", "add", "  dairy  ")
	assert.Contains(t, out, `"Dairy"`)

	_, err := h.run("category", "add", "DAIRY")
	assert.ErrorIs(t, err, service.ErrDuplicateName)

	_, err = h.run("category", "delete", "1")
	assert.ErrorIs(t, err, service.ErrProtectedEntity)

	_, err = h.run("category", "delete", "abc")
	assert.ErrorIs(t, err, service.ErrValidation)

	h.mustRun("category", "delete", "2")
	out = h.mustRun("category", "list")
	assert.NotContains(t, out, "Dairy")
}

func TestStockCommands(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("stock", "add", "Rice", "--type", "exact", "--full", "2", "--unit", "kg", "--current", "0.5")
	assert.Contains(t, out, "(id 1) at 25%")

	h.mustRun("stock", "add", "Salt", "--level", "full")

	_, err := h.run("stock", "add", "rice", "--level", "half")
	assert.ErrorIs(t, err, service.ErrDuplicateName)

	_, err = h.run("stock", "add", "Tea")
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = h.run("stock", "add", "Tea", "--level", "half", "--percent", "20")
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = h.run("stock", "add", "Tea", "--current", "2")
	assert.ErrorIs(t, err, service.ErrValidation)

	// Renaming keeps the recorded level.
	out = h.mustRun("stock", "update", "1", "--name", "Basmati rice")
	assert.Contains(t, out, "at 25%")

	out = h.mustRun("stock", "update", "1", "--level", "refill")
	assert.Contains(t, out, "at 10%")

	out = h.mustRun("stock", "show", "1")
	assert.Contains(t, out, "Basmati rice")
	assert.Contains(t, out, "Needs Refill")

	out = h.mustRun("dashboard")
	assert.Contains(t, out, "Basmati rice")
	assert.Contains(t, out, "Salt")

	out = h.mustRun("history")
	assert.Contains(t, out, "Basmati rice")

	h.mustRun("analytics")
	out = h.mustRun("settings")
	assert.Contains(t, out, "Uncategorized")

	h.mustRun("stock", "delete", "1")
	_, err = h.run("stock", "show", "1")
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = h.run("stock", "delete", "1")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestExportImportCommands(t *testing.T) {
	src := newHarness(t)
	src.mustRun("category", "add", "Baking")
	src.mustRun("stock", "add", "Flour", "--category", "2", "--type", "exact", "--full", "1000", "--unit", "g", "--percent", "40")
	src.mustRun("stock", "add", "Sugar", "--level", "half")

	path := filepath.Join(t.TempDir(), "pantry.yaml")
	src.mustRun("export", "-o", path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Baking")

	dst := newHarness(t)
	out := dst.mustRun("import", path)
	assert.Contains(t, out, "Imported 1 categories and 2 items, skipped 0")

	out = dst.mustRun("import", path)
	assert.Contains(t, out, "Imported 0 categories and 0 items, skipped 2")

	out = dst.mustRun("export", "--format", "json")
	assert.Contains(t, out, `"name": "Flour"`)

	_, err = dst.run("export", "--format", "xml")
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestDBCommands(t *testing.T) {
	h := newHarness(t)
	h.mustRun("stock", "add", "Oats", "--percent", "70")

	out := h.mustRun("db", "info")
	assert.Contains(t, out, h.dbPath)
	assert.Contains(t, out, "items:      1")

	out = h.mustRun("db", "optimize")
	assert.Contains(t, out, "Database optimized")
}
