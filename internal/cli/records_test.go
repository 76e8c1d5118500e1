package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netledger/internal/domain"
)

func seedRecords(t *testing.T, env *testEnv) {
	t.Helper()
	env.mustRun("add", "--aid", "NAA-1", "--name", "Head Office", "--building", "Tower A",
		"--public-ip", "203.0.113.10", "--bandwidth", "500M")
	env.mustRun("add", "--aid", "NAA-2", "--name", "Warehouse", "--building", "Depot")
	env.mustRun("add", "--name", "Lab", "--building", "Tower A", "--status", "suspended")
}

func TestAddAndList(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("add", "--aid", "NAA-1", "--name", "Head Office")
	assert.Contains(t, out, "Added NAA-1 (Head Office)")

	out = env.mustRun("add", "--name", "Lab")
	assert.Contains(t, out, "Added N/A (Lab)")

	out = env.mustRun("list", "--plain")
	assert.Contains(t, out, "Head Office")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "active")
}

func TestAddJSON(t *testing.T) {
	env := newTestEnv(t)

	var rec domain.Record
	resp := decodeResponse(t, env.mustRun("--format", "json", "add", "--aid", "NAA-1", "--name", "Head Office"), &rec)
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, "NAA-1", rec.AID)
	require.Len(t, rec.History, 1)
	assert.Equal(t, "2024-03-01 09:00:00", rec.History[0].Date)
	assert.Equal(t, domain.NoteInitialCreation, rec.History[0].Note)
}

func TestListEmpty(t *testing.T) {
	env := newTestEnv(t)
	assert.Contains(t, env.mustRun("list"), "No records found")
}

func TestListByBuilding(t *testing.T) {
	env := newTestEnv(t)
	seedRecords(t, env)

	var records []domain.Record
	decodeResponse(t, env.mustRun("--format", "json", "list", "--building", "Tower A"), &records)
	require.Len(t, records, 2)
	assert.Equal(t, "Head Office", records[0].Name)
	assert.Equal(t, "Lab", records[1].Name)
}

func TestShow(t *testing.T) {
	env := newTestEnv(t)
	seedRecords(t, env)

	out := env.mustRun("show", "head office", "--plain")
	assert.Contains(t, out, "NAA-1")
	assert.Contains(t, out, "Initial Creation")

	_, err := env.run("show", "nothing")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)
	seedRecords(t, env)

	var records []domain.Record
	decodeResponse(t, env.mustRun("--format", "json", "search", "TOWER"), &records)
	assert.Len(t, records, 2)

	decodeResponse(t, env.mustRun("--format", "json", "search", "203.0"), &records)
	require.Len(t, records, 1)
	assert.Equal(t, "NAA-1", records[0].AID)

	assert.Contains(t, env.mustRun("search", "nowhere"), "No records found")
}

func TestDelete(t *testing.T) {
	env := newTestEnv(t)
	seedRecords(t, env)

	assert.Contains(t, env.mustRun("delete", "warehouse"), "Deleted warehouse")

	_, err := env.run("show", "NAA-2")
	assert.Equal(t, ExitFailure, GetExitCode(err))

	_, err = env.run("delete", "warehouse")
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestBuildings(t *testing.T) {
	env := newTestEnv(t)
	seedRecords(t, env)

	var buildings []string
	decodeResponse(t, env.mustRun("--format", "json", "buildings"), &buildings)
	assert.Equal(t, []string{"Depot", "Tower A"}, buildings)
}

func TestSQLiteDriver(t *testing.T) {
	env := newTestEnv(t)
	db := filepath.Join(env.dir, "netledger.db")

	env.mustRun("--driver", "sqlite", "--data", db, "add", "--aid", "NAA-9", "--name", "Annex")
	env.mustRun("--driver", "sqlite", "--data", db, "update", "NAA-9", "--set", "status=inactive")

	var rec domain.Record
	decodeResponse(t, env.mustRun("--driver", "sqlite", "--data", db, "--format", "json", "show", "annex"), &rec)
	assert.Equal(t, "inactive", rec.Status)
	assert.Len(t, rec.History, 2)

	assert.Contains(t, env.mustRun("list"), "No records found", "json store is untouched")
	assert.FileExists(t, db)
}

func TestInvalidDriver(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("--driver", "postgres", "list")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
