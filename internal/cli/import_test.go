package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netledger/internal/domain"
	"netledger/internal/service"
)

func TestImportCSV(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("add", "--aid", "NAA-1", "--name", "Head Office")

	path := filepath.Join(env.dir, "networks.csv")
	csv := "\ufeffAID,Name,Building,Bandwidth,Status\n" +
		"NAA-1,Duplicate,,,\n" +
		"NAA-2,Warehouse,Depot,100M,\n" +
		"NAA-3,Lab,Tower A,1G,suspended\n" +
		",Orphan,,,\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0644))

	out := env.mustRun("import", path)
	assert.Contains(t, out, "Imported 2 record(s), skipped 1 duplicate(s)")

	var rec domain.Record
	decodeResponse(t, env.mustRun("--format", "json", "show", "NAA-2"), &rec)
	assert.Equal(t, "Warehouse", rec.Name)
	assert.Equal(t, domain.StatusActive, rec.Status)
	require.Len(t, rec.History, 1)
	assert.Equal(t, domain.ActionImported, rec.History[0].Action)
	assert.Equal(t, domain.NoteImported, rec.History[0].Note)

	var result service.ImportResult
	decodeResponse(t, env.mustRun("--format", "json", "import", path), &result)
	assert.Equal(t, service.ImportResult{Skipped: 3}, result)
}

func TestImportJSON(t *testing.T) {
	env := newTestEnv(t)

	path := filepath.Join(env.dir, "networks.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"aid":"NAA-7","name":"Annex","bandwidth":"10G"}]`), 0644))

	assert.Contains(t, env.mustRun("import", path), "Imported 1 record(s)")

	var rec domain.Record
	decodeResponse(t, env.mustRun("--format", "json", "show", "annex"), &rec)
	assert.Equal(t, "10G", rec.Bandwidth)
}

func TestImportExportedYAML(t *testing.T) {
	src := newTestEnv(t)
	seedRecords(t, src)
	src.mustRun("export", "--as", "yaml", "--no-image")

	dst := newTestEnv(t)
	out := dst.mustRun("import", filepath.Join(src.outDir, "network_list.yaml"))
	assert.Contains(t, out, "Imported 3 record(s)")
}

func TestImportMissingFile(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("import", filepath.Join(env.dir, "nope.csv"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, env.mustRun("list"), "No records found")
}

func TestImportWatch(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "drop.csv")
	require.NoError(t, os.WriteFile(path, []byte("AID,Name\nNAA-1,Head Office\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := &RootOptions{Now: func() time.Time { return env.now }}
	cmd := NewRootCommandWithOptions(opts)
	stdout := &syncBuffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", env.cfgPath, "import", "--watch", path})

	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "Imported 1 record(s)")
	}, 5*time.Second, 20*time.Millisecond)

	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("AID,Name\nNAA-1,Head Office\nNAA-2,Warehouse\n"), 0644)
		return strings.Contains(stdout.String(), "skipped 1 duplicate(s)")
	}, 10*time.Second, 700*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}

	assert.Contains(t, env.mustRun("show", "NAA-2"), "Warehouse")
}

// syncBuffer is a bytes.Buffer safe to read while another goroutine writes
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
