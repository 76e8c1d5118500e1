package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testEnv is an isolated data directory with its own config file
type testEnv struct {
	t       *testing.T
	dir     string
	cfgPath string
	outDir  string
	sender  *fakeSender
	now     time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		t:       t,
		dir:     dir,
		cfgPath: filepath.Join(dir, "netledger.yaml"),
		outDir:  filepath.Join(dir, "out"),
		sender:  &fakeSender{fail: map[string]error{}},
		now:     time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	cfg := fmt.Sprintf(`version: 1
storage:
  driver: json
  path: %s
logging:
  level: error
  format: console
export:
  dir: %s
`, filepath.Join(dir, "network_data.json"), env.outDir)
	require.NoError(t, os.WriteFile(env.cfgPath, []byte(cfg), 0600))

	return env
}

// run executes the CLI and returns stdout and the command error
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	opts := &RootOptions{
		Now:    func() time.Time { return e.now },
		Sender: e.sender,
	}
	cmd := NewRootCommandWithOptions(opts)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(append([]string{"--config", e.cfgPath}, args...))

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

// mustRun executes the CLI and fails the test on error
func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	require.NoError(e.t, err, "args: %v", args)
	return out
}

// jsonResponse is CLIResponse with the payload left raw
type jsonResponse struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *CLIError       `json:"error"`
	RunID  string          `json:"run_id"`
}

func decodeResponse(t *testing.T, out string, data any) jsonResponse {
	t.Helper()
	var resp jsonResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	if data != nil && len(resp.Data) > 0 {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
	return resp
}

// fakeSender records deliveries instead of calling Telegram
type fakeSender struct {
	sent []sentFile
	fail map[string]error
}

type sentFile struct {
	ChatID string
	Name   string
}

func (f *fakeSender) SendDocument(ctx context.Context, chatID, path string) error {
	name := filepath.Base(path)
	if err, ok := f.fail[name]; ok {
		return err
	}
	f.sent = append(f.sent, sentFile{ChatID: chatID, Name: name})
	return nil
}
