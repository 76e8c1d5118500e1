package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netledger/internal/domain"
)

func TestLog(t *testing.T) {
	env := newTestEnv(t)
	seedRecords(t, env)
	env.now = env.now.Add(time.Minute)
	env.mustRun("update", "NAA-1", "--set", "bandwidth=1G", "--note", "Customer Upgrade")
	env.now = env.now.Add(time.Minute)
	env.mustRun("update", "NAA-2", "--set", "status=inactive")

	var entries []domain.ActivityEntry
	decodeResponse(t, env.mustRun("--format", "json", "log"), &entries)
	require.Len(t, entries, 5)
	assert.Equal(t, "Changed status", entries[0].Action)
	assert.Equal(t, "Warehouse", entries[0].NetworkName)
	assert.Equal(t, "Changed bandwidth", entries[1].Action)

	decodeResponse(t, env.mustRun("--format", "json", "log", "bandwidth"), &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, "NAA-1", entries[0].NetworkAID)
	assert.Equal(t, "1G", entries[0].New())

	decodeResponse(t, env.mustRun("--format", "json", "log", "all", "-n", "2"), &entries)
	assert.Len(t, entries, 2)

	out := env.mustRun("log", "bandwidth", "--plain")
	assert.Contains(t, out, "Customer Upgrade")

	assert.Contains(t, env.mustRun("log", "public_ip"), "No activity recorded")
}
