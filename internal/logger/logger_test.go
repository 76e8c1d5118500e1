package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   zerolog.Level
	}{
		{"default info", Config{}, zerolog.InfoLevel},
		{"explicit warn", Config{Level: "warn"}, zerolog.WarnLevel},
		{"debug overrides level", Config{Level: "error", Debug: true}, zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewWithWriter(tt.config, &bytes.Buffer{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, l.GetLevel())
		})
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := NewWithWriter(Config{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = NewWithWriter(Config{Format: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestJSONFormatWithComponent(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := NewWithWriter(Config{Format: FormatJSON}, buf)
	require.NoError(t, err)

	cl := WithComponent(l, "store")
	cl.Info().Str("aid", "NAA-1").Msg("record created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "store", line["component"])
	assert.Equal(t, "NAA-1", line["aid"])
	assert.Equal(t, "record created", line["message"])
}

func TestNewTestLoggerDiscards(t *testing.T) {
	l := NewTestLogger()
	assert.Equal(t, zerolog.Disabled, l.GetLevel())
}
