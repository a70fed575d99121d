package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"DEBUG":   LevelDebug,
		" Info ":  LevelInfo,
		"warn":    LevelWarn,
		"Warning": LevelWarn,
		"eRRor":   LevelError,
		"":        LevelInfo,
		"trace":   LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatJSON, ParseFormat(" json"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat(""))
	assert.Equal(t, FormatText, ParseFormat("yaml"))
}

func TestNew_LevelAndFormat(t *testing.T) {
	var out bytes.Buffer
	log := New(Config{Level: LevelWarn, Format: FormatJSON, Output: &out})

	log.Info("schema loaded")
	log.Warn("recovered panic", "field", "age")

	assert.NotContains(t, out.String(), "schema loaded")
	assert.Contains(t, out.String(), `"msg":"recovered panic"`)
	assert.Contains(t, out.String(), `"field":"age"`)
}

func TestNew_FileCopyIsJSON(t *testing.T) {
	var out, file bytes.Buffer
	log := New(Config{Level: LevelDebug, Format: FormatText, Output: &out, File: &file})

	log.With("schema", "users").Debug("field fallback", "field", "age")

	assert.Contains(t, out.String(), "msg=\"field fallback\"")
	assert.Contains(t, file.String(), `"msg":"field fallback"`)
	assert.Contains(t, file.String(), `"schema":"users"`)
}

func TestOpenFile_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dsynth.log")

	for _, msg := range []string{"first", "second"} {
		f, err := OpenFile(path)
		require.NoError(t, err)
		New(Config{Output: &bytes.Buffer{}, File: f}).Info(msg)
		require.NoError(t, f.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"first"`)
	assert.Contains(t, string(data), `"msg":"second"`)
}

func TestNopAndOrNop(t *testing.T) {
	assert.False(t, Nop().Enabled(context.Background(), LevelError))
	assert.NotNil(t, OrNop(nil))

	log := New(Config{Output: &bytes.Buffer{}})
	assert.Same(t, log, OrNop(log))
}
