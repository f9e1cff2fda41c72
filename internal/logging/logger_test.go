package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Config{Level: "loud", OutputPaths: []string{"stderr"}})
	assert.Error(t, err)

	l := NewOrNop(Config{Level: "loud"})
	require.NotNil(t, l)
	l.Info("discarded")
}

func TestFileConfigWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "xpense.log")
	l, err := New(FileConfig("info", path))
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("rates fetched")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.Contains(out, `"message":"rates fetched"`), out)
	assert.False(t, strings.Contains(out, "hidden"))
}
