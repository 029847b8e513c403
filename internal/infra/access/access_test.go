package access

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecker_Readable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.db")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	c := NewChecker()
	assert.True(t, c.Readable(path))
	assert.False(t, c.Readable(path+".missing"))
	assert.False(t, c.Readable(""))
}
