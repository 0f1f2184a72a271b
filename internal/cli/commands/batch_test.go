package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBatchFile(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exprs.txt")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o600))
	return path
}

func TestBatchCommand(t *testing.T) {
	path := writeBatchFile(t, `# a comment
1 + 2

2 km
(2i)^2
`)

	cmd := NewBatchCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())

	// Results come back in input order, comments and blanks skipped.
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "1 + 2 = 3", lines[0])
	assert.Equal(t, "2 km = 2000 m", lines[1])
	assert.Equal(t, "(2i)^2 = -4", lines[2])
}

func TestBatchCommandStopsOnError(t *testing.T) {
	path := writeBatchFile(t, "1 + 2\n2 l\n")

	cmd := NewBatchCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected token")
}

func TestBatchCommandKeepGoing(t *testing.T) {
	path := writeBatchFile(t, "1 + 2\n2 l\n3 A\n")

	cmd := NewBatchCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{path, "--keep-going"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 expressions failed")

	out := buf.String()
	assert.Contains(t, out, "1 + 2 = 3")
	assert.Contains(t, out, "2 l = error:")
	assert.Contains(t, out, "3 A = 3 A")
}

func TestBatchCommandEmptyFile(t *testing.T) {
	path := writeBatchFile(t, "# only comments\n")

	cmd := NewBatchCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{path})

	assert.Error(t, cmd.Execute())
}
