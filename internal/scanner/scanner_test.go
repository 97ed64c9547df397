package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("int main() { return 0; }\n"), 0o644))
}

func TestCollectAssignments(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bob", "main.c"))
	writeFile(t, filepath.Join(root, "alice", "src", "main.py"))
	writeFile(t, filepath.Join(root, "alice", "util.java"))
	writeFile(t, filepath.Join(root, "alice", "notes.txt"))          // not a source extension
	writeFile(t, filepath.Join(root, "alice", ".hidden.c"))          // hidden file
	writeFile(t, filepath.Join(root, "carol", "node_modules", "x.js")) // excluded dir
	writeFile(t, filepath.Join(root, "loose.c"))                     // file at root, not an assignment

	s := New(nil)
	assignments, err := s.CollectAssignments(root)
	require.NoError(t, err)
	require.Len(t, assignments, 3)

	assert.Equal(t, "alice", assignments[0].Name)
	assert.Equal(t, []string{
		filepath.Join(root, "alice", "src", "main.py"),
		filepath.Join(root, "alice", "util.java"),
	}, assignments[0].Files)

	assert.Equal(t, "bob", assignments[1].Name)
	assert.Len(t, assignments[1].Files, 1)

	assert.Equal(t, "carol", assignments[2].Name)
	assert.Empty(t, assignments[2].Files, "files under excluded dirs must be skipped")
}

func TestCollectAssignmentsSkipsHiddenDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".git", "hook.py"))
	writeFile(t, filepath.Join(root, "dave", "main.go"))

	assignments, err := New(nil).CollectAssignments(root)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, "dave", assignments[0].Name)
}

func TestCollectAssignmentsMissingRoot(t *testing.T) {
	_, err := New(nil).CollectAssignments(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestCollectAssignmentsEmptyRoot(t *testing.T) {
	assignments, err := New(nil).CollectAssignments(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, assignments)
}
