package fileops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenilsonani/dupefinder/internal/platform"
)

func newTestTrasher(t *testing.T) (*Trasher, string) {
	t.Helper()

	root := t.TempDir()
	trash := filepath.Join(root, "Trash")
	info := &platform.Info{
		OS:            platform.Linux,
		HomeDir:       root,
		TrashDir:      trash,
		TrashFilesDir: filepath.Join(trash, "files"),
		TrashInfoDir:  filepath.Join(trash, "info"),
	}
	return New(info), root
}

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestMoveToTrash(t *testing.T) {
	trasher, root := newTestTrasher(t)
	path := createFile(t, root, "doc.txt", "contents")

	require.NoError(t, trasher.MoveToTrash(path))

	// Original gone, trash copy present
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	trashed := filepath.Join(trasher.platformInfo.TrashFilesDir, "doc.txt")
	data, err := os.ReadFile(trashed)
	require.NoError(t, err)
	assert.Equal(t, "contents", string(data))

	// XDG .trashinfo record written alongside
	infoPath := filepath.Join(trasher.platformInfo.TrashInfoDir, "doc.txt.trashinfo")
	info, err := os.ReadFile(infoPath)
	require.NoError(t, err)
	assert.Contains(t, string(info), "[Trash Info]")
	assert.Contains(t, string(info), "DeletionDate=")
}

func TestMoveToTrashNameCollision(t *testing.T) {
	trasher, root := newTestTrasher(t)

	first := createFile(t, root, "a/same.txt", "first")
	second := createFile(t, root, "b/same.txt", "second")

	require.NoError(t, trasher.MoveToTrash(first))
	require.NoError(t, trasher.MoveToTrash(second))

	one, err := os.ReadFile(filepath.Join(trasher.platformInfo.TrashFilesDir, "same.txt"))
	require.NoError(t, err)
	two, err := os.ReadFile(filepath.Join(trasher.platformInfo.TrashFilesDir, "same.2.txt"))
	require.NoError(t, err)

	assert.Equal(t, "first", string(one))
	assert.Equal(t, "second", string(two))
}

func TestMoveToTrashMissingFile(t *testing.T) {
	trasher, root := newTestTrasher(t)

	err := trasher.MoveToTrash(filepath.Join(root, "nope.txt"))
	var trashErr *TrashError
	require.ErrorAs(t, err, &trashErr)
	assert.Equal(t, ErrorFileNotFound, trashErr.Reason)
}

func TestMoveToTrashRejectsDirectory(t *testing.T) {
	trasher, root := newTestTrasher(t)
	dir := filepath.Join(root, "subdir")
	require.NoError(t, os.MkdirAll(dir, 0755))

	err := trasher.MoveToTrash(dir)
	var trashErr *TrashError
	require.ErrorAs(t, err, &trashErr)
	assert.Equal(t, ErrorNotAFile, trashErr.Reason)
}

func TestMoveAllToTrash(t *testing.T) {
	trasher, root := newTestTrasher(t)
	ok1 := createFile(t, root, "x/1.txt", "1")
	ok2 := createFile(t, root, "x/2.txt", "2")
	missing := filepath.Join(root, "x/3.txt")

	results := trasher.MoveAllToTrash([]string{ok1, ok2, missing})

	require.Len(t, results, 3)
	assert.NoError(t, results[ok1])
	assert.NoError(t, results[ok2])
	assert.Error(t, results[missing])
}

func TestMacOSTrashHasNoInfoDir(t *testing.T) {
	root := t.TempDir()
	trash := filepath.Join(root, ".Trash")
	trasher := New(&platform.Info{
		OS:            platform.MacOS,
		HomeDir:       root,
		TrashDir:      trash,
		TrashFilesDir: trash,
	})

	path := createFile(t, root, "doc.txt", "contents")
	require.NoError(t, trasher.MoveToTrash(path))

	_, err := os.Stat(filepath.Join(trash, "doc.txt"))
	assert.NoError(t, err)

	entries, err := os.ReadDir(trash)
	require.NoError(t, err)
	assert.Len(t, entries, 1) // no .trashinfo sidecar on macOS
}

func TestFileInfo(t *testing.T) {
	root := t.TempDir()
	path := createFile(t, root, "sub/file.bin", "12345")

	info, err := FileInfo(path)
	require.NoError(t, err)

	assert.Equal(t, "file.bin", info.Name)
	assert.Equal(t, int64(5), info.Size)
	assert.Equal(t, filepath.Dir(path), info.Dir)

	_, err = FileInfo(filepath.Join(root, "missing"))
	assert.Error(t, err)
}

func TestRelativePath(t *testing.T) {
	assert.Equal(t, "a/b.txt", RelativePath("/root/a/b.txt", "/root"))
	assert.Equal(t, "b.txt", RelativePath("/root/a/b.txt", "/root/a"))
}
