// Package fileops moves files to the system trash on behalf of the
// presentation layer. The detector itself never deletes anything and
// has no opinion on which copy of a duplicate survives.
package fileops

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/fenilsonani/dupefinder/internal/platform"
)

// Trasher moves files into the platform trash so removals stay
// recoverable. On Linux it follows the XDG trash layout (files/ plus a
// .trashinfo record under info/); on macOS files move into ~/.Trash.
type Trasher struct {
	platformInfo *platform.Info
}

// New creates a new Trasher
func New(info *platform.Info) *Trasher {
	return &Trasher{platformInfo: info}
}

// MoveToTrash moves a single file to the trash
func (t *Trasher) MoveToTrash(path string) error {
	normalized, err := filepath.Abs(path)
	if err != nil {
		normalized = filepath.Clean(path)
	}
	if resolved, rerr := filepath.EvalSymlinks(normalized); rerr == nil {
		normalized = resolved
	}

	info, err := os.Lstat(normalized)
	if err != nil {
		return categorizeError(normalized, err)
	}
	if !info.Mode().IsRegular() {
		return &TrashError{Path: normalized, Reason: ErrorNotAFile}
	}

	if err := os.MkdirAll(t.platformInfo.TrashFilesDir, 0700); err != nil {
		return categorizeError(normalized, err)
	}

	target := uniqueName(t.platformInfo.TrashFilesDir, filepath.Base(normalized))

	if t.platformInfo.OS == platform.Linux {
		if err := os.MkdirAll(t.platformInfo.TrashInfoDir, 0700); err != nil {
			return categorizeError(normalized, err)
		}
		if err := writeTrashInfo(t.platformInfo.TrashInfoDir, filepath.Base(target), normalized); err != nil {
			return categorizeError(normalized, err)
		}
	}

	if err := moveFile(normalized, target); err != nil {
		return categorizeError(normalized, err)
	}

	return nil
}

// MoveAllToTrash moves multiple files to the trash and returns a
// per-path result map. A nil value means the file was trashed.
func (t *Trasher) MoveAllToTrash(paths []string) map[string]error {
	results := make(map[string]error, len(paths))
	for _, path := range paths {
		results[path] = t.MoveToTrash(path)
	}
	return results
}

// uniqueName picks a target name that does not collide with anything
// already in the trash, suffixing like "name.2.txt" when needed.
func uniqueName(dir, base string) string {
	candidate := filepath.Join(dir, base)
	if _, err := os.Lstat(candidate); os.IsNotExist(err) {
		return candidate
	}

	ext := filepath.Ext(base)
	stem := base[:len(base)-len(ext)]
	for i := 2; ; i++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s.%d%s", stem, i, ext))
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// writeTrashInfo records the original location per the XDG trash spec
// so desktop environments can restore the file.
func writeTrashInfo(infoDir, trashedName, originalPath string) error {
	content := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		url.PathEscape(originalPath),
		time.Now().Format("2006-01-02T15:04:05"))

	infoPath := filepath.Join(infoDir, trashedName+".trashinfo")
	return os.WriteFile(infoPath, []byte(content), 0600)
}

// moveFile renames src to dst, falling back to copy-and-remove when the
// trash lives on a different filesystem.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}

	return os.Remove(src)
}
