package detector

import "path/filepath"

// normalizePath resolves a path to its absolute, symlink-free canonical
// form so that two references to the same underlying file compare equal
// as strings. When resolution fails (broken link, vanished file) it
// falls back to lexical absolute-path normalization.
func normalizePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}

	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}

	return filepath.Clean(abs)
}

// isHidden reports whether a base name follows the hidden-file
// convention of a leading dot.
func isHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}
