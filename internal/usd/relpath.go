package usd

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RelativeTo computes the reference path stored in a document for target,
// relative to the referencing document's directory. Layered scene formats
// resolve references against the containing file's directory, so the anchor
// is fromFile's dir, not fromFile itself. Separators are normalized to
// forward slashes and same-or-descendant paths get a "./" prefix.
func RelativeTo(fromFile, target string) (string, error) {
	rel, err := filepath.Rel(filepath.Dir(fromFile), target)
	if err != nil {
		return "", fmt.Errorf("relative path from %s to %s: %w", fromFile, target, err)
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, "../") {
		rel = "./" + rel
	}
	return rel, nil
}

// ResolveFrom is the inverse of RelativeTo: it anchors a stored reference
// path at the referencing document's directory and returns the absolute
// target path.
func ResolveFrom(fromFile, ref string) string {
	return filepath.Clean(filepath.Join(filepath.Dir(fromFile), filepath.FromSlash(ref)))
}
