package utils

import (
	"path/filepath"
	"strings"
)

// PathGuard answers containment questions against a fixed set of root
// directories. Roots are resolved once at construction; archive extraction
// uses a guard around its temp directory to reject entries that try to
// escape it.
type PathGuard struct {
	roots []string
}

func NewPathGuard(roots []string) *PathGuard {
	resolved := make([]string, 0, len(roots))
	for _, root := range roots {
		resolved = append(resolved, resolvePath(root))
	}
	return &PathGuard{roots: resolved}
}

// Contains reports whether path sits under any guarded root.
func (g *PathGuard) Contains(path string) bool {
	if g == nil || len(g.roots) == 0 {
		return false
	}
	abs := resolvePath(path)
	for _, root := range g.roots {
		rel, err := filepath.Rel(root, abs)
		if err != nil {
			continue
		}
		if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
			return true
		}
	}
	return false
}

// IsPathWithin reports whether path is located under any of the roots.
func IsPathWithin(path string, roots []string) bool {
	return NewPathGuard(roots).Contains(path)
}

func resolvePath(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		resolved = path
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return resolved
	}
	return abs
}
