package excluder

import (
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"
)

// Excluder matches file paths against a list of ignore patterns.
type Excluder struct {
	root  string
	globs []glob.Glob
}

// New compiles patterns for paths under root. Patterns use '/' as the path
// separator, so "*" never crosses a directory boundary while "**" does.
func New(patterns []string, root string) (*Excluder, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pat := range patterns {
		g, err := glob.Compile(pat, '/')
		if err != nil {
			return nil, fmt.Errorf("compile ignore pattern %q: %w", pat, err)
		}
		globs = append(globs, g)
	}
	return &Excluder{root: root, globs: globs}, nil
}

// IsExcluded reports whether path, taken relative to the root, or its base
// name matches any pattern.
func (e *Excluder) IsExcluded(path string) bool {
	rel := path
	if r, err := filepath.Rel(e.root, path); err == nil {
		rel = r
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)

	for _, g := range e.globs {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

// Len returns the number of compiled patterns.
func (e *Excluder) Len() int {
	return len(e.globs)
}
