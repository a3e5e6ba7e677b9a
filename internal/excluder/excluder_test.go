package excluder

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsExcluded(t *testing.T) {
	root := filepath.Join("assets", "src")
	ex, err := New([]string{"*.tmp", "drafts/**", ".git"}, root)
	require.NoError(t, err)
	assert.Equal(t, 3, ex.Len())

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "base name glob", path: filepath.Join(root, "sprites", "hero.tmp"), want: true},
		{name: "directory glob", path: filepath.Join(root, "drafts", "a", "b.png"), want: true},
		{name: "exact name", path: filepath.Join(root, ".git"), want: true},
		{name: "not matched", path: filepath.Join(root, "sprites", "hero.png"), want: false},
		{name: "drafts elsewhere", path: filepath.Join(root, "final", "drafts.png"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ex.IsExcluded(tt.path))
		})
	}
}

func TestNewRejectsMalformedPattern(t *testing.T) {
	_, err := New([]string{"[unterminated"}, ".")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[unterminated")
}

func TestNoPatternsExcludesNothing(t *testing.T) {
	ex, err := New(nil, ".")
	require.NoError(t, err)
	assert.False(t, ex.IsExcluded("anything.png"))
}
