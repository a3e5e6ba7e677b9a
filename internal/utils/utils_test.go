package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare tilde", in: "~", want: home},
		{name: "tilde slash", in: "~/assets", want: filepath.Join(home, "assets")},
		{name: "other user untouched", in: "~bob/assets", want: "~bob/assets"},
		{name: "relative untouched", in: "assets/src", want: "assets/src"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandTilde(tt.in))
		})
	}
}

func TestResolvePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	abs := filepath.Join(t.TempDir(), "out")

	assert.Equal(t, filepath.Join("work", "src"), ResolvePath("work", "src"))
	assert.Equal(t, abs, ResolvePath("work", abs))
	assert.Equal(t, filepath.Join(home, "src"), ResolvePath("work", "~/src"))
	assert.Equal(t, filepath.Join(home, "work", "src"), ResolvePath("~/work", "src"))
}
