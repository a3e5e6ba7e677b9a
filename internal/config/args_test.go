package config

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets the ASSETBOT_* variables for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"ASSETBOT_CONFIG",
		"ASSETBOT_WORKING_DIR",
		"ASSETBOT_LOG_LEVEL",
		"ASSETBOT_IGNORE_DELETE",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func readArgs(t *testing.T, args ...string) (Raw, error) {
	t.Helper()
	var out bytes.Buffer
	return ReadArgs(context.Background(), append([]string{"assetbot"}, args...), &out)
}

func TestReadArgs(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name string
		args []string
		want Raw
	}{
		{
			name: "no flags",
			args: nil,
			want: Raw{},
		},
		{
			name: "repeated map paths",
			args: []string{"-m", "src1", "dst1", "-m", "src2", "dst2"},
			want: Raw{KeyPathMappings: [][2]string{{"src1", "dst1"}, {"src2", "dst2"}}},
		},
		{
			name: "long map path",
			args: []string{"--map_path", "in", "out"},
			want: Raw{KeyPathMappings: [][2]string{{"in", "out"}}},
		},
		{
			name: "working dir short alias",
			args: []string{"-wd", "/cli"},
			want: Raw{KeyWorkingDir: "/cli"},
		},
		{
			name: "config path",
			args: []string{"-c", "assetbot.toml"},
			want: Raw{KeyConfig: "assetbot.toml"},
		},
		{
			name: "exporters then another flag",
			args: []string{"-e", "png", "webp", "-l", "silent"},
			want: Raw{KeyAllowedExporters: []string{"png", "webp"}, KeyLogLevel: "silent"},
		},
		{
			name: "last exporters flag wins",
			args: []string{"-e", "png", "--allowed_exporters", "webp"},
			want: Raw{KeyAllowedExporters: []string{"webp"}},
		},
		{
			name: "trailing bare exporters flag clears",
			args: []string{"-e", "png", "-e"},
			want: Raw{KeyAllowedExporters: []string{}},
		},
		{
			name: "bare exporters flag then names",
			args: []string{"-e", "-l", "silent", "-e", "webp"},
			want: Raw{KeyAllowedExporters: []string{"webp"}, KeyLogLevel: "silent"},
		},
		{
			name: "inline exporter value",
			args: []string{"-e", "png", "gif", "--allowed_exporters=webp"},
			want: Raw{KeyAllowedExporters: []string{"webp"}},
		},
		{
			name: "bare exporters flag",
			args: []string{"-e"},
			want: Raw{KeyAllowedExporters: []string{}},
		},
		{
			name: "bare exporters flag before another flag",
			args: []string{"-e", "--ignore_delete"},
			want: Raw{KeyAllowedExporters: []string{}, KeyIgnoreDelete: true},
		},
		{
			name: "action flags",
			args: []string{"--dump_default_config", "--list_exporters"},
			want: Raw{KeyDumpDefaultConfig: true, KeyListExporters: true},
		},
		{
			name: "verbose",
			args: []string{"--log_level", "verbose"},
			want: Raw{KeyLogLevel: "verbose"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := readArgs(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, raw)
		})
	}
}

func TestReadArgsRejects(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "map path missing dest", args: []string{"-m", "src"}, wantErr: "expected 2 arguments"},
		{name: "map path followed by flag", args: []string{"-m", "src", "-l", "silent"}, wantErr: "expected 2 arguments"},
		{name: "map path halves inline", args: []string{"--map_path=a", "--map_path=b"}, wantErr: "expected 2 arguments"},
		{name: "short map path inline", args: []string{"-m=a", "b"}, wantErr: "expected 2 arguments"},
		{name: "invalid log level", args: []string{"-l", "loud"}, wantErr: "invalid choice"},
		{name: "unknown flag", args: []string{"--watch"}, wantErr: "watch"},
		{name: "positional argument", args: []string{"stray"}, wantErr: "unrecognized arguments: stray"},
		{name: "help is not a command", args: []string{"help"}, wantErr: "unrecognized arguments: help"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := readArgs(t, tt.args...)
			require.Error(t, err)
			assert.Nil(t, raw)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.NotErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestReadArgsHelp(t *testing.T) {
	clearEnv(t)

	var out bytes.Buffer
	raw, err := ReadArgs(context.Background(), []string{"assetbot", "--help"}, &out)
	assert.ErrorIs(t, err, ErrHelp)
	assert.Nil(t, raw)
	assert.Contains(t, out.String(), "map_path")
}

func TestReadArgsEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("ASSETBOT_WORKING_DIR", "/from/env")
	t.Setenv("ASSETBOT_IGNORE_DELETE", "true")

	raw, err := readArgs(t)
	require.NoError(t, err)
	assert.Equal(t, Raw{KeyWorkingDir: "/from/env", KeyIgnoreDelete: true}, raw)

	raw, err = readArgs(t, "-wd", "/from/flag")
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", raw[KeyWorkingDir])
}

func TestExpandMultiValueArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		want     []string
		wantBare bool
	}{
		{
			name: "map path pair",
			args: []string{"-m", "a", "b", "-l", "silent"},
			want: []string{"--map_path=a", "--map_path=b", "-l", "silent"},
		},
		{
			name: "exporters run until next flag",
			args: []string{"-e", "png", "webp", "--ignore_delete"},
			want: []string{"--ignore_delete", "--allowed_exporters=png", "--allowed_exporters=webp"},
		},
		{
			name: "later exporters flag replaces earlier",
			args: []string{"-e", "png", "-e", "webp"},
			want: []string{"--allowed_exporters=webp"},
		},
		{
			name:     "trailing bare exporters",
			args:     []string{"-e", "png", "--ignore_delete", "-e"},
			want:     []string{"--ignore_delete"},
			wantBare: true,
		},
		{
			name:     "bare exporters",
			args:     []string{"-e"},
			want:     []string{},
			wantBare: true,
		},
		{
			name: "terminator stops rewriting",
			args: []string{"-e", "png", "--", "-m", "a"},
			want: []string{"--allowed_exporters=png", "--", "-m", "a"},
		},
		{
			name: "dash is a value",
			args: []string{"-m", "-", "out"},
			want: []string{"--map_path=-", "--map_path=out"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, bare, err := expandMultiValueArgs(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantBare, bare)
		})
	}
}
