package config

import (
	"context"
	"io"

	"github.com/assetbot/assetbot/internal/utils"
)

// Resolve builds the effective configuration from the command-line layer.
// The config file is only read when cli names one; its errors are returned
// as is. Precedence is CLI over file over defaults, per top-level field.
// Invocation-only fields (config, dump_default_config, list_exporters) are
// taken from the command line alone.
func Resolve(cli Raw) (*Config, error) {
	var file Raw
	if path, ok := cli[KeyConfig].(string); ok && path != "" {
		var err error
		file, err = ReadFile(utils.ExpandTilde(path))
		if err != nil {
			return nil, err
		}
		for _, key := range actionKeys {
			delete(file, key)
		}
	}

	return New(Merge(Default(), file, cli))
}

// Load reads argv and resolves the configuration in one step.
func Load(ctx context.Context, argv []string, out io.Writer) (*Config, error) {
	cli, err := ReadArgs(ctx, argv, out)
	if err != nil {
		return nil, err
	}
	return Resolve(cli)
}
