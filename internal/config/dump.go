package config

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// DumpDefault writes the default configuration as a TOML document that
// ReadFile can load back. Invocation-only fields are left out.
func DumpDefault(w io.Writer) error {
	return Dump(w, DefaultConfig())
}

// Dump writes cfg as a TOML config file.
func Dump(w io.Writer, cfg *Config) error {
	raw := cfg.Raw()
	for _, key := range actionKeys {
		delete(raw, key)
	}

	if err := toml.NewEncoder(w).Encode(raw); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
