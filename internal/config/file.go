package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ReadFile parses the TOML document at path into a raw mapping. Nothing is
// validated or defaulted here: a missing file is an error, not an empty
// layer. I/O failures are wrapped so errors.Is(err, fs.ErrNotExist) still
// works; syntax errors come back as *FormatError.
func ReadFile(path string) (Raw, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	raw := make(Raw)
	if _, err := toml.NewDecoder(file).Decode(&raw); err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}

	return raw, nil
}
