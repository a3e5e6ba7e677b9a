package config

const (
	defaultWorkingDir = "."
	defaultLogLevel   = LogLevelNormal
)

// Default returns the base layer holding a value for every field. Each call
// allocates its own sequences and tables.
func Default() Raw {
	return Raw{
		KeyConfig:            "",
		KeyDumpDefaultConfig: false,
		KeyListExporters:     false,
		KeyIgnoreDelete:      false,
		KeyWorkingDir:        defaultWorkingDir,
		KeyLogLevel:          string(defaultLogLevel),
		KeyPathMappings:      [][2]string{},
		KeyAllowedExporters:  []string{},
		KeyIgnorePatterns:    []string{},
		KeyPatterns:          []map[string]any{},
		KeyExporters:         map[string]any{},
	}
}

// DefaultConfig returns a Config built from Default.
func DefaultConfig() *Config {
	cfg, err := New(Default())
	if err != nil {
		panic("config: defaults do not validate: " + err.Error())
	}
	return cfg
}
