// Package config resolves the runtime configuration for assetbot.
//
// Values come from three layers: built-in defaults, an optional TOML file
// and command-line flags, in increasing precedence. The merged mapping is
// checked by an ordered set of validation gates and only then turned into a
// Config, which is never modified after construction.
package config

import (
	"maps"
	"slices"
)

// LogLevel controls how much the watcher reports.
type LogLevel string

const (
	LogLevelNormal  LogLevel = "normal"
	LogLevelSilent  LogLevel = "silent"
	LogLevelVerbose LogLevel = "verbose"
)

// LogLevels lists the accepted log levels in the order they are shown to users.
var LogLevels = []LogLevel{LogLevelSilent, LogLevelNormal, LogLevelVerbose}

// Valid reports whether l is one of the accepted levels.
func (l LogLevel) Valid() bool {
	return slices.Contains(LogLevels, l)
}

// PathMapping pairs a watched source folder with its export destination.
type PathMapping struct {
	Source string
	Dest   string
}

// fields is the decode target for a validated raw mapping.
type fields struct {
	ConfigPath        string           `toml:"config"`
	DumpDefaultConfig bool             `toml:"dump_default_config"`
	ListExporters     bool             `toml:"list_exporters"`
	IgnoreDelete      bool             `toml:"ignore_delete"`
	WorkingDir        string           `toml:"working_dir"`
	LogLevel          LogLevel         `toml:"log_level"`
	PathMappings      [][2]string      `toml:"path_mappings"`
	AllowedExporters  []string         `toml:"allowed_exporters"`
	IgnorePatterns    []string         `toml:"ignore_patterns"`
	Patterns          []Table          `toml:"patterns"`
	Exporters         map[string]Table `toml:"exporters"`
}

// Config is the resolved, validated configuration. It is built once by New
// and is safe for concurrent reads. Accessors return copies, so callers
// cannot change a Config through the values they get back.
type Config struct {
	f            fields
	unrecognized []string
}

// ConfigPath returns the config file path given on the command line, if any.
func (c *Config) ConfigPath() string { return c.f.ConfigPath }

// DumpDefaultConfig reports whether the default config should be printed.
func (c *Config) DumpDefaultConfig() bool { return c.f.DumpDefaultConfig }

// ListExporters reports whether the available exporters should be listed.
func (c *Config) ListExporters() bool { return c.f.ListExporters }

// IgnoreDelete reports whether deleting a source file should be ignored.
func (c *Config) IgnoreDelete() bool { return c.f.IgnoreDelete }

// WorkingDir returns the directory relative paths are resolved against.
func (c *Config) WorkingDir() string { return c.f.WorkingDir }

// LogLevel returns how much the watcher should report.
func (c *Config) LogLevel() LogLevel { return c.f.LogLevel }

// PathMappings returns the source/destination folder pairs in order.
func (c *Config) PathMappings() []PathMapping {
	out := make([]PathMapping, 0, len(c.f.PathMappings))
	for _, m := range c.f.PathMappings {
		out = append(out, PathMapping{Source: m[0], Dest: m[1]})
	}
	return out
}

// AllowedExporters returns the exporter allow-list. Empty means every
// exporter is allowed.
func (c *Config) AllowedExporters() []string {
	return cloneStrings(c.f.AllowedExporters)
}

// IgnorePatterns returns the glob patterns for paths the watcher skips.
func (c *Config) IgnorePatterns() []string {
	return cloneStrings(c.f.IgnorePatterns)
}

// Patterns returns the per-file-type routing tables. They are carried
// through untouched; nothing consumes them yet.
func (c *Config) Patterns() []Table {
	out := make([]Table, 0, len(c.f.Patterns))
	for _, p := range c.f.Patterns {
		out = append(out, p.Clone())
	}
	return out
}

// Exporters returns the per-exporter option tables keyed by exporter name.
func (c *Config) Exporters() map[string]Table {
	out := make(map[string]Table, len(c.f.Exporters))
	for name, opts := range c.f.Exporters {
		out[name] = opts.Clone()
	}
	return out
}

// ExporterNames returns the configured exporter names, sorted.
func (c *Config) ExporterNames() []string {
	return slices.Sorted(maps.Keys(c.f.Exporters))
}

// ExporterAllowed reports whether the exporter called name may run.
func (c *Config) ExporterAllowed(name string) bool {
	if len(c.f.AllowedExporters) == 0 {
		return true
	}
	return slices.Contains(c.f.AllowedExporters, name)
}

// Unrecognized returns the top-level keys that were present in the merged
// mapping but are not configuration fields.
func (c *Config) Unrecognized() []string {
	return cloneStrings(c.unrecognized)
}

// Raw returns a freshly allocated raw mapping describing c. Passing it back
// to New yields an equal Config.
func (c *Config) Raw() Raw {
	mappings := make([][2]string, len(c.f.PathMappings))
	copy(mappings, c.f.PathMappings)

	patterns := make([]map[string]any, 0, len(c.f.Patterns))
	for _, p := range c.f.Patterns {
		patterns = append(patterns, p.Interface())
	}

	exporters := make(map[string]any, len(c.f.Exporters))
	for name, opts := range c.f.Exporters {
		exporters[name] = opts.Interface()
	}

	return Raw{
		KeyConfig:            c.f.ConfigPath,
		KeyDumpDefaultConfig: c.f.DumpDefaultConfig,
		KeyListExporters:     c.f.ListExporters,
		KeyIgnoreDelete:      c.f.IgnoreDelete,
		KeyWorkingDir:        c.f.WorkingDir,
		KeyLogLevel:          string(c.f.LogLevel),
		KeyPathMappings:      mappings,
		KeyAllowedExporters:  cloneStrings(c.f.AllowedExporters),
		KeyIgnorePatterns:    cloneStrings(c.f.IgnorePatterns),
		KeyPatterns:          patterns,
		KeyExporters:         exporters,
	}
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
