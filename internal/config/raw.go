package config

// Raw is an untyped field-name to value mapping as produced by a single
// configuration source. It carries no guarantees beyond TOML-shaped data.
type Raw map[string]any

// Field names shared by every source.
const (
	KeyConfig            = "config"
	KeyDumpDefaultConfig = "dump_default_config"
	KeyListExporters     = "list_exporters"
	KeyIgnoreDelete      = "ignore_delete"
	KeyWorkingDir        = "working_dir"
	KeyLogLevel          = "log_level"
	KeyPathMappings      = "path_mappings"
	KeyAllowedExporters  = "allowed_exporters"
	KeyIgnorePatterns    = "ignore_patterns"
	KeyPatterns          = "patterns"
	KeyExporters         = "exporters"
)

// Keys lists every configuration field name.
var Keys = []string{
	KeyConfig,
	KeyDumpDefaultConfig,
	KeyListExporters,
	KeyIgnoreDelete,
	KeyWorkingDir,
	KeyLogLevel,
	KeyPathMappings,
	KeyAllowedExporters,
	KeyIgnorePatterns,
	KeyPatterns,
	KeyExporters,
}

// actionKeys only make sense for a single invocation and are left out of
// dumped config files.
var actionKeys = []string{KeyConfig, KeyDumpDefaultConfig, KeyListExporters}

// Merge overlays layers from lowest to highest precedence. Only top-level
// keys are considered and a present key replaces the lower value wholesale.
// Nil layers are skipped. The returned mapping is newly allocated.
func Merge(layers ...Raw) Raw {
	merged := make(Raw)
	for _, layer := range layers {
		for key, value := range layer {
			merged[key] = value
		}
	}
	return merged
}
