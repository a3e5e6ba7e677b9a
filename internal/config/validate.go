package config

import (
	"fmt"
	"reflect"
	"slices"
	"sort"

	"github.com/mitchellh/mapstructure"
)

// New validates raw and builds a Config from it. Keys missing from raw take
// their default value. The checks run in a fixed order and the first
// failure is returned as a *ValidationError; no Config is produced then.
func New(raw Raw) (*Config, error) {
	merged := Merge(Default(), raw)

	if err := validate(merged); err != nil {
		return nil, err
	}

	return decode(merged)
}

func validate(raw Raw) error {
	if err := validateIgnoreDelete(raw[KeyIgnoreDelete]); err != nil {
		return err
	}
	if err := validateWorkingDir(raw[KeyWorkingDir]); err != nil {
		return err
	}
	if err := validateLogLevel(raw[KeyLogLevel]); err != nil {
		return err
	}
	if err := validatePathMappings(raw[KeyPathMappings]); err != nil {
		return err
	}
	if err := validateStrings(KeyAllowedExporters, raw[KeyAllowedExporters]); err != nil {
		return err
	}
	if err := validateStrings(KeyIgnorePatterns, raw[KeyIgnorePatterns]); err != nil {
		return err
	}
	if err := validateExporters(raw[KeyExporters]); err != nil {
		return err
	}
	if err := validatePatterns(raw[KeyPatterns]); err != nil {
		return err
	}
	return validateActions(raw)
}

func validateIgnoreDelete(v any) error {
	if !isKind(v, reflect.Bool) {
		return invalid(KeyIgnoreDelete, "ignore_delete should either be 'true' or 'false'")
	}
	return nil
}

func validateWorkingDir(v any) error {
	if !isKind(v, reflect.String) {
		return invalid(KeyWorkingDir, "working_dir should be a string")
	}
	return nil
}

func validateLogLevel(v any) error {
	if !isKind(v, reflect.String) || !LogLevel(reflect.ValueOf(v).String()).Valid() {
		return invalid(KeyLogLevel, "log_level should be either 'normal', 'silent' or 'verbose'")
	}
	return nil
}

func validatePathMappings(v any) error {
	entries, ok := sequence(v)
	if !ok {
		return invalid(KeyPathMappings, "path_mappings should be a list of entries")
	}
	for _, entry := range entries {
		pair, ok := sequence(entry)
		if !ok || len(pair) != 2 {
			return invalid(KeyPathMappings, "each entry in path_mappings has to be a list of 2 elements")
		}
		if !isKind(pair[0], reflect.String) || !isKind(pair[1], reflect.String) {
			return invalid(KeyPathMappings, "each entry in path_mappings has to be a pair of strings")
		}
	}
	return nil
}

func validateStrings(key string, v any) error {
	entries, ok := sequence(v)
	if !ok {
		return invalid(key, "%s should be a list of strings", key)
	}
	for _, entry := range entries {
		if !isKind(entry, reflect.String) {
			return invalid(key, "each entry in %s has to be a string", key)
		}
	}
	return nil
}

func validateExporters(v any) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return invalid(KeyExporters, "exporters should be a table of exporter options")
	}

	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	for _, key := range keys {
		name := key
		if name.Kind() == reflect.Interface {
			name = name.Elem()
		}
		if name.Kind() != reflect.String {
			return invalid(KeyExporters, "each exporter name should be a string")
		}
		opts := rv.MapIndex(key).Interface()
		if !isTable(opts) {
			return invalid(KeyExporters, "'exporters.%s' is not a list of key-value pairs.", name.String())
		}
		if _, err := NewValue(opts); err != nil {
			return invalid(KeyExporters, "'exporters.%s' has an unsupported value: %v", name.String(), err)
		}
	}
	return nil
}

func validatePatterns(v any) error {
	entries, ok := sequence(v)
	if !ok {
		return invalid(KeyPatterns, "patterns should be a list of tables")
	}
	for i, entry := range entries {
		if !isTable(entry) {
			return invalid(KeyPatterns, "each entry in patterns has to be a table")
		}
		if _, err := NewValue(entry); err != nil {
			return invalid(KeyPatterns, "patterns[%d] has an unsupported value: %v", i, err)
		}
	}
	return nil
}

func validateActions(raw Raw) error {
	if !isKind(raw[KeyConfig], reflect.String) {
		return invalid(KeyConfig, "config should be a path string")
	}
	for _, key := range []string{KeyDumpDefaultConfig, KeyListExporters} {
		if !isKind(raw[key], reflect.Bool) {
			return invalid(key, "%s should either be 'true' or 'false'", key)
		}
	}
	return nil
}

// sequence returns the elements of a slice or array held in v.
func sequence(v any) ([]any, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func isTable(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.IsValid() && rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String
}

func isKind(v any, kind reflect.Kind) bool {
	rv := reflect.ValueOf(v)
	return rv.IsValid() && rv.Kind() == kind
}

var valueType = reflect.TypeOf(Value{})

// valueHook turns arbitrary TOML data into Value wherever the target is one.
func valueHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != valueType {
		return data, nil
	}
	return NewValue(data)
}

func decode(raw Raw) (*Config, error) {
	var (
		f  fields
		md mapstructure.Metadata
	)

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &f,
		TagName:    "toml",
		Metadata:   &md,
		DecodeHook: mapstructure.DecodeHookFuncType(valueHook),
	})
	if err != nil {
		return nil, fmt.Errorf("create config decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	unrecognized := slices.Clone(md.Unused)
	slices.Sort(unrecognized)

	return &Config{f: f, unrecognized: unrecognized}, nil
}
