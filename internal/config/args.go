package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
)

const (
	description = "Watch for and export your assets to a desired location."
	epilog      = "Flags specified via a commandline invocation of this application " +
		"take precedence over the config file, if one is given."

	flagMapPath          = "map_path"
	flagAllowedExporters = "allowed_exporters"
)

// ReadArgs parses argv (program name first) into a raw mapping holding only
// the fields the user actually supplied, either as a flag or through the
// matching ASSETBOT_* environment variable. Help goes to out, and ReadArgs
// then returns ErrHelp.
func ReadArgs(ctx context.Context, argv []string, out io.Writer) (Raw, error) {
	if out == nil {
		out = os.Stdout
	}

	prog := "assetbot"
	var args []string
	if len(argv) > 0 {
		prog = argv[0]
		args = argv[1:]
	}

	args, bareExporters, err := expandMultiValueArgs(args)
	if err != nil {
		return nil, err
	}

	var raw Raw
	cmd := &cli.Command{
		Name:                      prog,
		Usage:                     description,
		Description:               epilog,
		Writer:                    out,
		ErrWriter:                 out,
		DisableSliceFlagSeparator: true,
		HideHelpCommand:           true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("ASSETBOT_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "working_dir",
				Aliases: []string{"wd"},
				Usage:   "working directory for the program",
				Sources: cli.EnvVars("ASSETBOT_WORKING_DIR"),
			},
			&cli.StringSliceFlag{
				Name:    flagMapPath,
				Aliases: []string{"m"},
				Usage:   "`src dest`: a folder to listen for changes in, and a folder to export to (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:    flagAllowedExporters,
				Aliases: []string{"e"},
				Usage:   "`exporter`s to use (all of them when the list is empty)",
			},
			&cli.StringFlag{
				Name:    "log_level",
				Aliases: []string{"l"},
				Usage:   "logging level: silent, normal, verbose",
				Sources: cli.EnvVars("ASSETBOT_LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:  "dump_default_config",
				Usage: "dump the default config file and exit",
			},
			&cli.BoolFlag{
				Name:    "ignore_delete",
				Usage:   "do not do anything when a source file is deleted",
				Sources: cli.EnvVars("ASSETBOT_IGNORE_DELETE"),
			},
			&cli.BoolFlag{
				Name:  "list_exporters",
				Usage: "list all currently available exporters and exit",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() > 0 {
				return fmt.Errorf("unrecognized arguments: %s", strings.Join(cmd.Args().Slice(), " "))
			}

			collected, err := collectArgs(cmd, bareExporters)
			if err != nil {
				return err
			}
			raw = collected
			return nil
		},
	}

	if err := cmd.Run(ctx, append([]string{prog}, args...)); err != nil {
		return nil, fmt.Errorf("parse arguments: %w", err)
	}
	if raw == nil {
		return nil, ErrHelp
	}

	return raw, nil
}

// collectArgs copies every flag the user set into a raw mapping.
// bareExporters records an "-e" given without names, which the parser never
// sees but still counts as an explicit, empty allow-list.
func collectArgs(cmd *cli.Command, bareExporters bool) (Raw, error) {
	raw := make(Raw)

	if cmd.IsSet("config") {
		raw[KeyConfig] = cmd.String("config")
	}
	if cmd.IsSet("working_dir") {
		raw[KeyWorkingDir] = cmd.String("working_dir")
	}
	if cmd.IsSet(flagMapPath) {
		values := cmd.StringSlice(flagMapPath)
		if len(values)%2 != 0 {
			return nil, fmt.Errorf("argument --map_path/-m: expected 2 arguments")
		}
		mappings := make([][2]string, 0, len(values)/2)
		for i := 0; i < len(values); i += 2 {
			mappings = append(mappings, [2]string{values[i], values[i+1]})
		}
		raw[KeyPathMappings] = mappings
	}
	switch {
	case bareExporters:
		raw[KeyAllowedExporters] = []string{}
	case cmd.IsSet(flagAllowedExporters):
		raw[KeyAllowedExporters] = append([]string{}, cmd.StringSlice(flagAllowedExporters)...)
	}
	if cmd.IsSet("log_level") {
		level := LogLevel(cmd.String("log_level"))
		if !level.Valid() {
			return nil, fmt.Errorf("argument --log_level/-l: invalid choice: %q (choose from silent, normal, verbose)", level)
		}
		raw[KeyLogLevel] = string(level)
	}
	for _, name := range []string{KeyDumpDefaultConfig, KeyIgnoreDelete, KeyListExporters} {
		if cmd.IsSet(name) {
			raw[name] = cmd.Bool(name)
		}
	}

	return raw, nil
}

// expandMultiValueArgs rewrites the multi-value flags into one
// --flag=value token per value, since the flag parser takes a single value
// per occurrence. "-m src dest" needs exactly two values and repeats
// accumulate. "-e" takes every following non-flag token, may take none, and
// the last occurrence wins; an empty final "-e" is reported through
// bareExporters. Everything after "--" is left alone.
func expandMultiValueArgs(args []string) (out []string, bareExporters bool, err error) {
	out = make([]string, 0, len(args))

	var (
		exporters     []string
		seenExporters bool
		rest          []string
	)

scan:
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, value, inline := strings.Cut(arg, "=")
		switch {
		case arg == "--":
			rest = args[i:]
			break scan
		case isMapPathFlag(name):
			if inline || i+2 >= len(args) || isFlagToken(args[i+1]) || isFlagToken(args[i+2]) {
				return nil, false, fmt.Errorf("argument --map_path/-m: expected 2 arguments")
			}
			out = append(out, "--"+flagMapPath+"="+args[i+1], "--"+flagMapPath+"="+args[i+2])
			i += 2
		case isExportersFlag(name):
			seenExporters = true
			exporters = exporters[:0]
			if inline {
				if value != "" {
					exporters = append(exporters, value)
				}
				continue
			}
			for i+1 < len(args) && !isFlagToken(args[i+1]) {
				exporters = append(exporters, args[i+1])
				i++
			}
		default:
			out = append(out, arg)
		}
	}

	for _, name := range exporters {
		out = append(out, "--"+flagAllowedExporters+"="+name)
	}
	out = append(out, rest...)

	return out, seenExporters && len(exporters) == 0, nil
}

func isMapPathFlag(arg string) bool {
	name, ok := flagName(arg)
	return ok && (name == "m" || name == flagMapPath)
}

func isExportersFlag(arg string) bool {
	name, ok := flagName(arg)
	return ok && (name == "e" || name == flagAllowedExporters)
}

// flagName strips the one or two leading dashes the flag parser accepts.
func flagName(arg string) (string, bool) {
	if !strings.HasPrefix(arg, "-") {
		return "", false
	}
	name := strings.TrimPrefix(strings.TrimPrefix(arg, "-"), "-")
	return name, name != "" && !strings.HasPrefix(name, "-")
}

func isFlagToken(arg string) bool {
	return len(arg) > 1 && strings.HasPrefix(arg, "-")
}
