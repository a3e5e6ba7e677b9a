package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/assetbot/assetbot/internal/config"
	"github.com/assetbot/assetbot/internal/excluder"
	"github.com/assetbot/assetbot/internal/exporters"
	"github.com/assetbot/assetbot/internal/logging"
	"github.com/assetbot/assetbot/internal/utils"
	log "github.com/sirupsen/logrus"
)

// Set at build time: go build -ldflags "-X main.version=1.2.3"
var version = "dev"

func main() {
	cli, err := config.ReadArgs(context.Background(), os.Args, os.Stdout)
	if errors.Is(err, config.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Dumping must work even when the user's config file is broken
	if dump, _ := cli[config.KeyDumpDefaultConfig].(bool); dump {
		if err := config.DumpDefault(os.Stdout); err != nil {
			log.Fatalf("Failed to dump default config: %v", err)
		}
		return
	}

	cfg, err := config.Resolve(cli)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logging.Setup(cfg.LogLevel(), os.Stderr)
	log.Debugf("assetbot %s", version)

	for _, key := range cfg.Unrecognized() {
		log.Warnf("Ignoring unrecognized config key %q", key)
	}

	if cfg.ListExporters() {
		fmt.Println(exporters.Render(exporters.Entries(cfg)))
		return
	}

	root := utils.ExpandTilde(cfg.WorkingDir())
	ex, err := excluder.New(cfg.IgnorePatterns(), root)
	if err != nil {
		log.Fatalf("Failed to compile ignore patterns: %v", err)
	}

	logResolved(cfg, root, ex)
}

// logResolved reports the configuration handed to the watcher.
func logResolved(cfg *config.Config, root string, ex *excluder.Excluder) {
	allowed := "all"
	if names := cfg.AllowedExporters(); len(names) > 0 {
		allowed = strings.Join(names, ", ")
	}

	log.WithFields(log.Fields{
		"working_dir":     root,
		"config":          cfg.ConfigPath(),
		"ignore_delete":   cfg.IgnoreDelete(),
		"ignore_patterns": ex.Len(),
		"exporters":       allowed,
	}).Info("Configuration resolved")

	mappings := cfg.PathMappings()
	if len(mappings) == 0 {
		log.Warn("No path mappings configured; nothing to export")
	}
	for _, m := range mappings {
		src := utils.ResolvePath(root, m.Source)
		dest := utils.ResolvePath(root, m.Dest)
		if ex.IsExcluded(src) {
			log.Warnf("Source %s matches an ignore pattern", src)
		}
		log.Infof("Mapping %s -> %s", src, dest)
	}

	for _, name := range cfg.ExporterNames() {
		if !cfg.ExporterAllowed(name) {
			log.Debugf("Exporter %s is configured but not allowed", name)
		}
	}
}
