package logging

import (
	"io"

	"github.com/assetbot/assetbot/internal/config"
	log "github.com/sirupsen/logrus"
)

func init() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

// Level maps a configured log level to its logrus level. Silent still lets
// errors through so failures are never swallowed.
func Level(level config.LogLevel) log.Level {
	switch level {
	case config.LogLevelSilent:
		return log.ErrorLevel
	case config.LogLevelVerbose:
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}

// Setup points the standard logger at w and applies level.
func Setup(level config.LogLevel, w io.Writer) {
	if w != nil {
		log.SetOutput(w)
	}
	log.SetLevel(Level(level))
}
