package logging

import (
	"strings"

	"github.com/charmbracelet/log"
)

// Setup configures the global logger from the configured level string.
// Unknown values fall back to info.
func Setup(level string) {
	log.SetReportTimestamp(true)
	log.SetTimeFormat("15:04:05")

	var logLevel log.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = log.DebugLevel
	case "info":
		logLevel = log.InfoLevel
	case "warn", "warning":
		logLevel = log.WarnLevel
	case "error":
		logLevel = log.ErrorLevel
	case "fatal":
		logLevel = log.FatalLevel
	default:
		logLevel = log.InfoLevel
	}

	log.SetLevel(logLevel)
}
