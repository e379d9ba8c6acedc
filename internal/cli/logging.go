package cli

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// newLogger returns a stderr logger. The level comes from $LOG_LEVEL
// (default warn); verbose forces debug.
func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	logger.SetLevel(parseLogLevel(os.Getenv("LOG_LEVEL")))
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func parseLogLevel(s string) logrus.Level {
	if s == "" {
		return logrus.WarnLevel
	}
	level, err := logrus.ParseLevel(strings.TrimSpace(s))
	if err != nil {
		return logrus.WarnLevel
	}
	return level
}
