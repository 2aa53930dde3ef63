// Package obslog sets up the default structured logger used across this
// module's components.
package obslog

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

const timeFormat = "15:04:05.000"

// Setup installs a tint-backed slog handler as the default logger, at the
// given level. Call this once from a CLI main(); library code only ever
// logs through slog.Default() and never calls Setup itself.
func Setup(level slog.Level) {
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: timeFormat,
		NoColor:    !isTerminal(os.Stderr),
	})
	slog.SetDefault(slog.New(handler))
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
