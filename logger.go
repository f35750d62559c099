package piart

import (
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	SetLogger(nil)
}

// SetLogger installs the logger shared by piart and its sub-packages.
// Passing nil silences logging again, which is also the state before the
// first call. It may be called while other goroutines are logging.
//
// Records written, by level:
//   - Debug: "render" with the painted cell count and pixel size, and
//     "generating palette" from each provider with its model.
//   - Info: "exported grid" with the PNG path, and the session's palette
//     generation lifecycle ("generating palette", "palette generated",
//     "palette generation failed", "palette reloaded").
//   - Warn: "discarding palette generated after close", "palette reload
//     failed", "digit labels disabled" and viewer export failures.
//
// Session records carry a "request" attribute with the generation's UUID.
//
// The piart CLI installs a text or JSON handler on stderr:
//
//	piart.SetLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger.Store(l)
}

// Logger returns the logger installed by SetLogger.
func Logger() *slog.Logger {
	return logger.Load()
}
