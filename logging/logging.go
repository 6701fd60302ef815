package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var initOnce sync.Once

// Init configures the process-wide zerolog logger. Unknown levels fall
// back to info. Safe to call more than once; only the first call wins.
func Init(level string, out io.Writer) {
	initOnce.Do(func() {
		lvl, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			lvl = zerolog.InfoLevel
		}
		if out == nil {
			out = zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: "2006-01-02 15:04:05",
			}
		}
		zerolog.TimestampFunc = func() time.Time {
			return time.Now().UTC()
		}
		log.Logger = zerolog.New(out).
			Level(lvl).
			With().
			Timestamp().
			Logger()
	})
}

// For returns a logger tagged with the given component name.
func For(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}
