package log

import (
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	dslog "github.com/grafana/dskit/log"
)

// NewLogger returns a logfmt logger writing to w that drops messages below
// lvl. Every line carries a timestamp and the caller.
func NewLogger(w io.Writer, lvl dslog.Level) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, lvl.Option)
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.Caller(3))
}
