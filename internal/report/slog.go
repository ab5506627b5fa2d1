package report

import (
	"context"
	"log/slog"
)

// SlogReporter forwards report lines to a structured logger.
// FAIL and FALSE lines are logged at warn level, everything else at info.
type SlogReporter struct {
	logger *slog.Logger
}

// NewSlog wraps logger as a Reporter.
func NewSlog(logger *slog.Logger) *SlogReporter {
	return &SlogReporter{logger: logger}
}

// Log implements Reporter.
func (s *SlogReporter) Log(message string, tag Tag, border ...string) {
	level := slog.LevelInfo
	if tag == TagFail || tag == TagFalse {
		level = slog.LevelWarn
	}
	s.logger.Log(context.Background(), level, message, "tag", string(tag))
}
