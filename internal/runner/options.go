package runner

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/amstokely/fortest/internal/assertion"
	"github.com/amstokely/fortest/internal/report"
	"github.com/amstokely/fortest/internal/store"
)

// Clock supplies wall time for duration measurement.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// ResultWriter persists one outcome per executed test.
type ResultWriter interface {
	WriteResult(ctx context.Context, r store.Result) error
}

// ResultStore is a ResultWriter owned by a single suite run.
type ResultStore interface {
	ResultWriter
	Close() error
}

// OpenStoreFunc opens the result store for one suite run.
type OpenStoreFunc func() (ResultStore, error)

// Option configures a Suite or Session.
type Option func(*settings)

type settings struct {
	logger    *slog.Logger
	clock     Clock
	openStore OpenStoreFunc
	runID     func() string
}

func newSettings(opts []Option) settings {
	s := settings{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:  systemClock{},
		runID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithLogger sets the diagnostics logger. Test progress goes to the
// report.Reporter passed to Run, not here.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the clock used to measure test durations.
func WithClock(clock Clock) Option {
	return func(s *settings) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithRunIDs overrides the run id source. Every suite run draws one id.
func WithRunIDs(next func() string) Option {
	return func(s *settings) {
		if next != nil {
			s.runID = next
		}
	}
}

// WithResultStore persists results through stores returned by open. Each
// suite run opens its own store and closes it when the run ends.
func WithResultStore(open OpenStoreFunc) Option {
	return func(s *settings) {
		s.openStore = open
	}
}

// WithResultsDB persists results to the SQLite database at path.
// An empty path disables persistence.
func WithResultsDB(path string) Option {
	return func(s *settings) {
		if path == "" {
			s.openStore = nil
			return
		}
		s.openStore = func() (ResultStore, error) {
			return store.Open(path)
		}
	}
}

// Env carries the per-run collaborators handed down from a Suite to its
// tests.
type Env struct {
	Reporter report.Reporter
	Engine   *assertion.Engine
	Logger   *slog.Logger
	Clock    Clock

	// Results is optional. When nil nothing is persisted.
	Results ResultWriter

	// Suite and RunID label persisted rows.
	Suite string
	RunID string
}

func (e *Env) reporter() report.Reporter {
	if e.Reporter == nil {
		return report.Discard
	}
	return e.Reporter
}

func (e *Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e.Logger
}

func (e *Env) now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock.Now()
}

// record persists one outcome. Failures are logged and otherwise ignored.
func (e *Env) record(ctx context.Context, test string, status Status, elapsed time.Duration) {
	if e.Results == nil || status == StatusNone {
		return
	}
	err := e.Results.WriteResult(ctx, store.Result{
		RunID:    e.RunID,
		Suite:    e.Suite,
		Test:     test,
		Status:   status.String(),
		Duration: elapsed,
	})
	if err != nil {
		e.logger().Warn("failed to persist test result",
			"suite", e.Suite,
			"test", test,
			"error", err,
		)
	}
}
