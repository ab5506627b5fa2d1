package bridge

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/amstokely/fortest/internal/assertion"
	"github.com/amstokely/fortest/internal/config"
	"github.com/amstokely/fortest/internal/report"
	"github.com/amstokely/fortest/internal/runner"
)

// FatalExitCode is the process status used by the default terminate
// function.
const FatalExitCode = 134

// Context bundles the state shared by every entry point.
//
// Not safe for concurrent use; registration and runs happen on one thread.
type Context struct {
	cfg       config.Config
	reporter  report.Reporter
	engine    *assertion.Engine
	session   *runner.Session
	logger    *slog.Logger
	errOut    io.Writer
	terminate func(code int)
}

// Option configures a Context.
type Option func(*options)

type options struct {
	cfg        config.Config
	reporter   report.Reporter
	logger     *slog.Logger
	errOut     io.Writer
	terminate  func(code int)
	runnerOpts []runner.Option
}

// WithConfig sets the configuration. Defaults to config.Default().
func WithConfig(cfg config.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithReporter replaces the console reporter.
func WithReporter(rep report.Reporter) Option {
	return func(o *options) { o.reporter = rep }
}

// WithLogger sets the diagnostics logger. Defaults to a stderr text logger
// at the configured level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithErrorOutput sets where fatal messages are written. Defaults to stderr.
func WithErrorOutput(w io.Writer) Option {
	return func(o *options) { o.errOut = w }
}

// WithTerminate replaces the function called after a fatal message.
func WithTerminate(fn func(code int)) Option {
	return func(o *options) { o.terminate = fn }
}

// WithRunnerOptions passes extra options to the session and its suites.
// They are applied after the ones derived from the configuration.
func WithRunnerOptions(opts ...runner.Option) Option {
	return func(o *options) { o.runnerOpts = append(o.runnerOpts, opts...) }
}

// New builds an isolated context.
func New(opts ...Option) *Context {
	o := options{
		cfg:       config.Default(),
		errOut:    os.Stderr,
		terminate: os.Exit,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.reporter == nil {
		o.reporter = report.NewConsole(os.Stdout, o.cfg.ColorMode())
	}
	if o.logger == nil {
		o.logger = o.cfg.Logger(os.Stderr)
	}

	engine := assertion.New(o.reporter, assertion.WithDefaultVerbosity(o.cfg.AssertVerbosity()))
	runnerOpts := append([]runner.Option{
		runner.WithLogger(o.logger),
		runner.WithResultsDB(o.cfg.ResultsDB),
	}, o.runnerOpts...)

	return &Context{
		cfg:       o.cfg,
		reporter:  o.reporter,
		engine:    engine,
		session:   runner.NewSession(engine, runnerOpts...),
		logger:    o.logger,
		errOut:    o.errOut,
		terminate: o.terminate,
	}
}

var (
	defaultOnce sync.Once
	defaultCtx  *Context
)

// Default returns the process-wide context, building it on first call.
// An unreadable or invalid $FORTEST_CONFIG falls back to defaults with a
// warning on stderr.
func Default() *Context {
	defaultOnce.Do(func() {
		cfg, err := config.FromEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "[FORTEST WARNING] %v; using default configuration\n", err)
			cfg = config.Default()
		}
		defaultCtx = New(WithConfig(cfg))
	})
	return defaultCtx
}

// Engine returns the shared assertion engine.
func (c *Context) Engine() *assertion.Engine { return c.engine }

// Session returns the session holding every registered suite.
func (c *Context) Session() *runner.Session { return c.session }

// Config returns the configuration the context was built with.
func (c *Context) Config() config.Config { return c.cfg }

// guard must be deferred by every entry point. It converts a panic into a
// fatal message.
func (c *Context) guard(entry string) {
	if r := recover(); r != nil {
		c.fatal(entry, fmt.Sprint(r))
	}
}

// check converts a returned error into a fatal message.
func (c *Context) check(entry string, err error) bool {
	if err == nil {
		return true
	}
	c.fatal(entry, err.Error())
	return false
}

func (c *Context) fatal(entry, message string) {
	c.logger.Error("fatal error at boundary", "entry", entry, "error", message)
	fmt.Fprintf(c.errOut, "[FORTEST FATAL] Exception in %s: %s\n", entry, message)
	c.terminate(FatalExitCode)
}

// normalize puts a foreign-supplied name into NFC form.
func normalize(name string) string {
	return norm.NFC.String(name)
}
