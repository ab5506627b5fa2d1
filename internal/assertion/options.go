package assertion

// Option adjusts a single assertion call.
type Option func(*callOptions)

type callOptions struct {
	absTol    float64
	relTol    float64
	verbosity Verbosity
}

// AbsTol sets the absolute tolerance for floating-point comparisons.
func AbsTol(tol float64) Option {
	return func(o *callOptions) { o.absTol = tol }
}

// RelTol sets the relative tolerance for floating-point comparisons, scaled
// by the larger magnitude of the two operands.
func RelTol(tol float64) Option {
	return func(o *callOptions) { o.relTol = tol }
}

// Tolerance sets both tolerances at once.
func Tolerance(abs, rel float64) Option {
	return func(o *callOptions) {
		o.absTol = abs
		o.relTol = rel
	}
}

// WithVerbosity overrides the engine default for one call.
func WithVerbosity(v Verbosity) Option {
	return func(o *callOptions) { o.verbosity = v }
}
