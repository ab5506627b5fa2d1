package fixture

// Func is a setup or teardown callback. Errors are returned unchanged to the
// caller of Setup/Teardown.
type Func func(args Handle) error

// Fixture pairs optional setup/teardown callbacks with an argument handle and
// a scope. It is immutable after construction and is shared by pointer
// between the session, suites and tests that reference it.
type Fixture struct {
	setup    Func
	teardown Func
	args     Handle
	scope    Scope
}

// New creates a fixture. Either callback may be nil.
func New(setup, teardown Func, args Handle, scope Scope) *Fixture {
	return &Fixture{
		setup:    setup,
		teardown: teardown,
		args:     args,
		scope:    scope,
	}
}

// ArgsOnly creates a callback-free fixture that only carries args.
// The session uses it to expose its arguments to every suite.
func ArgsOnly(args Handle, scope Scope) *Fixture {
	return New(nil, nil, args, scope)
}

// Setup invokes the setup callback with the args handle, if one is set.
func (f *Fixture) Setup() error {
	if f.setup == nil {
		return nil
	}
	return f.setup(f.args)
}

// Teardown invokes the teardown callback with the args handle, if one is set.
func (f *Fixture) Teardown() error {
	if f.teardown == nil {
		return nil
	}
	return f.teardown(f.args)
}

// Args returns the argument handle.
func (f *Fixture) Args() Handle { return f.args }

// Scope returns the fixture scope.
func (f *Fixture) Scope() Scope { return f.scope }

// HasSetup reports whether a setup callback is present.
func (f *Fixture) HasSetup() bool { return f.setup != nil }

// HasTeardown reports whether a teardown callback is present.
func (f *Fixture) HasTeardown() bool { return f.teardown != nil }

// ArgsOf returns the args of f, or the null handle when f is nil.
func ArgsOf(f *Fixture) Handle {
	if f == nil {
		return Handle{}
	}
	return f.args
}
