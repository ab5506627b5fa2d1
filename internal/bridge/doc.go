// Package bridge exposes the runtime to foreign callers through a flat set
// of entry points.
//
// A Context owns one assertion engine, one session and one reporter. Most
// callers use the process-wide Default context, which is built on first use
// from $FORTEST_CONFIG; tests build isolated contexts with New.
//
// No error or panic escapes an entry point. Any internal failure is written
// to the error output as
//
//	[FORTEST FATAL] Exception in <entry point>: <message>
//
// and the terminate function is called. The default terminate function
// exits the process with status 134.
package bridge
