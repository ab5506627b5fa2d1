// fortest is the companion command line tool of the fortest runtime.
//
// Usage:
//
//	fortest config --libs              # link flags for build scripts
//	fortest config --all               # every installation path
//	fortest results ./fortest.db       # persisted test results
//	fortest results ./fortest.db --format json
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/amstokely/fortest/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := cli.NewRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}
