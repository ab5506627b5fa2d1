package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amstokely/fortest/internal/config"
	"github.com/amstokely/fortest/internal/report"
	"github.com/amstokely/fortest/internal/store"
)

// ResultsOptions holds flags for the results command.
type ResultsOptions struct {
	*RootOptions
	RunID    string // only show this run
	ListRuns bool   // list run ids instead of rows
}

// ResultsSummary is the JSON payload of the results command.
type ResultsSummary struct {
	Results []store.Result `json:"results"`
	Passed  int            `json:"passed"`
	Failed  int            `json:"failed"`
	Total   int            `json:"total"`
}

// NewResultsCommand creates the results command.
func NewResultsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResultsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "results <db>",
		Short: "Show persisted test results",
		Long: `Show test results written by runs configured with results_db.

Exit codes:
  0 - All listed results passed
  1 - One or more listed results failed
  2 - Command error (database not found, etc.)

Examples:
  fortest results ./fortest.db
  fortest results ./fortest.db --run 6f1c...
  fortest results ./fortest.db --runs
  fortest results ./fortest.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResults(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.RunID, "run", "", "only show results of this run id")
	cmd.Flags().BoolVar(&opts.ListRuns, "runs", false, "list run ids, oldest first")

	return cmd
}

func runResults(opts *ResultsOptions, dbPath string, cmd *cobra.Command) error {
	out := newFormatter(opts.RootOptions, cmd)

	// Open would create an empty database; a missing file is a user error here
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		_ = out.Error(ErrCodeDBNotFound, fmt.Sprintf("database not found: %s", dbPath))
		return NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", dbPath))
	}

	st, err := store.Open(dbPath)
	if err != nil {
		_ = out.Error(ErrCodeDBRead, err.Error())
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.ListRuns {
		runs, err := st.ReadRunIDs(ctx)
		if err != nil {
			_ = out.Error(ErrCodeDBRead, err.Error())
			return WrapExitError(ExitCommandError, "failed to read runs", err)
		}
		if out.JSON() {
			return out.Success(map[string][]string{"runs": runs})
		}
		for _, id := range runs {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	}

	rows, err := st.ReadResults(ctx, opts.RunID)
	if err != nil {
		_ = out.Error(ErrCodeDBRead, err.Error())
		return WrapExitError(ExitCommandError, "failed to read results", err)
	}
	out.VerboseLog("read %d results from %s", len(rows), dbPath)

	summary := ResultsSummary{Results: rows, Total: len(rows)}
	if summary.Results == nil {
		summary.Results = []store.Result{}
	}
	for _, r := range rows {
		if r.Status == store.StatusPass {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}

	if out.JSON() {
		if err := out.Success(summary); err != nil {
			return err
		}
	} else {
		writeResultsText(cmd, summary)
	}

	if summary.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d results failed", summary.Failed, summary.Total))
	}
	return nil
}

func writeResultsText(cmd *cobra.Command, summary ResultsSummary) {
	w := cmd.OutOrStdout()
	if summary.Total == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	colour := report.ColorAuto
	if cfg, err := config.FromEnv(); err == nil {
		colour = cfg.ColorMode()
	}
	console := report.NewConsole(w, colour)

	currentRun := ""
	for _, r := range summary.Results {
		if r.RunID != currentRun {
			currentRun = r.RunID
			console.Log("Run "+r.RunID, "")
		}
		tag := report.TagPass
		if r.Status != store.StatusPass {
			tag = report.TagFail
		}
		console.Log(fmt.Sprintf("%s/%s (%.3fs)", r.Suite, r.Test, r.Duration.Seconds()), tag)
	}
	fmt.Fprintf(w, "\n%d results: %d passed, %d failed\n", summary.Total, summary.Passed, summary.Failed)
}
