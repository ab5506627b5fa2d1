package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amstokely/fortest/internal/config"
	"github.com/amstokely/fortest/internal/store"
)

// seedResults creates a database with two runs.
func seedResults(t *testing.T, rows ...store.Result) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "results.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	for _, r := range rows {
		require.NoError(t, st.WriteResult(context.Background(), r))
	}
	return dbPath
}

func defaultRows() []store.Result {
	return []store.Result{
		{RunID: "run-a", Suite: "math", Test: "adds", Status: store.StatusPass, Duration: 500 * time.Millisecond},
		{RunID: "run-a", Suite: "math", Test: "subtracts", Status: store.StatusFail, Duration: 1250 * time.Millisecond},
		{RunID: "run-b", Suite: "strings", Test: "compares", Status: store.StatusPass},
	}
}

func executeResults(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	t.Setenv(config.EnvVar, "")

	buf := &bytes.Buffer{}
	cmd := NewResultsCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestResultsCommand_MissingArgs(t *testing.T) {
	_, err := executeResults(t, "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestResultsCommand_DatabaseNotFound(t *testing.T) {
	buf, err := executeResults(t, "json", filepath.Join(t.TempDir(), "missing.db"))

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeDBNotFound, resp.Error.Code)
}

func TestResultsCommand_TextGolden(t *testing.T) {
	dbPath := seedResults(t, defaultRows()...)

	buf, err := executeResults(t, "text", dbPath)

	// One stored failure means exit code 1
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "results_text", buf.Bytes())
}

func TestResultsCommand_RunFilter(t *testing.T) {
	dbPath := seedResults(t, defaultRows()...)

	buf, err := executeResults(t, "json", dbPath, "--run", "run-b")
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   ResultsSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Data.Total)
	assert.Equal(t, 1, resp.Data.Passed)
	require.Len(t, resp.Data.Results, 1)
	assert.Equal(t, "compares", resp.Data.Results[0].Test)
}

func TestResultsCommand_ListRuns(t *testing.T) {
	dbPath := seedResults(t, defaultRows()...)

	buf, err := executeResults(t, "text", dbPath, "--runs")
	require.NoError(t, err)
	assert.Equal(t, "run-a\nrun-b\n", buf.String())
}

func TestResultsCommand_Empty(t *testing.T) {
	dbPath := seedResults(t)

	buf, err := executeResults(t, "text", dbPath)
	require.NoError(t, err)
	assert.Equal(t, "No results found.\n", buf.String())

	buf, err = executeResults(t, "json", dbPath)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"results": []`)
}
