package stats

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/timvw/webtrace/internal/trace"
)

func exec(name string, status trace.Status, start time.Time, d time.Duration) trace.ExecutionRecord {
	end := start.Add(d)
	return trace.ExecutionRecord{TestName: name, Status: status, StartTime: start, EndTime: &end}
}

func writeRun(t *testing.T, root string, start time.Time, execs ...trace.ExecutionRecord) {
	t.Helper()
	dir := filepath.Join(root, trace.RunDirName(start))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	end := start.Add(time.Minute)
	require.NoError(t, trace.WriteResult(filepath.Join(dir, trace.ArtifactName), &trace.Result{
		Version:        "1.0.0",
		BuildStartTime: start,
		BuildEndTime:   &end,
		Executions:     execs,
	}))
}

func registry(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	day1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	setup := exec("setUp", trace.StatusPassed, day1, time.Second)
	setup.IsConfiguration = true
	writeRun(t, root, day2,
		exec("login", trace.StatusPassed, day2, 4*time.Second),
		exec("search", trace.StatusSkipped, day2, time.Second),
	)
	writeRun(t, root, day1,
		setup,
		exec("login", trace.StatusPassed, day1, 2*time.Second),
		exec("checkout", trace.StatusFailed, day1, 5*time.Second),
	)
	// Directories without an artifact are not runs.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "TestRun-broken"), 0o755))
	return root
}

func TestSummarize(t *testing.T) {
	runs, err := Load(context.Background(), registry(t), 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "TestRun-20260301-100000", runs[0].Label)

	s := Summarize(runs)
	require.Len(t, s.Rows, 3)
	checkout, login, search := s.Rows[0], s.Rows[1], s.Rows[2]
	assert.Equal(t, "checkout", checkout.Test)
	assert.Nil(t, checkout.Cells[1])
	_, ok := checkout.AverageDuration()
	assert.False(t, ok, "never passed")
	assert.Zero(t, checkout.PassRate())

	avg, ok := login.AverageDuration()
	require.True(t, ok)
	assert.Equal(t, 3*time.Second, avg)
	assert.Equal(t, 1.0, login.PassRate())

	assert.Nil(t, search.Cells[0])
	assert.Equal(t, trace.StatusSkipped, search.Cells[1].Status)
}

func TestLoadReportsCorruptArtifact(t *testing.T) {
	root := registry(t)
	dir := filepath.Join(root, "TestRun-20260303-090000")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, trace.ArtifactName), []byte("{"), 0o644))

	_, err := Load(context.Background(), root, 4)
	var aerr *trace.ArtifactError
	assert.ErrorAs(t, err, &aerr)
}

func TestWriteWorkbook(t *testing.T) {
	runs, err := Load(context.Background(), registry(t), 0)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "stats.xlsx")
	require.NoError(t, WriteWorkbook(path, Summarize(runs)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SummarySheet, RunsSheet}, f.GetSheetList())

	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{
		"Test Case",
		"TestRun-20260301-100000 - Duration (s)", "TestRun-20260301-100000 - Status",
		"TestRun-20260302-100000 - Duration (s)", "TestRun-20260302-100000 - Status",
		"Duration Average (s)", "Pass Rate",
	}, rows[0])
	assert.Equal(t, []string{"login", "2", "passed", "4", "passed", "3", "1"}, rows[2])

	runRows, err := f.GetRows(RunsSheet)
	require.NoError(t, err)
	require.Len(t, runRows, 3)
	assert.Equal(t, []string{"TestRun-20260301-100000", "1.0.0", "2026-03-01 10:00:00", "2026-03-01 10:01:00", "1", "1", "0"}, runRows[1])
}
