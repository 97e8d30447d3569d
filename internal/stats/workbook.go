package stats

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/timvw/webtrace/internal/trace"
)

const (
	SummarySheet = "Summary"
	RunsSheet    = "Runs"
)

// WriteWorkbook saves s as an xlsx file with a Summary sheet (one row per
// test case) and a Runs sheet (one row per run).
func WriteWorkbook(path string, s *Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(RunsSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	if err := writeSummary(f, s, bold); err != nil {
		return err
	}
	if err := writeRuns(f, s, bold); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, s *Summary, bold int) error {
	header := []any{"Test Case"}
	for _, r := range s.Runs {
		header = append(header, r.Label+" - Duration (s)", r.Label+" - Status")
	}
	header = append(header, "Duration Average (s)", "Pass Rate")
	if err := setRow(f, SummarySheet, 1, header); err != nil {
		return err
	}

	for i, row := range s.Rows {
		values := []any{row.Test}
		for _, c := range row.Cells {
			if c == nil {
				values = append(values, nil, nil)
				continue
			}
			values = append(values, seconds(c.Duration.Seconds()), strings.ToLower(string(c.Status)))
		}
		if avg, ok := row.AverageDuration(); ok {
			values = append(values, seconds(avg.Seconds()))
		} else {
			values = append(values, nil)
		}
		values = append(values, row.PassRate())
		if err := setRow(f, SummarySheet, i+2, values); err != nil {
			return err
		}
	}

	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", last, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	return f.SetColWidth(SummarySheet, "A", "A", 40)
}

func writeRuns(f *excelize.File, s *Summary, bold int) error {
	header := []any{"Run", "Version", "Start", "End", "Passed", "Failed", "Skipped"}
	if err := setRow(f, RunsSheet, 1, header); err != nil {
		return err
	}
	for i, r := range s.Runs {
		counts := r.Result.Counts()
		end := ""
		if r.Result.BuildEndTime != nil {
			end = r.Result.BuildEndTime.Format("2006-01-02 15:04:05")
		}
		values := []any{
			r.Label,
			r.Result.Version,
			r.Result.BuildStartTime.Format("2006-01-02 15:04:05"),
			end,
			counts[trace.StatusPassed],
			counts[trace.StatusFailed],
			counts[trace.StatusSkipped],
		}
		if err := setRow(f, RunsSheet, i+2, values); err != nil {
			return err
		}
	}
	return f.SetCellStyle(RunsSheet, "A1", "G1", bold)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

// seconds rounds to milliseconds.
func seconds(s float64) float64 {
	return float64(int64(s*1000+0.5)) / 1000
}
