package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"bitbucket.org/jarzapp/woosync_backend/config"
	"bitbucket.org/jarzapp/woosync_backend/models"
	"github.com/xuri/excelize/v2"
)

// Exports recent sync runs and their errors to a spreadsheet for the ops
// team.
func main() {
	out := flag.String("out", "sync-report.xlsx", "output file path")
	limit := flag.Int("limit", 200, "maximum runs to export")
	flag.Parse()

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()

	var runs []models.SyncRun
	if err := db.Order("id desc").Limit(*limit).Find(&runs).Error; err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	runIDs := make([]uint, 0, len(runs))
	for _, run := range runs {
		runIDs = append(runIDs, run.ID)
	}
	var syncErrors []models.SyncError
	if len(runIDs) > 0 {
		if err := db.Where("sync_run_id IN ?", runIDs).Order("id desc").Find(&syncErrors).Error; err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	runsSheet := "Runs"
	f.SetSheetName("Sheet1", runsSheet)
	runHeader := []interface{}{"Run ID", "Type", "Status", "Triggered By", "Fetched", "Processed", "Created", "Skipped", "Errors", "Started", "Finished", "Duration (ms)"}
	_ = f.SetSheetRow(runsSheet, "A1", &runHeader)
	for i, run := range runs {
		row := []interface{}{
			run.RunID,
			run.RunType,
			run.Status,
			run.TriggeredBy,
			run.Fetched,
			run.Processed,
			run.Created,
			run.Skipped,
			run.Errors,
			formatTime(run.StartedAt),
			formatTime(run.FinishedAt),
			run.DurationMs,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = f.SetSheetRow(runsSheet, cell, &row)
	}

	errSheet := "Errors"
	if _, err := f.NewSheet(errSheet); err == nil {
		errHeader := []interface{}{"Run ID", "Entity", "External ID", "Code", "Message", "Retryable"}
		_ = f.SetSheetRow(errSheet, "A1", &errHeader)
		for i, e := range syncErrors {
			row := []interface{}{
				e.SyncRunID,
				e.EntityType,
				e.ExternalID,
				e.ErrorCode,
				e.Message,
				e.Retryable,
			}
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			_ = f.SetSheetRow(errSheet, cell, &row)
		}
	}

	if err := f.SaveAs(*out); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d runs, %d errors)\n", *out, len(runs), len(syncErrors))
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
