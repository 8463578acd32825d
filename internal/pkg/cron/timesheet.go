package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/workforcehq/hr-workflow-go/internal/domain/timesheet"
)

// FinalizeTimesheetsJob locks ledger entries older than the retention
// window. Finalized entries reject further reconciliation, so late
// approvals cannot rewrite settled history.
func FinalizeTimesheetsJob(repo timesheet.TimesheetRepository, finalizeAfterDays int) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		now := time.Now().UTC()
		cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
			AddDate(0, 0, -finalizeAfterDays)

		count, err := repo.FinalizeOlderThan(ctx, cutoff)
		if err != nil {
			return err
		}

		if count > 0 {
			slog.Info("Finalized timesheet entries", "count", count, "cutoff", cutoff.Format("2006-01-02"))
		}
		return nil
	}
}
