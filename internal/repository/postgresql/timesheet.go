package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/workforcehq/hr-workflow-go/internal/domain/timesheet"
	"github.com/workforcehq/hr-workflow-go/internal/pkg/database"
)

type timesheetRepository struct {
	db *database.DB
}

// NewTimesheetRepository creates the PostgreSQL-backed timesheet repository.
func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepository{db: db}
}

const timesheetColumns = `t.id, t.employee_id, t.work_date,
		   t.check_in_time, t.check_out_time,
		   t.morning_status, t.afternoon_status, t.morning_wfh, t.afternoon_wfh,
		   t.late_minutes, t.early_leave_minutes, t.overtime_minutes, t.total_work_credit,
		   t.is_finalized, t.created_at, t.updated_at`

func scanTimesheet(row pgx.Row) (timesheet.DailyTimesheet, error) {
	var entry timesheet.DailyTimesheet
	var morning, afternoon *string

	err := row.Scan(
		&entry.ID, &entry.EmployeeID, &entry.WorkDate,
		&entry.CheckInTime, &entry.CheckOutTime,
		&morning, &afternoon, &entry.MorningWFH, &entry.AfternoonWFH,
		&entry.LateMinutes, &entry.EarlyLeaveMinutes, &entry.OvertimeMinutes, &entry.TotalWorkCredit,
		&entry.IsFinalized, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return timesheet.DailyTimesheet{}, err
	}

	if morning != nil {
		status := timesheet.ShiftStatus(*morning)
		entry.MorningStatus = &status
	}
	if afternoon != nil {
		status := timesheet.ShiftStatus(*afternoon)
		entry.AfternoonStatus = &status
	}
	return entry, nil
}

func shiftStatusValue(status *timesheet.ShiftStatus) *string {
	if status == nil {
		return nil
	}
	s := string(*status)
	return &s
}

// GetOrCreateForUpdate implements timesheet.TimesheetRepository. The insert
// is a no-op when the row exists; the following SELECT FOR UPDATE then locks
// the row either way, serializing concurrent approvals on the same day.
func (r *timesheetRepository) GetOrCreateForUpdate(ctx context.Context, employeeID string, date time.Time) (timesheet.DailyTimesheet, error) {
	q := GetQuerier(ctx, r.db)

	insert := `
		INSERT INTO daily_timesheets (id, employee_id, work_date, total_work_credit, created_at, updated_at)
		VALUES ($1, $2, $3, 0, NOW(), NOW())
		ON CONFLICT (employee_id, work_date) DO NOTHING
	`
	if _, err := q.Exec(ctx, insert, uuid.Must(uuid.NewV7()).String(), employeeID, date); err != nil {
		return timesheet.DailyTimesheet{}, fmt.Errorf("failed to ensure timesheet row: %w", err)
	}

	return r.lockRow(ctx, q, employeeID, date)
}

// GetForUpdate implements timesheet.TimesheetRepository.
func (r *timesheetRepository) GetForUpdate(ctx context.Context, employeeID string, date time.Time) (timesheet.DailyTimesheet, error) {
	q := GetQuerier(ctx, r.db)
	return r.lockRow(ctx, q, employeeID, date)
}

func (r *timesheetRepository) lockRow(ctx context.Context, q database.Querier, employeeID string, date time.Time) (timesheet.DailyTimesheet, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM daily_timesheets t
		WHERE t.employee_id = $1 AND t.work_date = $2
		FOR UPDATE
	`, timesheetColumns)

	entry, err := scanTimesheet(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.DailyTimesheet{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.DailyTimesheet{}, fmt.Errorf("failed to lock timesheet row: %w", err)
	}

	return entry, nil
}

// GetByEmployeeAndDate implements timesheet.TimesheetRepository.
func (r *timesheetRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (timesheet.DailyTimesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM daily_timesheets t
		WHERE t.employee_id = $1 AND t.work_date = $2
	`, timesheetColumns)

	entry, err := scanTimesheet(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.DailyTimesheet{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.DailyTimesheet{}, fmt.Errorf("failed to get timesheet: %w", err)
	}

	return entry, nil
}

// Save implements timesheet.TimesheetRepository.
func (r *timesheetRepository) Save(ctx context.Context, entry timesheet.DailyTimesheet) (timesheet.DailyTimesheet, error) {
	q := GetQuerier(ctx, r.db)

	if entry.ID == "" {
		entry.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO daily_timesheets (
			id, employee_id, work_date,
			check_in_time, check_out_time,
			morning_status, afternoon_status, morning_wfh, afternoon_wfh,
			late_minutes, early_leave_minutes, overtime_minutes, total_work_credit,
			is_finalized, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW()
		)
		ON CONFLICT (employee_id, work_date) DO UPDATE SET
			check_in_time = EXCLUDED.check_in_time,
			check_out_time = EXCLUDED.check_out_time,
			morning_status = EXCLUDED.morning_status,
			afternoon_status = EXCLUDED.afternoon_status,
			morning_wfh = EXCLUDED.morning_wfh,
			afternoon_wfh = EXCLUDED.afternoon_wfh,
			late_minutes = EXCLUDED.late_minutes,
			early_leave_minutes = EXCLUDED.early_leave_minutes,
			overtime_minutes = EXCLUDED.overtime_minutes,
			total_work_credit = EXCLUDED.total_work_credit,
			is_finalized = EXCLUDED.is_finalized,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID,
		entry.EmployeeID,
		entry.WorkDate,
		entry.CheckInTime,
		entry.CheckOutTime,
		shiftStatusValue(entry.MorningStatus),
		shiftStatusValue(entry.AfternoonStatus),
		entry.MorningWFH,
		entry.AfternoonWFH,
		entry.LateMinutes,
		entry.EarlyLeaveMinutes,
		entry.OvertimeMinutes,
		entry.TotalWorkCredit,
		entry.IsFinalized,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return timesheet.DailyTimesheet{}, fmt.Errorf("failed to save timesheet: %w", err)
	}

	return entry, nil
}

// ListByEmployee implements timesheet.TimesheetRepository.
func (r *timesheetRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]timesheet.DailyTimesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM daily_timesheets t
		WHERE t.employee_id = $1
		  AND t.work_date >= $2
		  AND t.work_date <= $3
		ORDER BY t.work_date ASC
	`, timesheetColumns)

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}
	defer rows.Close()

	var entries []timesheet.DailyTimesheet
	for rows.Next() {
		entry, err := scanTimesheet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// FinalizeOlderThan implements timesheet.TimesheetRepository.
func (r *timesheetRepository) FinalizeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE daily_timesheets
		SET is_finalized = true, updated_at = NOW()
		WHERE is_finalized = false AND work_date < $1
	`

	tag, err := q.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to finalize timesheets: %w", err)
	}

	return tag.RowsAffected(), nil
}
