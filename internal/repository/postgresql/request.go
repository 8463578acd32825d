package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/workforcehq/hr-workflow-go/internal/domain/request"
	"github.com/workforcehq/hr-workflow-go/internal/pkg/database"
)

type requestRepository struct {
	db *database.DB
}

// NewRequestRepository creates the PostgreSQL-backed request repository.
func NewRequestRepository(db *database.DB) request.RequestRepository {
	return &requestRepository{db: db}
}

const requestColumns = `r.id, r.type, r.status, r.employee_id, r.approver_id, r.processor_id,
		   r.title, r.user_reason, r.reject_reason, r.attachment_url, r.payload,
		   r.processed_by, r.processed_at, r.created_at, r.updated_at,
		   e.full_name`

func scanRequest(row pgx.Row) (request.Request, error) {
	var item request.Request
	var typ, status string
	var payload request.Payload

	err := row.Scan(
		&item.ID, &typ, &status, &item.EmployeeID, &item.ApproverID, &item.ProcessorID,
		&item.Title, &item.UserReason, &item.RejectReason, &item.AttachmentURL, &payload,
		&item.ProcessedBy, &item.ProcessedAt, &item.CreatedAt, &item.UpdatedAt,
		&item.EmployeeName,
	)
	if err != nil {
		return request.Request{}, err
	}

	item.Type = request.RequestType(typ)
	item.Status = request.RequestStatus(status)
	item.ApplyPayload(payload)
	return item, nil
}

// Create implements request.RequestRepository.
func (r *requestRepository) Create(ctx context.Context, item request.Request) (request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO requests (
			id, type, status, employee_id, approver_id, processor_id,
			title, user_reason, attachment_url, payload, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
	`

	_, err := q.Exec(ctx, query,
		item.ID,
		string(item.Type),
		string(item.Status),
		item.EmployeeID,
		item.ApproverID,
		item.ProcessorID,
		item.Title,
		item.UserReason,
		item.AttachmentURL,
		item.Payload(),
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return request.Request{}, fmt.Errorf("failed to create request: %w", err)
	}

	return item, nil
}

// GetByID implements request.RequestRepository.
func (r *requestRepository) GetByID(ctx context.Context, id string) (request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM requests r
		LEFT JOIN employees e ON e.id = r.employee_id
		WHERE r.id = $1
	`, requestColumns)

	item, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return request.Request{}, request.ErrRequestNotFound
		}
		return request.Request{}, fmt.Errorf("failed to get request: %w", err)
	}

	return item, nil
}

// UpdateStatus implements request.RequestRepository. The WHERE clause only
// matches pending rows, so a racing second transition loses here.
func (r *requestRepository) UpdateStatus(ctx context.Context, upd request.StatusUpdate) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE requests
		SET status = $1, reject_reason = $2, processed_by = $3, processed_at = $4, updated_at = $4
		WHERE id = $5 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query,
		string(upd.Status),
		upd.RejectReason,
		upd.ProcessedBy,
		upd.ProcessedAt,
		upd.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, upd.ID); err != nil {
			return err
		}
		return request.ErrRequestAlreadyProcessed
	}

	return nil
}

// UpdateProcessor implements request.RequestRepository.
func (r *requestRepository) UpdateProcessor(ctx context.Context, id, processorID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE requests
		SET processor_id = $1, updated_at = NOW()
		WHERE id = $2 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, processorID, id)
	if err != nil {
		return fmt.Errorf("failed to update request processor: %w", err)
	}

	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return request.ErrRequestAlreadyProcessed
	}

	return nil
}

// List implements request.RequestRepository.
func (r *requestRepository) List(ctx context.Context, filter request.RequestFilter) ([]request.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("r.employee_id = $%d", argIndex))
		args = append(args, filter.EmployeeID)
		argIndex++
	}
	if filter.ApproverID != "" {
		conditions = append(conditions, fmt.Sprintf("(r.approver_id = $%d OR r.processor_id = $%d)", argIndex, argIndex))
		args = append(args, filter.ApproverID)
		argIndex++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("r.status = $%d", argIndex))
		args = append(args, string(filter.Status))
		argIndex++
	}
	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("r.type = $%d", argIndex))
		args = append(args, string(filter.Type))
		argIndex++
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("r.created_at >= $%d", argIndex))
		args = append(args, *filter.DateFrom)
		argIndex++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("r.created_at < $%d", argIndex))
		args = append(args, *filter.DateTo)
		argIndex++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM requests r WHERE %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count requests: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM requests r
		LEFT JOIN employees e ON e.id = r.employee_id
		WHERE %s
		ORDER BY r.created_at DESC
		LIMIT $%d OFFSET $%d
	`, requestColumns, whereClause, argIndex, argIndex+1)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	var items []request.Request
	for rows.Next() {
		item, err := scanRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan request: %w", err)
		}
		items = append(items, item)
	}

	return items, total, nil
}

// ListByEmployeeTypeStatuses implements request.RequestRepository.
func (r *requestRepository) ListByEmployeeTypeStatuses(ctx context.Context, employeeID string, typ request.RequestType, statuses []request.RequestStatus) ([]request.Request, error) {
	q := GetQuerier(ctx, r.db)

	placeholders := make([]string, len(statuses))
	args := []interface{}{employeeID, string(typ)}
	for i, status := range statuses {
		placeholders[i] = fmt.Sprintf("$%d", i+3)
		args = append(args, string(status))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM requests r
		LEFT JOIN employees e ON e.id = r.employee_id
		WHERE r.employee_id = $1
		  AND r.type = $2
		  AND r.status IN (%s)
		ORDER BY r.created_at ASC
	`, requestColumns, strings.Join(placeholders, ", "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests by type and status: %w", err)
	}
	defer rows.Close()

	var items []request.Request
	for rows.Next() {
		item, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

// ListPendingForApproval implements request.RequestRepository. Oldest first,
// so a bounded batch drains the backlog in submission order.
func (r *requestRepository) ListPendingForApproval(ctx context.Context, approverID string, filter request.RequestFilter, limit int) ([]request.Request, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"r.status = 'pending'", "(r.approver_id = $1 OR r.processor_id = $1)"}
	args := []interface{}{approverID}
	argIndex := 2

	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("r.type = $%d", argIndex))
		args = append(args, string(filter.Type))
		argIndex++
	}
	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("r.employee_id = $%d", argIndex))
		args = append(args, filter.EmployeeID)
		argIndex++
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM requests r
		LEFT JOIN employees e ON e.id = r.employee_id
		WHERE %s
		ORDER BY r.created_at ASC
		LIMIT $%d
	`, requestColumns, strings.Join(conditions, " AND "), argIndex)

	args = append(args, limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	defer rows.Close()

	var items []request.Request
	for rows.Next() {
		item, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}
