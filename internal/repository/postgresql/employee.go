package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/workforcehq/hr-workflow-go/internal/domain/employee"
	"github.com/workforcehq/hr-workflow-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

// NewEmployeeRepository creates the PostgreSQL-backed employee repository.
func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, email, manager_id, remaining_leave_balance, hire_date, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID,
		&emp.FullName,
		&emp.Email,
		&emp.ManagerID,
		&emp.RemainingLeaveBalance,
		&emp.HireDate,
		&emp.CreatedAt,
		&emp.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// DeductLeaveBalance implements employee.EmployeeRepository. The guard in
// the WHERE clause keeps the counter from ever going negative, even under
// concurrent approvals.
func (r *employeeRepository) DeductLeaveBalance(ctx context.Context, id string, days decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET remaining_leave_balance = remaining_leave_balance - $1, updated_at = NOW()
		WHERE id = $2 AND remaining_leave_balance >= $1
	`

	tag, err := q.Exec(ctx, query, days, id)
	if err != nil {
		return fmt.Errorf("failed to deduct leave balance: %w", err)
	}

	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return employee.ErrInsufficientLeaveBalance
	}

	return nil
}
