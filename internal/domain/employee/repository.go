package employee

import (
	"context"

	"github.com/shopspring/decimal"
)

// EmployeeRepository is the narrow directory interface the workflow core
// consumes. Employee records are owned by an external directory; this service
// only reads them and decrements the leave balance counter.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// DeductLeaveBalance atomically decrements the remaining balance. It must
	// fail with ErrInsufficientLeaveBalance rather than drive the counter
	// negative, and is only ever called inside the approving transaction.
	DeductLeaveBalance(ctx context.Context, id string, days decimal.Decimal) error
}
