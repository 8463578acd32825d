package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the directory projection this service consumes: identity, the
// manager who defaults as request approver, and the leave balance counter.
type Employee struct {
	ID                    string
	FullName              string
	Email                 *string
	ManagerID             *string
	RemainingLeaveBalance decimal.Decimal
	HireDate              time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
