package employee

import "errors"

var (
	ErrEmployeeNotFound         = errors.New("employee not found")
	ErrNoManagerAssigned        = errors.New("employee has no manager assigned")
	ErrInsufficientLeaveBalance = errors.New("insufficient remaining leave balance")
)
