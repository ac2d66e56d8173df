package employee

import "errors"

// Employee domain errors
var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrEmployeeInactive       = errors.New("employee account is deactivated")
	ErrBadgeAlreadyRegistered = errors.New("rfid uid already registered")
)
