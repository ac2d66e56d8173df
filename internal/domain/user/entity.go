package user

import (
	"errors"
	"time"
)

// User is an operator account (admin dashboard / kiosk supervisor), distinct
// from an Employee: users authenticate, employees tap badges.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	IsAdmin      bool
	IsActive     bool
	CreatedAt    time.Time
}

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
