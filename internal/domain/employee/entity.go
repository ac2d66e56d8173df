package employee

import (
	"time"
)

type Employee struct {
	ID         int64
	Name       string
	RFIDUID    string
	Email      *string
	Phone      *string
	Department *string
	Position   *string
	IsActive   bool
	CreatedAt  time.Time
}
