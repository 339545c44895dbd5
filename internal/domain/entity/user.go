package entity

import "time"

// User represents a member account. This subsystem only reads members to
// resolve contribution requests; account management lives elsewhere.
type User struct {
	ID        uint64
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
