package entity

import "time"

// KhataCustomer is a recurring credit-ledger buyer.
type KhataCustomer struct {
	ID        string
	Name      string // normalized (title case) so free-text buyer names group
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
