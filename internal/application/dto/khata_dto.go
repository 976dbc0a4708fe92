package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateKhataCustomerRequest body for POST /api/khata/customers.
type CreateKhataCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// KhataCustomerResponse one khata customer.
type KhataCustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PaymentLineRequest one method/amount line of a khata sale split.
type PaymentLineRequest struct {
	Method    string          `json:"method"` // CASH | BANK | CHECK
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference,omitempty"`
}

// RecordKhataSaleRequest body for POST /api/khata/sales. Payment lines must
// sum exactly to quantity * price_per_unit.
type RecordKhataSaleRequest struct {
	CustomerID   string               `json:"customer_id"`
	EntryID      string               `json:"entry_id"`
	Quantity     decimal.Decimal      `json:"quantity"`
	PricePerUnit decimal.Decimal      `json:"price_per_unit"`
	Payments     []PaymentLineRequest `json:"payments"`
}

// KhataSaleResponse result of a recorded khata sale.
type KhataSaleResponse struct {
	TransactionID string          `json:"transaction_id"`
	EntryID       string          `json:"entry_id"`
	CustomerID    string          `json:"customer_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Total         decimal.Decimal `json:"total"`
	Timestamp     time.Time       `json:"timestamp"`
}

// StatementLineDTO one row of a customer statement.
type StatementLineDTO struct {
	TransactionID string          `json:"transaction_id"`
	EntryLabel    string          `json:"entry_label"`
	Quantity      decimal.Decimal `json:"quantity"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Reference     string          `json:"reference,omitempty"`
	Reversed      bool            `json:"reversed"`
	Date          time.Time       `json:"date"`
}

// StatementResponse the khata statement of one customer.
type StatementResponse struct {
	Customer  KhataCustomerResponse `json:"customer"`
	Lines     []StatementLineDTO    `json:"lines"`
	TotalPaid decimal.Decimal       `json:"total_paid"`
}
