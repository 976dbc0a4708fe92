package dto

import "github.com/shopspring/decimal"

// StageSummaryDTO aggregate availability of one workflow stage.
type StageSummaryDTO struct {
	SourceKind     string          `json:"source_kind"`
	EntryCount     int             `json:"entry_count"`
	TotalCreated   decimal.Decimal `json:"total_created"`
	TotalAvailable decimal.Decimal `json:"total_available"`
}

// KhataBalanceDTO sales/payments position of one khata customer.
type KhataBalanceDTO struct {
	CustomerID string          `json:"customer_id"`
	Name       string          `json:"name"`
	SaleCount  int             `json:"sale_count"`
	TotalPaid  decimal.Decimal `json:"total_paid"`
}
