package repository

import "github.com/shopspring/decimal"

// StageSummaryRow is the aggregate availability of one workflow stage.
type StageSummaryRow struct {
	SourceKind     string
	EntryCount     int
	TotalCreated   decimal.Decimal
	TotalAvailable decimal.Decimal
}

// KhataBalanceRow is the sales/payments position of one khata customer.
type KhataBalanceRow struct {
	CustomerID string
	Name       string
	SaleCount  int
	TotalPaid  decimal.Decimal
}

// ReportRepository aggregates read-only reporting queries. Reads do not lock;
// they see a consistent snapshot of committed state.
type ReportRepository interface {
	StockSummary() ([]*StageSummaryRow, error)
	KhataBalances() ([]*KhataBalanceRow, error)
}
