package postgres

import (
	"context"
	"fmt"

	"github.com/copperwirepro/ledger-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo ReportRepository implementation over PostgreSQL. Aggregations
// run on committed state only; no locks.
type ReportRepo struct {
	q Querier
}

// NewReportRepository builds the adapter.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// StockSummary aggregates availability per source kind. Availability is
// derived in the query the same way the use case derives it per entry:
// total_quantity plus the entry's summed deltas.
func (r *ReportRepo) StockSummary() ([]*repository.StageSummaryRow, error) {
	query := `
		SELECT e.source_kind,
		       COUNT(*) AS entry_count,
		       SUM(e.total_quantity) AS total_created,
		       SUM(e.total_quantity + COALESCE(t.delta_sum, 0)) AS total_available
		FROM stock_entries e
		LEFT JOIN (
			SELECT entry_id, SUM(quantity_delta) AS delta_sum
			FROM ledger_transactions GROUP BY entry_id
		) t ON t.entry_id = e.id
		GROUP BY e.source_kind
		ORDER BY e.source_kind`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("stock summary: %w", err)
	}
	defer rows.Close()
	var list []*repository.StageSummaryRow
	for rows.Next() {
		var row repository.StageSummaryRow
		if err := rows.Scan(&row.SourceKind, &row.EntryCount, &row.TotalCreated, &row.TotalAvailable); err != nil {
			return nil, fmt.Errorf("scan stock summary: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// KhataBalances aggregates paid totals per customer, excluding sales that
// were later reversed.
func (r *ReportRepo) KhataBalances() ([]*repository.KhataBalanceRow, error) {
	query := `
		SELECT c.id, c.name,
		       COUNT(DISTINCT p.transaction_id) AS sale_count,
		       COALESCE(SUM(p.amount), 0) AS total_paid
		FROM khata_customers c
		LEFT JOIN khata_payments p ON p.customer_id = c.id
		  AND NOT EXISTS (
			SELECT 1 FROM ledger_transactions rt WHERE rt.reverses_id = p.transaction_id
		  )
		GROUP BY c.id, c.name
		ORDER BY c.name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("khata balances: %w", err)
	}
	defer rows.Close()
	var list []*repository.KhataBalanceRow
	for rows.Next() {
		var row repository.KhataBalanceRow
		if err := rows.Scan(&row.CustomerID, &row.Name, &row.SaleCount, &row.TotalPaid); err != nil {
			return nil, fmt.Errorf("scan khata balance: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}
