package reports

import (
	"context"

	"github.com/copperwirepro/ledger-api/internal/application/dto"
	"github.com/copperwirepro/ledger-api/internal/domain/repository"
)

// UseCase read-only reporting over the ledger: stage-wise availability and
// khata balances. Replaces the per-screen aggregation the frontend used to do.
type UseCase struct {
	reportRepo repository.ReportRepository
}

// NewUseCase builds the reports use case.
func NewUseCase(reportRepo repository.ReportRepository) *UseCase {
	return &UseCase{reportRepo: reportRepo}
}

// StockSummary returns total created and available quantity per source kind.
func (uc *UseCase) StockSummary(ctx context.Context) ([]dto.StageSummaryDTO, error) {
	rows, err := uc.reportRepo.StockSummary()
	if err != nil {
		return nil, err
	}
	out := make([]dto.StageSummaryDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StageSummaryDTO{
			SourceKind:     r.SourceKind,
			EntryCount:     r.EntryCount,
			TotalCreated:   r.TotalCreated,
			TotalAvailable: r.TotalAvailable,
		})
	}
	return out, nil
}

// KhataBalances returns the paid totals per khata customer, undone sales
// excluded.
func (uc *UseCase) KhataBalances(ctx context.Context) ([]dto.KhataBalanceDTO, error) {
	rows, err := uc.reportRepo.KhataBalances()
	if err != nil {
		return nil, err
	}
	out := make([]dto.KhataBalanceDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.KhataBalanceDTO{
			CustomerID: r.CustomerID,
			Name:       r.Name,
			SaleCount:  r.SaleCount,
			TotalPaid:  r.TotalPaid,
		})
	}
	return out, nil
}
