package khata

import (
	"context"

	"github.com/copperwirepro/ledger-api/internal/application/dto"
	"github.com/copperwirepro/ledger-api/internal/domain/entity"
	"github.com/copperwirepro/ledger-api/internal/domain/repository"
)

// SaleTxRunner executes a khata sale inside one DB transaction: the SELL
// ledger transaction and its payment lines commit together or not at all.
type SaleTxRunner interface {
	RunKhataSale(ctx context.Context, fn func(
		entryRepo repository.StockEntryRepository,
		txnRepo repository.LedgerTransactionRepository,
		customerRepo repository.KhataCustomerRepository,
		paymentRepo repository.KhataPaymentRepository,
	) error) error
}

// StatementPDFGenerator renders a customer statement to PDF bytes.
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, customer *entity.KhataCustomer, lines []dto.StatementLineDTO, totalPaid string) ([]byte, error)
}
