package khata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/copperwirepro/ledger-api/internal/application/dto"
	appledger "github.com/copperwirepro/ledger-api/internal/application/ledger"
	"github.com/copperwirepro/ledger-api/internal/domain"
	"github.com/copperwirepro/ledger-api/internal/domain/entity"
	domledger "github.com/copperwirepro/ledger-api/internal/domain/ledger"
	"github.com/copperwirepro/ledger-api/internal/domain/repository"
)

var nameCaser = cases.Title(language.Und)

// NormalizeName collapses whitespace and title-cases a free-text buyer name
// so "abdul rehman" and "ABDUL  REHMAN" land on the same khata page.
func NormalizeName(name string) string {
	return nameCaser.String(strings.Join(strings.Fields(name), " "))
}

// UseCase covers the khata: customer management, credit-style sales with an
// exact payment split, and statements.
type UseCase struct {
	saleRunner   SaleTxRunner
	customerRepo repository.KhataCustomerRepository
	paymentRepo  repository.KhataPaymentRepository
	txnRepo      repository.LedgerTransactionRepository
	entryRepo    repository.StockEntryRepository
	pdfGenerator StatementPDFGenerator
}

// NewUseCase builds the khata use case.
func NewUseCase(
	saleRunner SaleTxRunner,
	customerRepo repository.KhataCustomerRepository,
	paymentRepo repository.KhataPaymentRepository,
	txnRepo repository.LedgerTransactionRepository,
	entryRepo repository.StockEntryRepository,
	pdfGenerator StatementPDFGenerator,
) *UseCase {
	return &UseCase{
		saleRunner:   saleRunner,
		customerRepo: customerRepo,
		paymentRepo:  paymentRepo,
		txnRepo:      txnRepo,
		entryRepo:    entryRepo,
		pdfGenerator: pdfGenerator,
	}
}

// CreateCustomer registers a khata customer under a normalized name.
func (uc *UseCase) CreateCustomer(ctx context.Context, in dto.CreateKhataCustomerRequest) (*entity.KhataCustomer, error) {
	name := NormalizeName(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.customerRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: khata customer %q", domain.ErrDuplicate, name)
	}
	now := time.Now()
	customer := &entity.KhataCustomer{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// ListCustomers lists khata customers.
func (uc *UseCase) ListCustomers(ctx context.Context, limit, offset int) ([]*entity.KhataCustomer, error) {
	return uc.customerRepo.List(limit, offset)
}

// RecordSale validates the payment split against quantity * pricePerUnit,
// then commits the SELL ledger transaction and the payment lines in one DB
// transaction. A mismatched split leaves no trace in either table.
func (uc *UseCase) RecordSale(ctx context.Context, in dto.RecordKhataSaleRequest, userID string) (*dto.KhataSaleResponse, error) {
	total, err := domledger.SaleTotal(in.Quantity, in.PricePerUnit)
	if err != nil {
		return nil, err
	}
	lines := make([]domledger.PaymentLine, 0, len(in.Payments))
	for _, p := range in.Payments {
		lines = append(lines, domledger.PaymentLine{Method: p.Method, Amount: p.Amount, Reference: p.Reference})
	}
	if err := domledger.ValidatePaymentSplit(total, lines); err != nil {
		return nil, err
	}

	var out *dto.KhataSaleResponse
	err = uc.saleRunner.RunKhataSale(ctx, func(
		entryRepo repository.StockEntryRepository,
		txnRepo repository.LedgerTransactionRepository,
		customerRepo repository.KhataCustomerRepository,
		paymentRepo repository.KhataPaymentRepository,
	) error {
		customer, err := customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return fmt.Errorf("%w: khata customer %s", domain.ErrNotFound, in.CustomerID)
		}
		now := time.Now()
		txn, err := appledger.SellInTx(entryRepo, txnRepo, appledger.SellInput{
			EntryID:      in.EntryID,
			Quantity:     in.Quantity,
			PricePerUnit: in.PricePerUnit,
			BuyerName:    customer.Name,
			UserID:       userID,
		}, now)
		if err != nil {
			return err
		}
		for _, l := range lines {
			payment := &entity.KhataPayment{
				ID:            uuid.New().String(),
				TransactionID: txn.ID,
				CustomerID:    customer.ID,
				Method:        l.Method,
				Amount:        l.Amount,
				Reference:     l.Reference,
				CreatedAt:     now,
			}
			if err := paymentRepo.Create(payment); err != nil {
				return err
			}
		}
		out = &dto.KhataSaleResponse{
			TransactionID: txn.ID,
			EntryID:       in.EntryID,
			CustomerID:    customer.ID,
			Quantity:      in.Quantity,
			Total:         total,
			Timestamp:     now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Statement assembles the khata statement of one customer: every payment
// line, flagged when its sale was later undone, plus the paid total of the
// sales still standing.
func (uc *UseCase) Statement(ctx context.Context, customerID string) (*dto.StatementResponse, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: khata customer %s", domain.ErrNotFound, customerID)
	}
	payments, err := uc.paymentRepo.ListByCustomer(customerID)
	if err != nil {
		return nil, err
	}

	lines := make([]dto.StatementLineDTO, 0, len(payments))
	totalPaid := decimal.Zero
	for _, p := range payments {
		txn, err := uc.txnRepo.GetByID(p.TransactionID)
		if err != nil {
			return nil, err
		}
		if txn == nil {
			continue // payment rows are created with their sale; a missing sale means a partial migration
		}
		reversal, err := uc.txnRepo.FindReversal(txn.ID)
		if err != nil {
			return nil, err
		}
		label := ""
		if entry, err := uc.entryRepo.GetByID(txn.EntryID); err == nil && entry != nil {
			label = entry.Label
		}
		reversed := reversal != nil
		lines = append(lines, dto.StatementLineDTO{
			TransactionID: txn.ID,
			EntryLabel:    label,
			Quantity:      txn.QuantityDelta.Neg(),
			Amount:        p.Amount,
			Method:        p.Method,
			Reference:     p.Reference,
			Reversed:      reversed,
			Date:          p.CreatedAt,
		})
		if !reversed {
			totalPaid = totalPaid.Add(p.Amount)
		}
	}

	return &dto.StatementResponse{
		Customer: dto.KhataCustomerResponse{
			ID:        customer.ID,
			Name:      customer.Name,
			Phone:     customer.Phone,
			CreatedAt: customer.CreatedAt,
		},
		Lines:     lines,
		TotalPaid: totalPaid,
	}, nil
}

// StatementPDF renders the statement as a PDF document.
func (uc *UseCase) StatementPDF(ctx context.Context, customerID string) ([]byte, error) {
	statement, err := uc.Statement(ctx, customerID)
	if err != nil {
		return nil, err
	}
	customer := &entity.KhataCustomer{
		ID:    statement.Customer.ID,
		Name:  statement.Customer.Name,
		Phone: statement.Customer.Phone,
	}
	return uc.pdfGenerator.GenerateStatementPDF(ctx, customer, statement.Lines, statement.TotalPaid.StringFixed(2))
}
