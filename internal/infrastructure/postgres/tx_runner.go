package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/copperwirepro/ledger-api/internal/application/khata"
	"github.com/copperwirepro/ledger-api/internal/application/ledger"
	"github.com/copperwirepro/ledger-api/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner and khata.SaleTxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ khata.SaleTxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside one PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, runs fn with ledger repos bound to it, and
// commits or rolls back.
func (r *TxRunner) Run(ctx context.Context, fn func(
	entryRepo repository.StockEntryRepository,
	txnRepo repository.LedgerTransactionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockEntryRepository(tx), NewLedgerTransactionRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunKhataSale begins a transaction with ledger plus khata repos, so a sale
// and its payment lines land atomically.
func (r *TxRunner) RunKhataSale(ctx context.Context, fn func(
	entryRepo repository.StockEntryRepository,
	txnRepo repository.LedgerTransactionRepository,
	customerRepo repository.KhataCustomerRepository,
	paymentRepo repository.KhataPaymentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewStockEntryRepository(tx),
		NewLedgerTransactionRepository(tx),
		NewKhataCustomerRepository(tx),
		NewKhataPaymentRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
