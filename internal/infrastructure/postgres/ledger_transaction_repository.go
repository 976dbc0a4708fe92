package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/copperwirepro/ledger-api/internal/domain/entity"
	"github.com/copperwirepro/ledger-api/internal/domain/repository"
)

var _ repository.LedgerTransactionRepository = (*LedgerTransactionRepo)(nil)

// LedgerTransactionRepo LedgerTransactionRepository implementation over
// PostgreSQL (usable with pool or tx).
type LedgerTransactionRepo struct {
	q Querier
}

// NewLedgerTransactionRepository builds the adapter. Pass a pool or tx (Querier).
func NewLedgerTransactionRepository(q Querier) *LedgerTransactionRepo {
	return &LedgerTransactionRepo{q: q}
}

const txnColumns = `id, entry_id, kind, quantity_delta, counterparty_name, notes, reverses_id, timestamp, created_by`

// Create persists a ledger transaction.
func (r *LedgerTransactionRepo) Create(txn *entity.LedgerTransaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	query := `
		INSERT INTO ledger_transactions (id, entry_id, kind, quantity_delta, counterparty_name, notes, reverses_id, timestamp, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	reversesID := (*string)(nil)
	if txn.ReversesID != "" {
		reversesID = &txn.ReversesID
	}
	createdBy := (*string)(nil)
	if txn.CreatedBy != "" {
		createdBy = &txn.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		txn.ID, txn.EntryID, txn.Kind, txn.QuantityDelta,
		txn.CounterpartyName, txn.Notes, reversesID, txn.Timestamp, createdBy,
	)
	if err != nil {
		return fmt.Errorf("insert ledger transaction: %w", err)
	}
	return nil
}

// GetByID fetches a transaction by ID; nil when absent.
func (r *LedgerTransactionRepo) GetByID(id string) (*entity.LedgerTransaction, error) {
	query := `SELECT ` + txnColumns + ` FROM ledger_transactions WHERE id = $1`
	return r.scanOne(query, id)
}

// FindReversal returns the RETURN transaction that reverses the given one,
// nil if it has not been reversed.
func (r *LedgerTransactionRepo) FindReversal(transactionID string) (*entity.LedgerTransaction, error) {
	query := `SELECT ` + txnColumns + ` FROM ledger_transactions WHERE reverses_id = $1`
	return r.scanOne(query, transactionID)
}

func (r *LedgerTransactionRepo) scanOne(query string, args ...any) (*entity.LedgerTransaction, error) {
	var t entity.LedgerTransaction
	var reversesID, createdBy *string
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&t.ID, &t.EntryID, &t.Kind, &t.QuantityDelta,
		&t.CounterpartyName, &t.Notes, &reversesID, &t.Timestamp, &createdBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger transaction: %w", err)
	}
	if reversesID != nil {
		t.ReversesID = *reversesID
	}
	if createdBy != nil {
		t.CreatedBy = *createdBy
	}
	return &t, nil
}

// ListByEntry lists the transactions of an entry, oldest first.
func (r *LedgerTransactionRepo) ListByEntry(entryID string) ([]*entity.LedgerTransaction, error) {
	query := `SELECT ` + txnColumns + ` FROM ledger_transactions WHERE entry_id = $1 ORDER BY timestamp, id`
	rows, err := r.q.Query(context.Background(), query, entryID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerTransaction
	for rows.Next() {
		var t entity.LedgerTransaction
		var reversesID, createdBy *string
		if err := rows.Scan(&t.ID, &t.EntryID, &t.Kind, &t.QuantityDelta,
			&t.CounterpartyName, &t.Notes, &reversesID, &t.Timestamp, &createdBy); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if reversesID != nil {
			t.ReversesID = *reversesID
		}
		if createdBy != nil {
			t.CreatedBy = *createdBy
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// SumDeltas returns sum(quantity_delta) for an entry, zero when it has no
// transactions.
func (r *LedgerTransactionRepo) SumDeltas(entryID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(quantity_delta), 0) FROM ledger_transactions WHERE entry_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, entryID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum deltas: %w", err)
	}
	return sum, nil
}
