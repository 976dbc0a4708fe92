package repository

import (
	"github.com/shopspring/decimal"

	"github.com/copperwirepro/ledger-api/internal/domain/entity"
)

// LedgerTransactionRepository is the persistence port for the append-only
// transaction log of a stock entry.
type LedgerTransactionRepository interface {
	Create(txn *entity.LedgerTransaction) error
	GetByID(id string) (*entity.LedgerTransaction, error)
	// ListByEntry returns the transactions of an entry, oldest first.
	ListByEntry(entryID string) ([]*entity.LedgerTransaction, error)
	// SumDeltas returns sum(quantity_delta) for an entry; zero if none.
	SumDeltas(entryID string) (decimal.Decimal, error)
	// FindReversal returns the RETURN transaction whose ReversesID points at
	// the given transaction, or nil if it has not been reversed.
	FindReversal(transactionID string) (*entity.LedgerTransaction, error)
}
