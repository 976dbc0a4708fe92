package ledger

import (
	"context"

	"github.com/copperwirepro/ledger-api/internal/domain/repository"
)

// TxRunner executes a function inside one DB transaction, passing repositories
// bound to that transaction. Commit on nil, rollback on error: this is what
// makes multi-step ledger operations all-or-nothing.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		entryRepo repository.StockEntryRepository,
		txnRepo repository.LedgerTransactionRepository,
	) error) error
}
