package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/copperwirepro/ledger-api/internal/domain"
	"github.com/copperwirepro/ledger-api/internal/domain/entity"
	domledger "github.com/copperwirepro/ledger-api/internal/domain/ledger"
	"github.com/copperwirepro/ledger-api/internal/domain/repository"
)

// UseCase is the sale/return transaction processor: it orchestrates every
// user-facing ledger action into one transactional unit. Each mutation locks
// the entry row (SELECT FOR UPDATE), recomputes availability from the
// transaction log and validates the new delta before appending it, so two
// concurrent sales cannot both pass validation against a stale quantity.
type UseCase struct {
	txRunner  TxRunner
	entryRepo repository.StockEntryRepository         // pool-bound, reads only
	txnRepo   repository.LedgerTransactionRepository // pool-bound, reads only
}

// NewUseCase builds the ledger use case.
func NewUseCase(txRunner TxRunner, entryRepo repository.StockEntryRepository, txnRepo repository.LedgerTransactionRepository) *UseCase {
	return &UseCase{txRunner: txRunner, entryRepo: entryRepo, txnRepo: txnRepo}
}

// CreateEntryInput input for CreateEntry.
type CreateEntryInput struct {
	SourceKind    string
	OriginID      string
	Label         string
	TotalQuantity decimal.Decimal
	UnitPrice     *decimal.Decimal
	UserID        string
}

// CreateEntry records a new traceable lot. TotalQuantity must be positive;
// OriginID, when set, must point at an existing entry (weak reference,
// lookup only).
func (uc *UseCase) CreateEntry(ctx context.Context, in CreateEntryInput) (*entity.StockEntry, error) {
	if !entity.ValidSourceKind(in.SourceKind) || in.Label == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.TotalQuantity.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: total quantity %s must be positive", domain.ErrInvalidInput, in.TotalQuantity)
	}
	if in.UnitPrice != nil && !in.UnitPrice.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: unit price %s must be positive", domain.ErrInvalidInput, in.UnitPrice)
	}
	if in.OriginID != "" {
		origin, err := uc.entryRepo.GetByID(in.OriginID)
		if err != nil {
			return nil, err
		}
		if origin == nil {
			return nil, fmt.Errorf("%w: origin entry %s", domain.ErrNotFound, in.OriginID)
		}
	}
	entry := &entity.StockEntry{
		ID:            uuid.New().String(),
		SourceKind:    in.SourceKind,
		OriginID:      in.OriginID,
		Label:         in.Label,
		TotalQuantity: in.TotalQuantity,
		UnitPrice:     in.UnitPrice,
		CreatedAt:     time.Now(),
		CreatedBy:     in.UserID,
	}
	if err := uc.entryRepo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetEntry returns an entry with its derived availability.
func (uc *UseCase) GetEntry(ctx context.Context, entryID string) (*entity.StockEntry, decimal.Decimal, error) {
	entry, err := uc.entryRepo.GetByID(entryID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if entry == nil {
		return nil, decimal.Zero, fmt.Errorf("%w: entry %s", domain.ErrNotFound, entryID)
	}
	sum, err := uc.txnRepo.SumDeltas(entryID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return entry, entry.TotalQuantity.Add(sum), nil
}

// GetAvailableQuantity derives availability from the transaction log.
// Idempotent: two calls without an intervening append return the same value.
func (uc *UseCase) GetAvailableQuantity(ctx context.Context, entryID string) (decimal.Decimal, error) {
	_, available, err := uc.GetEntry(ctx, entryID)
	return available, err
}

// CanConsume reports whether quantity could currently be consumed from the
// entry. Advisory only: the binding check happens again under the row lock.
func (uc *UseCase) CanConsume(ctx context.Context, entryID string, quantity decimal.Decimal) (bool, error) {
	available, err := uc.GetAvailableQuantity(ctx, entryID)
	if err != nil {
		return false, err
	}
	return domledger.CanConsume(available, quantity), nil
}

// ListEntries lists entries matching the filter, each with its availability.
func (uc *UseCase) ListEntries(ctx context.Context, filter repository.EntryFilter, limit, offset int) ([]*entity.StockEntry, map[string]decimal.Decimal, error) {
	entries, err := uc.entryRepo.List(filter, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	available := make(map[string]decimal.Decimal, len(entries))
	for _, e := range entries {
		sum, err := uc.txnRepo.SumDeltas(e.ID)
		if err != nil {
			return nil, nil, err
		}
		available[e.ID] = e.TotalQuantity.Add(sum)
	}
	return entries, available, nil
}

// ListTransactions returns the transaction log of an entry, oldest first.
func (uc *UseCase) ListTransactions(ctx context.Context, entryID string) ([]*entity.LedgerTransaction, error) {
	entry, err := uc.entryRepo.GetByID(entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: entry %s", domain.ErrNotFound, entryID)
	}
	return uc.txnRepo.ListByEntry(entryID)
}

// appendInput carries one pending transaction into appendLocked.
type appendInput struct {
	EntryID          string
	Kind             string
	QuantityDelta    decimal.Decimal
	CounterpartyName string
	Notes            string
	ReversesID       string
	UserID           string
}

// appendLocked locks the entry row, recomputes availability and appends the
// transaction if the resulting availability stays non-negative. Must run
// inside the caller's DB transaction (repos bound to it).
func appendLocked(
	entryRepo repository.StockEntryRepository,
	txnRepo repository.LedgerTransactionRepository,
	in appendInput,
	now time.Time,
) (*entity.LedgerTransaction, error) {
	entry, err := entryRepo.GetForUpdate(in.EntryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: entry %s", domain.ErrNotFound, in.EntryID)
	}
	sum, err := txnRepo.SumDeltas(in.EntryID)
	if err != nil {
		return nil, err
	}
	available := entry.TotalQuantity.Add(sum)
	if available.Add(in.QuantityDelta).IsNegative() {
		return nil, fmt.Errorf("%w: entry %s has %s available, requested %s",
			domain.ErrInsufficientQuantity, in.EntryID, available, in.QuantityDelta.Neg())
	}
	txn := &entity.LedgerTransaction{
		ID:               uuid.New().String(),
		EntryID:          in.EntryID,
		Kind:             in.Kind,
		QuantityDelta:    in.QuantityDelta,
		CounterpartyName: in.CounterpartyName,
		Notes:            in.Notes,
		ReversesID:       in.ReversesID,
		Timestamp:        now,
		CreatedBy:        in.UserID,
	}
	if err := txnRepo.Create(txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// AppendTransactionInput input for AppendTransaction.
type AppendTransactionInput struct {
	EntryID          string
	Kind             string
	QuantityDelta    decimal.Decimal
	CounterpartyName string
	Notes            string
	UserID           string
}

// AppendTransaction appends one raw quantity-affecting event. The delta's
// sign must match the kind: negative for CONSUME/SELL/DELETE_ADJUSTMENT,
// positive for RETURN. Higher-level operations (Sell, ReturnToInventory,
// DeletePartial, UndoSale) should be preferred; this is the escape hatch for
// external collaborators recording events the processor does not model.
func (uc *UseCase) AppendTransaction(ctx context.Context, in AppendTransactionInput) (*entity.LedgerTransaction, error) {
	if in.QuantityDelta.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	switch in.Kind {
	case entity.TxKindConsume, entity.TxKindSell, entity.TxKindDeleteAdjustment:
		if !in.QuantityDelta.IsNegative() {
			return nil, fmt.Errorf("%w: %s requires a negative delta", domain.ErrInvalidInput, in.Kind)
		}
	case entity.TxKindReturn:
		if !in.QuantityDelta.IsPositive() {
			return nil, fmt.Errorf("%w: %s requires a positive delta", domain.ErrInvalidInput, in.Kind)
		}
	default:
		return nil, fmt.Errorf("%w: unknown transaction kind %q", domain.ErrInvalidInput, in.Kind)
	}
	if in.Kind == entity.TxKindDeleteAdjustment && in.Notes == "" {
		return nil, fmt.Errorf("%w: delete adjustment requires a note", domain.ErrInvalidInput)
	}
	var txn *entity.LedgerTransaction
	err := uc.txRunner.Run(ctx, func(
		entryRepo repository.StockEntryRepository,
		txnRepo repository.LedgerTransactionRepository,
	) error {
		var err error
		txn, err = appendLocked(entryRepo, txnRepo, appendInput{
			EntryID:          in.EntryID,
			Kind:             in.Kind,
			QuantityDelta:    in.QuantityDelta,
			CounterpartyName: in.CounterpartyName,
			Notes:            in.Notes,
			UserID:           in.UserID,
		}, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// SellInput input for Sell.
type SellInput struct {
	EntryID      string
	Quantity     decimal.Decimal
	PricePerUnit decimal.Decimal
	BuyerName    string
	UserID       string
}

// Sell appends a SELL transaction with delta = -quantity. Fails with
// ErrInsufficientQuantity (state untouched) when quantity exceeds
// availability.
func (uc *UseCase) Sell(ctx context.Context, in SellInput) (*entity.LedgerTransaction, error) {
	var txn *entity.LedgerTransaction
	err := uc.txRunner.Run(ctx, func(
		entryRepo repository.StockEntryRepository,
		txnRepo repository.LedgerTransactionRepository,
	) error {
		var err error
		txn, err = SellInTx(entryRepo, txnRepo, in, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// SellInTx executes a sale using the caller's transaction-bound repositories.
// Used by Sell and by the khata sale use case, which needs the sale and its
// payment lines committed together.
func SellInTx(
	entryRepo repository.StockEntryRepository,
	txnRepo repository.LedgerTransactionRepository,
	in SellInput,
	now time.Time,
) (*entity.LedgerTransaction, error) {
	if in.BuyerName == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := domledger.SaleTotal(in.Quantity, in.PricePerUnit); err != nil {
		return nil, err
	}
	return appendLocked(entryRepo, txnRepo, appendInput{
		EntryID:          in.EntryID,
		Kind:             entity.TxKindSell,
		QuantityDelta:    in.Quantity.Neg(),
		CounterpartyName: in.BuyerName,
		UserID:           in.UserID,
	}, now)
}

// ReturnToInventoryInput input for ReturnToInventory.
type ReturnToInventoryInput struct {
	SourceEntryID string
	NewLabel      string
	Quantity      decimal.Decimal
	ProcessorName string
	UserID        string
}

// returnKindFor maps a source stage to the kind of the lot its processing
// hands back. Production output is the end of the line.
func returnKindFor(sourceKind string) (string, error) {
	switch sourceKind {
	case entity.SourceRawPurchase:
		return entity.SourceKachaReturn, nil
	case entity.SourceKachaReturn:
		return entity.SourceDrawReturn, nil
	case entity.SourceDrawReturn, entity.SourcePVCPurchase:
		return entity.SourceProductionOutput, nil
	default:
		return "", fmt.Errorf("%w: %s cannot be processed further", domain.ErrInvalidInput, sourceKind)
	}
}

// ReturnToInventory consumes quantity from the source entry and creates a new
// entry under the next stage's kind, traceable to its origin. Consumption and
// creation commit together or not at all.
func (uc *UseCase) ReturnToInventory(ctx context.Context, in ReturnToInventoryInput) (*entity.StockEntry, error) {
	if in.NewLabel == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var created *entity.StockEntry
	err := uc.txRunner.Run(ctx, func(
		entryRepo repository.StockEntryRepository,
		txnRepo repository.LedgerTransactionRepository,
	) error {
		now := time.Now()
		source, err := entryRepo.GetForUpdate(in.SourceEntryID)
		if err != nil {
			return err
		}
		if source == nil {
			return fmt.Errorf("%w: entry %s", domain.ErrNotFound, in.SourceEntryID)
		}
		newKind, err := returnKindFor(source.SourceKind)
		if err != nil {
			return err
		}
		if _, err := appendLocked(entryRepo, txnRepo, appendInput{
			EntryID:          in.SourceEntryID,
			Kind:             entity.TxKindConsume,
			QuantityDelta:    in.Quantity.Neg(),
			CounterpartyName: in.ProcessorName,
			UserID:           in.UserID,
		}, now); err != nil {
			return err
		}
		created = &entity.StockEntry{
			ID:            uuid.New().String(),
			SourceKind:    newKind,
			OriginID:      in.SourceEntryID,
			Label:         in.NewLabel,
			TotalQuantity: in.Quantity,
			UnitPrice:     source.UnitPrice,
			CreatedAt:     now,
			CreatedBy:     in.UserID,
		}
		return entryRepo.Create(created)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DeletePartialInput input for DeletePartial.
type DeletePartialInput struct {
	EntryID  string
	Quantity decimal.Decimal
	Note     string
	UserID   string
}

// DeletePartial removes quantity from an entry as an audited
// DELETE_ADJUSTMENT transaction, never a row deletion. The note is mandatory:
// stock does not vanish without a reason on record.
func (uc *UseCase) DeletePartial(ctx context.Context, in DeletePartialInput) (*entity.LedgerTransaction, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.Note == "" {
		return nil, fmt.Errorf("%w: delete adjustment requires a note", domain.ErrInvalidInput)
	}
	var txn *entity.LedgerTransaction
	err := uc.txRunner.Run(ctx, func(
		entryRepo repository.StockEntryRepository,
		txnRepo repository.LedgerTransactionRepository,
	) error {
		var err error
		txn, err = appendLocked(entryRepo, txnRepo, appendInput{
			EntryID:       in.EntryID,
			Kind:          entity.TxKindDeleteAdjustment,
			QuantityDelta: in.Quantity.Neg(),
			Notes:         in.Note,
			UserID:        in.UserID,
		}, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// UndoSale appends a compensating RETURN transaction for a sale. The original
// SELL stays in the log; the quantity comes back with a new record pointing at
// it. A sale can be undone once.
func (uc *UseCase) UndoSale(ctx context.Context, transactionID, userID string) (*entity.LedgerTransaction, error) {
	var txn *entity.LedgerTransaction
	err := uc.txRunner.Run(ctx, func(
		entryRepo repository.StockEntryRepository,
		txnRepo repository.LedgerTransactionRepository,
	) error {
		original, err := txnRepo.GetByID(transactionID)
		if err != nil {
			return err
		}
		if original == nil {
			return fmt.Errorf("%w: transaction %s", domain.ErrNotFound, transactionID)
		}
		if original.Kind != entity.TxKindSell {
			return fmt.Errorf("%w: transaction %s is %s, only sales can be undone",
				domain.ErrInvalidInput, transactionID, original.Kind)
		}
		existing, err := txnRepo.FindReversal(transactionID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: sale %s", domain.ErrAlreadyReversed, transactionID)
		}
		txn, err = appendLocked(entryRepo, txnRepo, appendInput{
			EntryID:          original.EntryID,
			Kind:             entity.TxKindReturn,
			QuantityDelta:    original.QuantityDelta.Neg(), // sale delta is negative
			CounterpartyName: original.CounterpartyName,
			Notes:            "undo of sale " + transactionID,
			ReversesID:       transactionID,
			UserID:           userID,
		}, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}
