package ledger_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperwirepro/ledger-api/internal/application/ledger"
	"github.com/copperwirepro/ledger-api/internal/domain"
	"github.com/copperwirepro/ledger-api/internal/domain/entity"
	"github.com/copperwirepro/ledger-api/internal/domain/repository"
)

// fakeStore is an in-memory stand-in for the database. The fake TxRunner
// hands the use case repositories bound to a staged copy and only merges the
// copy back on success, mirroring commit/rollback.
type fakeStore struct {
	entries map[string]entity.StockEntry
	txns    []entity.LedgerTransaction

	failEntryCreate bool
	failTxnCreate   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[string]entity.StockEntry)}
}

func (s *fakeStore) clone() *fakeStore {
	c := &fakeStore{
		entries:         make(map[string]entity.StockEntry, len(s.entries)),
		txns:            append([]entity.LedgerTransaction(nil), s.txns...),
		failEntryCreate: s.failEntryCreate,
		failTxnCreate:   s.failTxnCreate,
	}
	for k, v := range s.entries {
		c.entries[k] = v
	}
	return c
}

func (s *fakeStore) merge(c *fakeStore) {
	s.entries = c.entries
	s.txns = c.txns
}

type fakeEntryRepo struct{ s *fakeStore }

func (r *fakeEntryRepo) Create(e *entity.StockEntry) error {
	if r.s.failEntryCreate {
		return errors.New("simulated write failure")
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	r.s.entries[e.ID] = *e
	return nil
}

func (r *fakeEntryRepo) GetByID(id string) (*entity.StockEntry, error) {
	e, ok := r.s.entries[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *fakeEntryRepo) GetForUpdate(id string) (*entity.StockEntry, error) {
	return r.GetByID(id)
}

func (r *fakeEntryRepo) List(filter repository.EntryFilter, limit, offset int) ([]*entity.StockEntry, error) {
	var out []*entity.StockEntry
	for _, e := range r.s.entries {
		if filter.SourceKind != "" && e.SourceKind != filter.SourceKind {
			continue
		}
		if filter.Label != "" && !strings.Contains(strings.ToLower(e.Label), strings.ToLower(filter.Label)) {
			continue
		}
		e := e
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeTxnRepo struct{ s *fakeStore }

func (r *fakeTxnRepo) Create(t *entity.LedgerTransaction) error {
	if r.s.failTxnCreate {
		return errors.New("simulated write failure")
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	r.s.txns = append(r.s.txns, *t)
	return nil
}

func (r *fakeTxnRepo) GetByID(id string) (*entity.LedgerTransaction, error) {
	for _, t := range r.s.txns {
		if t.ID == id {
			t := t
			return &t, nil
		}
	}
	return nil, nil
}

func (r *fakeTxnRepo) ListByEntry(entryID string) ([]*entity.LedgerTransaction, error) {
	var out []*entity.LedgerTransaction
	for _, t := range r.s.txns {
		if t.EntryID == entryID {
			t := t
			out = append(out, &t)
		}
	}
	return out, nil
}

func (r *fakeTxnRepo) SumDeltas(entryID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, t := range r.s.txns {
		if t.EntryID == entryID {
			sum = sum.Add(t.QuantityDelta)
		}
	}
	return sum, nil
}

func (r *fakeTxnRepo) FindReversal(transactionID string) (*entity.LedgerTransaction, error) {
	for _, t := range r.s.txns {
		if t.ReversesID == transactionID {
			t := t
			return &t, nil
		}
	}
	return nil, nil
}

type fakeTxRunner struct{ s *fakeStore }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(repository.StockEntryRepository, repository.LedgerTransactionRepository) error) error {
	staged := r.s.clone()
	if err := fn(&fakeEntryRepo{s: staged}, &fakeTxnRepo{s: staged}); err != nil {
		return err
	}
	r.s.merge(staged)
	return nil
}

func newTestUseCase(s *fakeStore) *ledger.UseCase {
	return ledger.NewUseCase(&fakeTxRunner{s: s}, &fakeEntryRepo{s: s}, &fakeTxnRepo{s: s})
}

func mustEntry(t *testing.T, uc *ledger.UseCase, kind, label, quantity string) *entity.StockEntry {
	t.Helper()
	q := decimal.RequireFromString(quantity)
	e, err := uc.CreateEntry(context.Background(), ledger.CreateEntryInput{
		SourceKind:    kind,
		Label:         label,
		TotalQuantity: q,
	})
	require.NoError(t, err)
	return e
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCreateEntry_RejectsBadInput(t *testing.T) {
	uc := newTestUseCase(newFakeStore())
	ctx := context.Background()

	_, err := uc.CreateEntry(ctx, ledger.CreateEntryInput{SourceKind: "BAD_KIND", Label: "x", TotalQuantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateEntry(ctx, ledger.CreateEntryInput{SourceKind: entity.SourceRawPurchase, Label: "", TotalQuantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateEntry(ctx, ledger.CreateEntryInput{SourceKind: entity.SourceRawPurchase, Label: "x", TotalQuantity: dec("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateEntry(ctx, ledger.CreateEntryInput{SourceKind: entity.SourceRawPurchase, Label: "x", TotalQuantity: dec("-3")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateEntry_UnknownOriginRejected(t *testing.T) {
	uc := newTestUseCase(newFakeStore())

	_, err := uc.CreateEntry(context.Background(), ledger.CreateEntryInput{
		SourceKind:    entity.SourceKachaReturn,
		OriginID:      "does-not-exist",
		Label:         "kacha",
		TotalQuantity: dec("5"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSell_ReducesAvailability(t *testing.T) {
	uc := newTestUseCase(newFakeStore())
	ctx := context.Background()
	e := mustEntry(t, uc, entity.SourceRawPurchase, "8mm rod", "100")

	txn, err := uc.Sell(ctx, ledger.SellInput{
		EntryID:      e.ID,
		Quantity:     dec("30"),
		PricePerUnit: dec("2600"),
		BuyerName:    "Walk-in",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TxKindSell, txn.Kind)
	assert.True(t, txn.QuantityDelta.Equal(dec("-30")))

	available, err := uc.GetAvailableQuantity(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, available.Equal(dec("70")), "expected 70, got %s", available)
}

func TestSell_OversellFailsAndLeavesStateUntouched(t *testing.T) {
	uc := newTestUseCase(newFakeStore())
	ctx := context.Background()
	e := mustEntry(t, uc, entity.SourceRawPurchase, "8mm rod", "100")

	_, err := uc.Sell(ctx, ledger.SellInput{EntryID: e.ID, Quantity: dec("30"), PricePerUnit: dec("2600"), BuyerName: "A"})
	require.NoError(t, err)

	_, err = uc.Sell(ctx, ledger.SellInput{EntryID: e.ID, Quantity: dec("71"), PricePerUnit: dec("2600"), BuyerName: "B"})
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	available, err := uc.GetAvailableQuantity(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, available.Equal(dec("70")), "failed sale must not change availability")

	txns, err := uc.ListTransactions(ctx, e.ID)
	require.NoError(t, err)
	assert.Len(t, txns, 1, "failed sale must not append a transaction")
}

func TestSell_ExactlyAvailableSucceeds(t *testing.T) {
	uc := newTestUseCase(newFakeStore())
	ctx := context.Background()
	e := mustEntry(t, uc, entity.SourceRawPurchase, "8mm rod", "100")

	_, err := uc.Sell(ctx, ledger.SellInput{EntryID: e.ID, Quantity: dec("100"), PricePerUnit: dec("1"), BuyerName: "A"})
	require.NoError(t, err)

	available, err := uc.GetAvailableQuantity(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, available.IsZero())

	ok, err := uc.CanConsume(ctx, e.ID, dec("0.000001"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSell_RejectsInvalidInput(t *testing.T) {
	uc := newTestUseCase(newFakeStore())
	ctx := context.Background()
	e := mustEntry(t, uc, entity.SourceRawPurchase, "8mm rod", "100")

	_, err := uc.Sell(ctx, ledger.SellInput{EntryID: e.ID, Quantity: dec("0"), PricePerUnit: dec("10"), BuyerName: "A"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Sell(ctx, ledger.SellInput{EntryID: e.ID, Quantity: dec("1"), PricePerUnit: dec("-5"), BuyerName: "A"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Sell(ctx, ledger.SellInput{EntryID: e.ID, Quantity: dec("1"), PricePerUnit: dec("10"), BuyerName: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAvailability_IsDerivedAndConserved(t *testing.T) {
	uc := newTestUseCase(newFakeStore())
	ctx := context.Background()
	e := mustEntry(t, uc, entity.SourceRawPurchase, "8mm rod", "100")

	_, err := uc.Sell(ctx, ledger.SellInput{EntryID: e.ID, Quantity: dec("12.5"), PricePerUnit: dec("2"), BuyerName: "A"})
	require.NoError(t, err)
	_, err = uc.ReturnToInventory(ctx, ledger.ReturnToInventoryInput{
		SourceEntryID: e.ID, NewLabel: "kacha", Quantity: dec("40"), ProcessorName: "Workshop",
	})
	require.NoError(t, err)
	_, err = uc.DeletePartial(ctx, ledger.DeletePartialInput{EntryID: e.ID, Quantity: dec("7.5"), Note: "damaged in storage"})
	require.NoError(t, err)

	// available = total + sum(deltas), recomputed from the log every time
	txns, err := uc.ListTransactions(ctx, e.ID)
	require.NoError(t, err)
	sum := decimal.Zero
	for _, txn := range txns {
		sum = sum.Add(txn.QuantityDelta)
	}
	available, err := uc.GetAvailableQuantity(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, available.Equal(e.TotalQuantity.Add(sum)))
	assert.True(t, available.Equal(dec("40")))
}

func TestAvailability_ExactDecimals(t *testing.T) {
	uc := newTestUseCase(newFakeStore())
	ctx := context.Background()
	e := mustEntry(t, uc, entity.SourceRawPurchase, "rod", "0.3")

	_, err := uc.Sell(ctx, ledger.SellInput{EntryID: e.ID, Quantity: dec("0.1"), PricePerUnit: dec("1"), BuyerName: "A"})
	require.NoError(t, err)
	_, err = uc.Sell(ctx, ledger.SellInput{EntryID: e.ID, Quantity: dec("0.2"), PricePerUnit: dec("1"), BuyerName: "A"})
	require.NoError(t, err)

	available, err := uc.GetAvailableQuantity(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, available.IsZero(), "0.3 - 0.1 - 0.2 must be exactly zero, got %s", available)
}

func TestReturnToInventory_CreatesNextStageLot(t *testing.T) {
	uc := newTestUseCase(newFakeStore())
	ctx := context.Background()
	raw := mustEntry(t, uc, entity.SourceRawPurchase, "8mm rod", "100")

	kacha, err := uc.ReturnToInventory(ctx, ledger.ReturnToInventoryInput{
		SourceEntryID: raw.ID,
		NewLabel:      "1.6mm kacha",
		Quantity:      dec("95"),
		ProcessorName: "Workshop",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SourceKachaReturn, kacha.SourceKind)
	assert.Equal(t, raw.ID, kacha.OriginID)
	assert.True(t, kacha.TotalQuantity.Equal(dec("95")))

	rawAvailable, err := uc.GetAvailableQuantity(ctx, raw.ID)
	require.NoError(t, err)
	assert.True(t, rawAvailable.Equal(dec("5")))

	draw, err := uc.ReturnToInventory(ctx, ledger.ReturnToInventoryInput{
		SourceEntryID: kacha.ID, NewLabel: "0.9mm drawn", Quantity: dec("92"), ProcessorName: "Draw Unit",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SourceDrawReturn, draw.SourceKind)

	finished, err := uc.ReturnToInventory(ctx, ledger.ReturnToInventoryInput{
		SourceEntryID: draw.ID, NewLabel: "insulated wire", Quantity: dec("90"), ProcessorName: "Line 1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SourceProductionOutput, finished.SourceKind)

	// production output is the end of the line
	_, err = uc.ReturnToInventory(ctx, ledger.ReturnToInventoryInput{
		SourceEntryID: finished.ID, NewLabel: "again", Quantity: dec("1"), ProcessorName: "Line 1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReturnToInventory_MoreThanAvailableFails(t *testing.T) {
	uc := newTestUseCase(newFakeStore())
	ctx := context.Background()
	raw := mustEntry(t, uc, entity.SourceRawPurchase, "8mm rod", "100")

	_, err := uc.ReturnToInventory(ctx, ledger.ReturnToInventoryInput{
		SourceEntryID: raw.ID, NewLabel: "kacha", Quantity: dec("100.01"), ProcessorName: "Workshop",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)
}

func TestReturnToInventory_AtomicOnWriteFailure(t *testing.T) {
	s := newFakeStore()
	uc := newTestUseCase(s)
	ctx := context.Background()
	raw := mustEntry(t, uc, entity.SourceRawPurchase, "8mm rod", "100")

	// the CONSUME append succeeds, the new entry insert fails: both must roll back
	s.failEntryCreate = true
	_, err := uc.ReturnToInventory(ctx, ledger.ReturnToInventoryInput{
		SourceEntryID: raw.ID, NewLabel: "kacha", Quantity: dec("95"), ProcessorName: "Workshop",
	})
	require.Error(t, err)
	s.failEntryCreate = false

	available, err := uc.GetAvailableQuantity(ctx, raw.ID)
	require.NoError(t, err)
	assert.True(t, available.Equal(dec("100")), "failed reclassification must not consume anything")

	txns, err := uc.ListTransactions(ctx, raw.ID)
	require.NoError(t, err)
	assert.Empty(t, txns)
	assert.Len(t, s.entries, 1, "no orphan entry may survive the rollback")
}

func TestDeletePartial_RequiresNote(t *testing.T) {
	uc := newTestUseCase(newFakeStore())
	ctx := context.Background()
	e := mustEntry(t, uc, entity.SourceRawPurchase, "8mm rod", "70")

	_, err := uc.DeletePartial(ctx, ledger.DeletePartialInput{EntryID: e.ID, Quantity: dec("10"), Note: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	txn, err := uc.DeletePartial(ctx, ledger.DeletePartialInput{EntryID: e.ID, Quantity: dec("70"), Note: "stocktake correction"})
	require.NoError(t, err)
	assert.Equal(t, entity.TxKindDeleteAdjustment, txn.Kind)

	available, err := uc.GetAvailableQuantity(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, available.IsZero())

	// the entry row and its log survive the adjustment
	txns, err := uc.ListTransactions(ctx, e.ID)
	require.NoError(t, err)
	assert.Len(t, txns, 1)
}

func TestUndoSale_RestoresQuantityOnce(t *testing.T) {
	uc := newTestUseCase(newFakeStore())
	ctx := context.Background()
	e := mustEntry(t, uc, entity.SourceRawPurchase, "8mm rod", "100")

	sale, err := uc.Sell(ctx, ledger.SellInput{EntryID: e.ID, Quantity: dec("30"), PricePerUnit: dec("2600"), BuyerName: "A"})
	require.NoError(t, err)

	undo, err := uc.UndoSale(ctx, sale.ID, "")
	require.NoError(t, err)
	assert.Equal(t, entity.TxKindReturn, undo.Kind)
	assert.Equal(t, sale.ID, undo.ReversesID)
	assert.True(t, undo.QuantityDelta.Equal(dec("30")))

	available, err := uc.GetAvailableQuantity(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, available.Equal(dec("100")))

	// the original SELL stays in the log
	txns, err := uc.ListTransactions(ctx, e.ID)
	require.NoError(t, err)
	assert.Len(t, txns, 2)

	_, err = uc.UndoSale(ctx, sale.ID, "")
	assert.ErrorIs(t, err, domain.ErrAlreadyReversed)
}

func TestUndoSale_OnlySalesCanBeUndone(t *testing.T) {
	uc := newTestUseCase(newFakeStore())
	ctx := context.Background()
	e := mustEntry(t, uc, entity.SourceRawPurchase, "8mm rod", "100")

	adj, err := uc.DeletePartial(ctx, ledger.DeletePartialInput{EntryID: e.ID, Quantity: dec("5"), Note: "scrap"})
	require.NoError(t, err)

	_, err = uc.UndoSale(ctx, adj.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UndoSale(ctx, "missing-id", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAppendTransaction_SignMustMatchKind(t *testing.T) {
	uc := newTestUseCase(newFakeStore())
	ctx := context.Background()
	e := mustEntry(t, uc, entity.SourceRawPurchase, "8mm rod", "100")

	_, err := uc.AppendTransaction(ctx, ledger.AppendTransactionInput{
		EntryID: e.ID, Kind: entity.TxKindConsume, QuantityDelta: dec("5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AppendTransaction(ctx, ledger.AppendTransactionInput{
		EntryID: e.ID, Kind: entity.TxKindReturn, QuantityDelta: dec("-5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AppendTransaction(ctx, ledger.AppendTransactionInput{
		EntryID: e.ID, Kind: "REFUND", QuantityDelta: dec("-5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	txn, err := uc.AppendTransaction(ctx, ledger.AppendTransactionInput{
		EntryID: e.ID, Kind: entity.TxKindConsume, QuantityDelta: dec("-5"), CounterpartyName: "Workshop",
	})
	require.NoError(t, err)
	assert.True(t, txn.QuantityDelta.Equal(dec("-5")))
}

func TestListEntries_FiltersAndAvailability(t *testing.T) {
	uc := newTestUseCase(newFakeStore())
	ctx := context.Background()
	raw := mustEntry(t, uc, entity.SourceRawPurchase, "8mm copper rod", "100")
	mustEntry(t, uc, entity.SourcePVCPurchase, "PVC compound", "40")

	_, err := uc.Sell(ctx, ledger.SellInput{EntryID: raw.ID, Quantity: dec("10"), PricePerUnit: dec("1"), BuyerName: "A"})
	require.NoError(t, err)

	entries, available, err := uc.ListEntries(ctx, repository.EntryFilter{SourceKind: entity.SourceRawPurchase}, 20, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, available[raw.ID].Equal(dec("90")))

	entries, _, err = uc.ListEntries(ctx, repository.EntryFilter{Label: "pvc"}, 20, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.SourcePVCPurchase, entries[0].SourceKind)
}

func TestGetEntry_NotFound(t *testing.T) {
	uc := newTestUseCase(newFakeStore())

	_, _, err := uc.GetEntry(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.ListTransactions(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetAvailableQuantity_Idempotent(t *testing.T) {
	uc := newTestUseCase(newFakeStore())
	ctx := context.Background()
	e := mustEntry(t, uc, entity.SourceRawPurchase, "8mm rod", "50")

	_, err := uc.Sell(ctx, ledger.SellInput{EntryID: e.ID, Quantity: dec("20"), PricePerUnit: dec("1"), BuyerName: "A"})
	require.NoError(t, err)

	first, err := uc.GetAvailableQuantity(ctx, e.ID)
	require.NoError(t, err)
	second, err := uc.GetAvailableQuantity(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

func TestSellInTx_TimestampPropagates(t *testing.T) {
	s := newFakeStore()
	uc := newTestUseCase(s)
	e := mustEntry(t, uc, entity.SourceRawPurchase, "8mm rod", "10")

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	txn, err := ledger.SellInTx(&fakeEntryRepo{s: s}, &fakeTxnRepo{s: s}, ledger.SellInput{
		EntryID: e.ID, Quantity: dec("1"), PricePerUnit: dec("1"), BuyerName: "A",
	}, now)
	require.NoError(t, err)
	assert.True(t, txn.Timestamp.Equal(now))
}
