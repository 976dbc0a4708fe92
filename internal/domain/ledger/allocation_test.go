package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperwirepro/ledger-api/internal/domain"
	"github.com/copperwirepro/ledger-api/internal/domain/entity"
	"github.com/copperwirepro/ledger-api/internal/domain/ledger"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func txn(kind, delta string) *entity.LedgerTransaction {
	return &entity.LedgerTransaction{Kind: kind, QuantityDelta: dec(delta)}
}

func TestAvailable_SumsDeltasOverTotal(t *testing.T) {
	txns := []*entity.LedgerTransaction{
		txn(entity.TxKindSell, "-30"),
		txn(entity.TxKindConsume, "-20"),
		txn(entity.TxKindReturn, "5"),
	}
	got := ledger.Available(dec("100"), txns)
	assert.True(t, got.Equal(dec("55")), "100 - 30 - 20 + 5 = 55, got %s", got)
}

func TestAvailable_NoTransactionsEqualsTotal(t *testing.T) {
	got := ledger.Available(dec("42.5"), nil)
	assert.True(t, got.Equal(dec("42.5")))
}

func TestAvailable_ExactDecimalNoDrift(t *testing.T) {
	// 0.1 + 0.2 must equal 0.3 exactly; float64 would not survive this.
	txns := []*entity.LedgerTransaction{
		txn(entity.TxKindSell, "-0.1"),
		txn(entity.TxKindSell, "-0.2"),
	}
	got := ledger.Available(dec("0.3"), txns)
	assert.True(t, got.IsZero(), "expected exactly zero, got %s", got)
}

func TestCanConsume(t *testing.T) {
	assert.True(t, ledger.CanConsume(dec("70"), dec("70")), "consuming everything is allowed")
	assert.True(t, ledger.CanConsume(dec("70"), dec("0.01")))
	assert.False(t, ledger.CanConsume(dec("70"), dec("70.01")), "over-consumption must fail, not clamp")
	assert.False(t, ledger.CanConsume(dec("70"), decimal.Zero))
	assert.False(t, ledger.CanConsume(dec("70"), dec("-5")))
	assert.False(t, ledger.CanConsume(decimal.Zero, dec("1")))
}

func TestSaleTotal(t *testing.T) {
	total, err := ledger.SaleTotal(dec("30"), dec("50"))
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("1500")))

	_, err = ledger.SaleTotal(decimal.Zero, dec("50"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ledger.SaleTotal(dec("30"), dec("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidatePaymentSplit_ExactMatch(t *testing.T) {
	lines := []ledger.PaymentLine{
		{Method: entity.PaymentMethodCash, Amount: dec("60")},
		{Method: entity.PaymentMethodBank, Amount: dec("40")},
	}
	assert.NoError(t, ledger.ValidatePaymentSplit(dec("100"), lines))
}

func TestValidatePaymentSplit_OffByOneRejected(t *testing.T) {
	lines := []ledger.PaymentLine{
		{Method: entity.PaymentMethodCash, Amount: dec("60")},
		{Method: entity.PaymentMethodBank, Amount: dec("39")},
	}
	err := ledger.ValidatePaymentSplit(dec("100"), lines)
	assert.ErrorIs(t, err, domain.ErrPaymentSplitMismatch)
}

func TestValidatePaymentSplit_RejectsBadLines(t *testing.T) {
	assert.ErrorIs(t, ledger.ValidatePaymentSplit(dec("100"), nil), domain.ErrInvalidInput,
		"a sale needs at least one payment line")

	err := ledger.ValidatePaymentSplit(dec("100"), []ledger.PaymentLine{
		{Method: "CRYPTO", Amount: dec("100")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = ledger.ValidatePaymentSplit(dec("100"), []ledger.PaymentLine{
		{Method: entity.PaymentMethodCash, Amount: dec("110")},
		{Method: entity.PaymentMethodBank, Amount: dec("-10")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "negative lines are invalid even if the sum matches")
}

func TestValidatePaymentSplit_ThreeWaySplit(t *testing.T) {
	lines := []ledger.PaymentLine{
		{Method: entity.PaymentMethodCash, Amount: dec("1200.50")},
		{Method: entity.PaymentMethodBank, Amount: dec("799.50")},
		{Method: entity.PaymentMethodCheck, Amount: dec("3000"), Reference: "CHQ-104"},
	}
	assert.NoError(t, ledger.ValidatePaymentSplit(dec("5000"), lines))
}
