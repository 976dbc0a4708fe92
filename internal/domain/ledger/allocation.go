// Package ledger holds the allocation engine: pure quantity arithmetic over
// a stock entry and its transaction log. It never persists anything; the
// use-case layer reads state, calls in here, and writes the result.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/copperwirepro/ledger-api/internal/domain"
	"github.com/copperwirepro/ledger-api/internal/domain/entity"
)

// Available derives the available quantity of an entry:
// TotalQuantity + sum(QuantityDelta). It is never cached or stored.
func Available(total decimal.Decimal, txns []*entity.LedgerTransaction) decimal.Decimal {
	available := total
	for _, t := range txns {
		available = available.Add(t.QuantityDelta)
	}
	return available
}

// CanConsume reports whether quantity can be taken from an entry with the
// given available quantity: quantity > 0 and quantity <= available.
// Exact decimal comparison, no tolerance.
func CanConsume(available, quantity decimal.Decimal) bool {
	return quantity.GreaterThan(decimal.Zero) && quantity.LessThanOrEqual(available)
}

// SaleTotal computes quantity * pricePerUnit. Both operands must be positive.
func SaleTotal(quantity, pricePerUnit decimal.Decimal) (decimal.Decimal, error) {
	if !quantity.GreaterThan(decimal.Zero) || !pricePerUnit.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return quantity.Mul(pricePerUnit), nil
}

// PaymentLine is one method/amount pair of a payment split.
type PaymentLine struct {
	Method    string
	Amount    decimal.Decimal
	Reference string
}

// ValidatePaymentSplit checks that the payment lines reconcile exactly with
// totalDue: every line has a known method and a positive amount, and the sum
// of amounts equals totalDue. A sale whose cash+bank+check lines do not sum
// to the bill total is rejected.
func ValidatePaymentSplit(totalDue decimal.Decimal, lines []PaymentLine) error {
	if len(lines) == 0 {
		return domain.ErrInvalidInput
	}
	sum := decimal.Zero
	for _, l := range lines {
		if !entity.ValidPaymentMethod(l.Method) {
			return domain.ErrInvalidInput
		}
		if !l.Amount.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		sum = sum.Add(l.Amount)
	}
	if !sum.Equal(totalDue) {
		return domain.ErrPaymentSplitMismatch
	}
	return nil
}
