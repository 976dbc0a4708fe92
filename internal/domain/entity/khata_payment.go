package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods for a khata sale split.
const (
	PaymentMethodCash  = "CASH"
	PaymentMethodBank  = "BANK"
	PaymentMethodCheck = "CHECK"
)

// ValidPaymentMethod reports whether method is one of the known methods.
func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCash, PaymentMethodBank, PaymentMethodCheck:
		return true
	}
	return false
}

// KhataPayment is one payment line of a khata sale. The lines of a sale must
// sum exactly to the sale total.
type KhataPayment struct {
	ID            string
	TransactionID string // the SELL ledger transaction this line pays
	CustomerID    string
	Method        string
	Amount        decimal.Decimal
	Reference     string // check number / bank slip, optional
	CreatedAt     time.Time
}
