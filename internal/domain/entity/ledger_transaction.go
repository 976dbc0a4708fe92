package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction kinds. QuantityDelta is negative for Consume/Sell/DeleteAdjustment
// and positive for Return.
const (
	TxKindConsume          = "CONSUME"           // consumed by the next workflow stage
	TxKindReturn           = "RETURN"            // returned to the lot (incl. sale undo)
	TxKindSell             = "SELL"              // sold to a buyer
	TxKindDeleteAdjustment = "DELETE_ADJUSTMENT" // audited partial removal
)

// LedgerTransaction is one append-only quantity-affecting event against a
// StockEntry. Entries are never mutated or deleted; every change, including
// "deletions", is a new transaction.
type LedgerTransaction struct {
	ID               string
	EntryID          string
	Kind             string
	QuantityDelta    decimal.Decimal // signed
	CounterpartyName string          // buyer, processor or operator, free text
	Notes            string          // mandatory for DELETE_ADJUSTMENT
	ReversesID       string          // set on the compensating RETURN of an undone sale
	Timestamp        time.Time
	CreatedBy        string // UserID
}
