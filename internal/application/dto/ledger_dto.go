package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEntryRequest body for POST /api/entries. Triggered by external
// "purchase completed" / "processing completed" / "production completed"
// events; the ledger only records them.
type CreateEntryRequest struct {
	SourceKind    string           `json:"source_kind"`
	OriginID      string           `json:"origin_id,omitempty"`
	Label         string           `json:"label"`
	TotalQuantity decimal.Decimal  `json:"total_quantity"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
}

// EntryResponse a stock entry with its derived availability.
type EntryResponse struct {
	ID                string           `json:"id"`
	SourceKind        string           `json:"source_kind"`
	OriginID          string           `json:"origin_id,omitempty"`
	Label             string           `json:"label"`
	TotalQuantity     decimal.Decimal  `json:"total_quantity"`
	AvailableQuantity decimal.Decimal  `json:"available_quantity"`
	UnitPrice         *decimal.Decimal `json:"unit_price,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}

// TransactionResponse one ledger transaction.
type TransactionResponse struct {
	ID               string          `json:"id"`
	EntryID          string          `json:"entry_id"`
	Kind             string          `json:"kind"`
	QuantityDelta    decimal.Decimal `json:"quantity_delta"`
	CounterpartyName string          `json:"counterparty_name,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	ReversesID       string          `json:"reverses_id,omitempty"`
	Timestamp        time.Time       `json:"timestamp"`
}

// SellRequest body for POST /api/entries/:id/sell.
type SellRequest struct {
	Quantity     decimal.Decimal `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	BuyerName    string          `json:"buyer_name"`
}

// ReturnRequest body for POST /api/entries/:id/return. The quantity is
// consumed from the source entry and reborn as a new traceable lot.
type ReturnRequest struct {
	NewLabel      string          `json:"new_label"`
	Quantity      decimal.Decimal `json:"quantity"`
	ProcessorName string          `json:"processor_name,omitempty"`
}

// DeletePartialRequest body for POST /api/entries/:id/delete-partial.
// Note is mandatory: silent stock removal is the bug this endpoint replaces.
type DeletePartialRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	Note     string          `json:"note"`
}
