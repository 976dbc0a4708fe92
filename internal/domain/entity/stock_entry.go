package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source kinds for a stock entry: where the lot came from in the workflow.
const (
	SourceRawPurchase      = "RAW_PURCHASE"      // raw copper bought from a supplier
	SourcePVCPurchase      = "PVC_PURCHASE"      // PVC granules bought from a supplier
	SourceKachaReturn      = "KACHA_RETURN"      // returned from the kacha (melt) stage
	SourceDrawReturn       = "DRAW_RETURN"       // returned from the wire-draw stage
	SourceProductionOutput = "PRODUCTION_OUTPUT" // finished wire out of production
)

// ValidSourceKind reports whether kind is one of the known source kinds.
func ValidSourceKind(kind string) bool {
	switch kind {
	case SourceRawPurchase, SourcePVCPurchase, SourceKachaReturn, SourceDrawReturn, SourceProductionOutput:
		return true
	}
	return false
}

// StockEntry is one traceable lot of material at some stage of the workflow.
// TotalQuantity is the quantity ever created in the lot and is immutable;
// availability is always derived from the transaction log, never stored.
// OriginID is a weak reference to the upstream entry the lot came from.
type StockEntry struct {
	ID            string
	SourceKind    string
	OriginID      string // empty for purchases and production output without a parent
	Label         string // material / color / wire size, e.g. "Kacha Returned Copper 8mm"
	TotalQuantity decimal.Decimal
	UnitPrice     *decimal.Decimal
	CreatedAt     time.Time
	CreatedBy     string // UserID
}
