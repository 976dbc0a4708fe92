package repository

import "github.com/copperwirepro/ledger-api/internal/domain/entity"

// EntryFilter filters listings. Zero values mean "no filter".
type EntryFilter struct {
	SourceKind string
	Label      string // case-insensitive substring match
}

// StockEntryRepository is the persistence port for StockEntry (DIP).
// Entries are append-only: there is no Update or Delete.
type StockEntryRepository interface {
	Create(entry *entity.StockEntry) error
	GetByID(id string) (*entity.StockEntry, error)
	// GetForUpdate locks the entry row (SELECT ... FOR UPDATE) so that
	// availability can be recomputed and validated atomically. Only valid
	// inside a transaction.
	GetForUpdate(id string) (*entity.StockEntry, error)
	List(filter EntryFilter, limit, offset int) ([]*entity.StockEntry, error)
}
