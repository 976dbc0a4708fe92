package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/copperwirepro/ledger-api/internal/domain/entity"
	"github.com/copperwirepro/ledger-api/internal/domain/repository"
)

var _ repository.StockEntryRepository = (*StockEntryRepo)(nil)

// StockEntryRepo StockEntryRepository implementation over PostgreSQL (usable
// with pool or tx).
type StockEntryRepo struct {
	q Querier
}

// NewStockEntryRepository builds the adapter. Pass a pool or tx (Querier).
func NewStockEntryRepository(q Querier) *StockEntryRepo {
	return &StockEntryRepo{q: q}
}

const entryColumns = `id, source_kind, origin_id, label, total_quantity, unit_price, created_at, created_by`

// Create persists a new stock entry. Entries are append-only; there is no
// update path.
func (r *StockEntryRepo) Create(entry *entity.StockEntry) error {
	query := `
		INSERT INTO stock_entries (id, source_kind, origin_id, label, total_quantity, unit_price, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	originID := (*string)(nil)
	if entry.OriginID != "" {
		originID = &entry.OriginID
	}
	createdBy := (*string)(nil)
	if entry.CreatedBy != "" {
		createdBy = &entry.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.SourceKind, originID, entry.Label,
		entry.TotalQuantity, entry.UnitPrice, entry.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock entry: %w", err)
	}
	return nil
}

// GetByID fetches an entry by ID; nil when absent.
func (r *StockEntryRepo) GetByID(id string) (*entity.StockEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM stock_entries WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate fetches an entry and locks its row (SELECT ... FOR UPDATE).
// Only meaningful on a tx-bound repo.
func (r *StockEntryRepo) GetForUpdate(id string) (*entity.StockEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM stock_entries WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *StockEntryRepo) scanOne(query string, args ...any) (*entity.StockEntry, error) {
	var e entity.StockEntry
	var originID, createdBy *string
	var unitPrice *decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&e.ID, &e.SourceKind, &originID, &e.Label, &e.TotalQuantity, &unitPrice, &e.CreatedAt, &createdBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock entry: %w", err)
	}
	if originID != nil {
		e.OriginID = *originID
	}
	if createdBy != nil {
		e.CreatedBy = *createdBy
	}
	e.UnitPrice = unitPrice
	return &e, nil
}

// List lists entries matching the filter, newest first.
func (r *StockEntryRepo) List(filter repository.EntryFilter, limit, offset int) ([]*entity.StockEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM stock_entries WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.SourceKind != "" {
		query += fmt.Sprintf(" AND source_kind = $%d", pos)
		args = append(args, filter.SourceKind)
		pos++
	}
	if filter.Label != "" {
		query += fmt.Sprintf(" AND label ILIKE $%d", pos)
		args = append(args, "%"+filter.Label+"%")
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockEntry
	for rows.Next() {
		var e entity.StockEntry
		var originID, createdBy *string
		var unitPrice *decimal.Decimal
		if err := rows.Scan(&e.ID, &e.SourceKind, &originID, &e.Label, &e.TotalQuantity, &unitPrice, &e.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan stock entry: %w", err)
		}
		if originID != nil {
			e.OriginID = *originID
		}
		if createdBy != nil {
			e.CreatedBy = *createdBy
		}
		e.UnitPrice = unitPrice
		list = append(list, &e)
	}
	return list, rows.Err()
}
