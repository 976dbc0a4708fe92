package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/copperwirepro/ledger-api/internal/domain"
	"github.com/copperwirepro/ledger-api/internal/domain/entity"
	"github.com/copperwirepro/ledger-api/internal/domain/repository"
)

var _ repository.KhataCustomerRepository = (*KhataCustomerRepo)(nil)

// KhataCustomerRepo KhataCustomerRepository implementation over PostgreSQL
// (usable with pool or tx).
type KhataCustomerRepo struct {
	q Querier
}

// NewKhataCustomerRepository builds the adapter. Pass a pool or tx (Querier).
func NewKhataCustomerRepository(q Querier) *KhataCustomerRepo {
	return &KhataCustomerRepo{q: q}
}

// Create persists a new khata customer.
func (r *KhataCustomerRepo) Create(customer *entity.KhataCustomer) error {
	query := `
		INSERT INTO khata_customers (id, name, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Phone, customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert khata customer: %w", err)
	}
	return nil
}

// GetByID fetches a customer by ID; nil when absent.
func (r *KhataCustomerRepo) GetByID(id string) (*entity.KhataCustomer, error) {
	query := `SELECT id, name, phone, created_at, updated_at FROM khata_customers WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByName fetches a customer by (normalized) name; nil when absent.
func (r *KhataCustomerRepo) GetByName(name string) (*entity.KhataCustomer, error) {
	query := `SELECT id, name, phone, created_at, updated_at FROM khata_customers WHERE name = $1`
	return r.scanOne(query, name)
}

func (r *KhataCustomerRepo) scanOne(query string, args ...any) (*entity.KhataCustomer, error) {
	var c entity.KhataCustomer
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&c.ID, &c.Name, &c.Phone, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get khata customer: %w", err)
	}
	return &c, nil
}

// List lists customers ordered by name.
func (r *KhataCustomerRepo) List(limit, offset int) ([]*entity.KhataCustomer, error) {
	query := `SELECT id, name, phone, created_at, updated_at FROM khata_customers ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list khata customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.KhataCustomer
	for rows.Next() {
		var c entity.KhataCustomer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan khata customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
