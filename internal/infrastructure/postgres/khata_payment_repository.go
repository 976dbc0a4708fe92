package postgres

import (
	"context"
	"fmt"

	"github.com/copperwirepro/ledger-api/internal/domain/entity"
	"github.com/copperwirepro/ledger-api/internal/domain/repository"
)

var _ repository.KhataPaymentRepository = (*KhataPaymentRepo)(nil)

// KhataPaymentRepo KhataPaymentRepository implementation over PostgreSQL
// (usable with pool or tx).
type KhataPaymentRepo struct {
	q Querier
}

// NewKhataPaymentRepository builds the adapter. Pass a pool or tx (Querier).
func NewKhataPaymentRepository(q Querier) *KhataPaymentRepo {
	return &KhataPaymentRepo{q: q}
}

// Create persists a payment line.
func (r *KhataPaymentRepo) Create(payment *entity.KhataPayment) error {
	query := `
		INSERT INTO khata_payments (id, transaction_id, customer_id, method, amount, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.TransactionID, payment.CustomerID,
		payment.Method, payment.Amount, payment.Reference, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert khata payment: %w", err)
	}
	return nil
}

// ListByTransaction lists the payment lines of one sale.
func (r *KhataPaymentRepo) ListByTransaction(transactionID string) ([]*entity.KhataPayment, error) {
	query := `
		SELECT id, transaction_id, customer_id, method, amount, reference, created_at
		FROM khata_payments WHERE transaction_id = $1 ORDER BY created_at, id`
	return r.list(query, transactionID)
}

// ListByCustomer lists all payment lines of a customer, oldest first.
func (r *KhataPaymentRepo) ListByCustomer(customerID string) ([]*entity.KhataPayment, error) {
	query := `
		SELECT id, transaction_id, customer_id, method, amount, reference, created_at
		FROM khata_payments WHERE customer_id = $1 ORDER BY created_at, id`
	return r.list(query, customerID)
}

func (r *KhataPaymentRepo) list(query string, args ...any) ([]*entity.KhataPayment, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list khata payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.KhataPayment
	for rows.Next() {
		var p entity.KhataPayment
		if err := rows.Scan(&p.ID, &p.TransactionID, &p.CustomerID, &p.Method, &p.Amount, &p.Reference, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan khata payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
