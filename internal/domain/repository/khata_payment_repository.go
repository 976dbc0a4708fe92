package repository

import "github.com/copperwirepro/ledger-api/internal/domain/entity"

// KhataPaymentRepository is the persistence port for khata payment lines.
type KhataPaymentRepository interface {
	Create(payment *entity.KhataPayment) error
	ListByTransaction(transactionID string) ([]*entity.KhataPayment, error)
	ListByCustomer(customerID string) ([]*entity.KhataPayment, error)
}
