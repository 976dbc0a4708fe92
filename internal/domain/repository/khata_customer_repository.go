package repository

import "github.com/copperwirepro/ledger-api/internal/domain/entity"

// KhataCustomerRepository is the persistence port for khata customers.
type KhataCustomerRepository interface {
	Create(customer *entity.KhataCustomer) error
	GetByID(id string) (*entity.KhataCustomer, error)
	GetByName(name string) (*entity.KhataCustomer, error)
	List(limit, offset int) ([]*entity.KhataCustomer, error)
}
