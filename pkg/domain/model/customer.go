package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrEmailTaken       = errors.New("email is already taken")
)

type Customer struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string // empty when no phone is on record
	CreatedAt time.Time
}

type CustomerRepository interface {
	NextID() (uuid.UUID, error)
	Create(customer *Customer) error
	// CreateBatch persists all customers in a single transaction.
	// Either every customer is stored or none of them are.
	CreateBatch(customers []*Customer) error
	Find(id uuid.UUID) (*Customer, error)
	FindByEmail(email string) (*Customer, error)
	FindAll() ([]*Customer, error)
}
