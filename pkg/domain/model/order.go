package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrOrderNotFound = errors.New("order not found")

type Order struct {
	ID          uuid.UUID
	CustomerID  uuid.UUID
	Products    []*Product
	OrderDate   time.Time
	TotalAmount decimal.Decimal // snapshot of product prices at creation time
	CreatedAt   time.Time
}

type OrderRepository interface {
	NextID() (uuid.UUID, error)
	// Create persists the order and its product associations in a single
	// transaction.
	Create(order *Order) error
	Find(id uuid.UUID) (*Order, error)
	FindAll() ([]*Order, error)
	FindSince(since time.Time) ([]*Order, error)
}
