package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

type Product struct {
	ID        uuid.UUID
	Name      string
	Stock     int
	Price     decimal.Decimal // stored with exactly two fractional digits
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProductRepository interface {
	NextID() (uuid.UUID, error)
	Create(product *Product) error
	Find(id uuid.UUID) (*Product, error)
	// FindByIDs resolves the given ids, silently skipping ids that do not
	// exist. Duplicate ids resolve to a single product.
	FindByIDs(ids []uuid.UUID) ([]*Product, error)
	FindAll() ([]*Product, error)
	FindBelowStock(threshold int) ([]*Product, error)
	// UpdateStockBatch persists stock changes for all products in a single
	// transaction.
	UpdateStockBatch(products []*Product) error
}
