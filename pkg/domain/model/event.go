package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CustomerCreated struct {
	CustomerID uuid.UUID
	Email      string
	Name       string
}

func (e CustomerCreated) Type() string { return "CustomerCreated" }

type CustomersBulkCreated struct {
	CustomerIDs []uuid.UUID
}

func (e CustomersBulkCreated) Type() string { return "CustomersBulkCreated" }

type ProductCreated struct {
	ProductID uuid.UUID
	Name      string
}

func (e ProductCreated) Type() string { return "ProductCreated" }

type ProductRestocked struct {
	ProductID uuid.UUID
	OldStock  int
	NewStock  int
}

func (e ProductRestocked) Type() string { return "ProductRestocked" }

type OrderPlaced struct {
	OrderID     uuid.UUID
	CustomerID  uuid.UUID
	TotalAmount decimal.Decimal
}

func (e OrderPlaced) Type() string { return "OrderPlaced" }
