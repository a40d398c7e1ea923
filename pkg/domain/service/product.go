package service

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"crm/pkg/domain/model"
)

var (
	ErrNegativeStock = errors.New("stock cannot be negative")
	ErrNegativePrice = errors.New("price cannot be negative")
)

const (
	// Products with stock strictly below the threshold are restocked, each
	// by restockAmount.
	lowStockThreshold = 10
	restockAmount     = 10
)

type ProductService interface {
	CreateProduct(name string, stock int, price decimal.Decimal) (*model.Product, error)
	// RestockLowStockProducts increments the stock of every product with
	// stock below the threshold and returns the updated products. The batch
	// is persisted in a single transaction.
	RestockLowStockProducts() ([]*model.Product, error)
	ListProducts() ([]*model.Product, error)
}

func NewProductService(repo model.ProductRepository, dispatcher EventDispatcher) ProductService {
	return &productService{repo: repo, dispatcher: dispatcher}
}

type productService struct {
	repo       model.ProductRepository
	dispatcher EventDispatcher
}

func (s *productService) CreateProduct(name string, stock int, price decimal.Decimal) (*model.Product, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}

	productID, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &model.Product{
		ID:        productID,
		Name:      name,
		Stock:     stock,
		Price:     price.Round(2),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(product); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.ProductCreated{ProductID: productID, Name: name})
	return product, nil
}

func (s *productService) RestockLowStockProducts() ([]*model.Product, error) {
	products, err := s.repo.FindBelowStock(lowStockThreshold)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return []*model.Product{}, nil
	}

	now := time.Now().UTC()
	oldStocks := make([]int, len(products))
	for i, p := range products {
		oldStocks[i] = p.Stock
		p.Stock += restockAmount
		p.UpdatedAt = now
	}

	if err := s.repo.UpdateStockBatch(products); err != nil {
		return nil, err
	}

	for i, p := range products {
		_ = s.dispatcher.Dispatch(model.ProductRestocked{
			ProductID: p.ID,
			OldStock:  oldStocks[i],
			NewStock:  p.Stock,
		})
	}

	return products, nil
}

func (s *productService) ListProducts() ([]*model.Product, error) {
	return s.repo.FindAll()
}
