package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"crm/pkg/domain/model"
)

var (
	ErrEmptyProductList = errors.New("order must contain at least one product")
	ErrProductMismatch  = errors.New("one or more product ids do not exist")
)

type OrderService interface {
	// CreateOrder places an order for an existing customer over existing
	// products. The total amount is the sum of the product prices at
	// creation time and is never recomputed. A nil orderDate defaults to
	// the server clock.
	CreateOrder(customerID uuid.UUID, productIDs []uuid.UUID, orderDate *time.Time) (*model.Order, error)
	ListOrders() ([]*model.Order, error)
	ListOrdersSince(since time.Time) ([]*model.Order, error)
}

func NewOrderService(orders model.OrderRepository, customers model.CustomerRepository, products model.ProductRepository, dispatcher EventDispatcher) OrderService {
	return &orderService{
		orders:     orders,
		customers:  customers,
		products:   products,
		dispatcher: dispatcher,
		nowFunc:    time.Now,
	}
}

type orderService struct {
	orders     model.OrderRepository
	customers  model.CustomerRepository
	products   model.ProductRepository
	dispatcher EventDispatcher
	nowFunc    func() time.Time
}

func (s *orderService) CreateOrder(customerID uuid.UUID, productIDs []uuid.UUID, orderDate *time.Time) (*model.Order, error) {
	if _, err := s.customers.Find(customerID); err != nil {
		return nil, model.ErrCustomerNotFound
	}
	if len(productIDs) == 0 {
		return nil, ErrEmptyProductList
	}

	products, err := s.products.FindByIDs(productIDs)
	if err != nil {
		return nil, err
	}
	if len(products) != len(productIDs) {
		return nil, ErrProductMismatch
	}

	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}

	orderID, err := s.orders.NextID()
	if err != nil {
		return nil, err
	}

	now := s.nowFunc().UTC()
	date := now
	if orderDate != nil {
		date = orderDate.UTC()
	}

	order := &model.Order{
		ID:          orderID,
		CustomerID:  customerID,
		Products:    products,
		OrderDate:   date,
		TotalAmount: total,
		CreatedAt:   now,
	}

	if err := s.orders.Create(order); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.OrderPlaced{
		OrderID:     orderID,
		CustomerID:  customerID,
		TotalAmount: total,
	})

	return order, nil
}

func (s *orderService) ListOrders() ([]*model.Order, error) {
	return s.orders.FindAll()
}

func (s *orderService) ListOrdersSince(since time.Time) ([]*model.Order, error) {
	return s.orders.FindSince(since)
}
