package tests

import (
	"time"

	"github.com/google/uuid"

	"crm/pkg/domain/model"
	"crm/pkg/domain/service"
)

type mockCustomerRepository struct {
	store map[uuid.UUID]*model.Customer

	findByEmailErr error
}

func newMockCustomerRepository() *mockCustomerRepository {
	return &mockCustomerRepository{store: make(map[uuid.UUID]*model.Customer)}
}

func (m *mockCustomerRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (m *mockCustomerRepository) Create(customer *model.Customer) error {
	m.store[customer.ID] = customer
	return nil
}

func (m *mockCustomerRepository) CreateBatch(customers []*model.Customer) error {
	for _, customer := range customers {
		m.store[customer.ID] = customer
	}
	return nil
}

func (m *mockCustomerRepository) Find(id uuid.UUID) (*model.Customer, error) {
	if customer, ok := m.store[id]; ok {
		return customer, nil
	}
	return nil, model.ErrCustomerNotFound
}

func (m *mockCustomerRepository) FindByEmail(email string) (*model.Customer, error) {
	if m.findByEmailErr != nil {
		return nil, m.findByEmailErr
	}
	for _, customer := range m.store {
		if customer.Email == email {
			return customer, nil
		}
	}
	return nil, model.ErrCustomerNotFound
}

func (m *mockCustomerRepository) FindAll() ([]*model.Customer, error) {
	customers := make([]*model.Customer, 0, len(m.store))
	for _, customer := range m.store {
		customers = append(customers, customer)
	}
	return customers, nil
}

type mockProductRepository struct {
	store map[uuid.UUID]*model.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{store: make(map[uuid.UUID]*model.Product)}
}

func (m *mockProductRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (m *mockProductRepository) Create(product *model.Product) error {
	m.store[product.ID] = product
	return nil
}

func (m *mockProductRepository) Find(id uuid.UUID) (*model.Product, error) {
	if product, ok := m.store[id]; ok {
		return product, nil
	}
	return nil, model.ErrProductNotFound
}

func (m *mockProductRepository) FindByIDs(ids []uuid.UUID) ([]*model.Product, error) {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	var products []*model.Product
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if product, ok := m.store[id]; ok {
			products = append(products, product)
		}
	}
	return products, nil
}

func (m *mockProductRepository) FindAll() ([]*model.Product, error) {
	products := make([]*model.Product, 0, len(m.store))
	for _, product := range m.store {
		products = append(products, product)
	}
	return products, nil
}

func (m *mockProductRepository) FindBelowStock(threshold int) ([]*model.Product, error) {
	var products []*model.Product
	for _, product := range m.store {
		if product.Stock < threshold {
			products = append(products, product)
		}
	}
	return products, nil
}

func (m *mockProductRepository) UpdateStockBatch(products []*model.Product) error {
	for _, product := range products {
		m.store[product.ID] = product
	}
	return nil
}

type mockOrderRepository struct {
	store map[uuid.UUID]*model.Order
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{store: make(map[uuid.UUID]*model.Order)}
}

func (m *mockOrderRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (m *mockOrderRepository) Create(order *model.Order) error {
	m.store[order.ID] = order
	return nil
}

func (m *mockOrderRepository) Find(id uuid.UUID) (*model.Order, error) {
	if order, ok := m.store[id]; ok {
		return order, nil
	}
	return nil, model.ErrOrderNotFound
}

func (m *mockOrderRepository) FindAll() ([]*model.Order, error) {
	orders := make([]*model.Order, 0, len(m.store))
	for _, order := range m.store {
		orders = append(orders, order)
	}
	return orders, nil
}

func (m *mockOrderRepository) FindSince(since time.Time) ([]*model.Order, error) {
	var orders []*model.Order
	for _, order := range m.store {
		if !order.OrderDate.Before(since) {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

type mockEventDispatcher struct {
	events []service.Event
}

func (m *mockEventDispatcher) Dispatch(event service.Event) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventDispatcher) Reset() {
	m.events = nil
}
