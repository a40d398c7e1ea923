package graph

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"crm/pkg/domain/model"
	"crm/pkg/domain/service"
)

// Resolver bridges the GraphQL schema to the domain services.
type Resolver struct {
	customers service.CustomerService
	products  service.ProductService
	orders    service.OrderService
}

func NewResolver(customers service.CustomerService, products service.ProductService, orders service.OrderService) *Resolver {
	return &Resolver{
		customers: customers,
		products:  products,
		orders:    orders,
	}
}

// View structs returned to graphql-go; resolved by json tag.

type customerView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

type productView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Stock     int       `json:"stock"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

type orderView struct {
	ID          string         `json:"id"`
	Customer    *customerView  `json:"customer"`
	Products    []*productView `json:"products"`
	OrderDate   time.Time      `json:"orderDate"`
	TotalAmount float64        `json:"totalAmount"`
}

type createCustomerPayload struct {
	Customer *customerView `json:"customer"`
	OK       bool          `json:"ok"`
	Message  string        `json:"message"`
}

type bulkCreateCustomersPayload struct {
	Customers []*customerView `json:"customers"`
	Errors    []string        `json:"errors"`
	OK        bool            `json:"ok"`
	Message   string          `json:"message"`
}

type createProductPayload struct {
	Product *productView `json:"product"`
	OK      bool         `json:"ok"`
	Message string       `json:"message"`
}

type createOrderPayload struct {
	Order   *orderView `json:"order"`
	OK      bool       `json:"ok"`
	Message string     `json:"message"`
}

type updateLowStockPayload struct {
	Products []*productView `json:"products"`
	OK       bool           `json:"ok"`
	Message  string         `json:"message"`
}

func (r *Resolver) customerToView(c *model.Customer) *customerView {
	view := &customerView{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
	if c.Phone != "" {
		view.Phone = &c.Phone
	}
	return view
}

func (r *Resolver) productToView(p *model.Product) *productView {
	return &productView{
		ID:        p.ID.String(),
		Name:      p.Name,
		Stock:     p.Stock,
		Price:     p.Price.InexactFloat64(),
		CreatedAt: p.CreatedAt,
	}
}

func (r *Resolver) productsToViews(products []*model.Product) []*productView {
	views := make([]*productView, 0, len(products))
	for _, p := range products {
		views = append(views, r.productToView(p))
	}
	return views
}

func (r *Resolver) orderToView(o *model.Order) *orderView {
	view := &orderView{
		ID:          o.ID.String(),
		Products:    r.productsToViews(o.Products),
		OrderDate:   o.OrderDate,
		TotalAmount: o.TotalAmount.InexactFloat64(),
	}
	if customer, err := r.customers.GetCustomer(o.CustomerID); err == nil {
		view.Customer = r.customerToView(customer)
	}
	return view
}

func (r *Resolver) ordersToViews(orders []*model.Order) []*orderView {
	views := make([]*orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, r.orderToView(o))
	}
	return views
}

// Messages preserved from the original CRM responses.
const (
	msgCustomerCreated = "Customer created successfully."
	msgCustomersBulk   = "Customers created successfully."
	msgProductCreated  = "Product created successfully."
	msgOrderCreated    = "Order created successfully."
	msgLowStockUpdated = "Low stock products updated successfully."
	msgInvalidID       = "Invalid ID format."
)

// failureMessage maps a business error to its client-facing message. The
// second return is false for infrastructure errors, which are surfaced as
// GraphQL errors instead of a payload.
func failureMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, model.ErrEmailTaken):
		return "Email already exists.", true
	case errors.Is(err, service.ErrInvalidEmail):
		return "Invalid email format.", true
	case errors.Is(err, service.ErrInvalidPhone):
		return "Invalid phone format. Use +1234567890 or 123-456-7890.", true
	case errors.Is(err, service.ErrNameRequired):
		return "Name is required.", true
	case errors.Is(err, service.ErrNegativeStock):
		return "Stock cannot be negative.", true
	case errors.Is(err, service.ErrNegativePrice):
		return "Price cannot be negative.", true
	case errors.Is(err, model.ErrCustomerNotFound):
		return "Invalid customer ID.", true
	case errors.Is(err, service.ErrEmptyProductList):
		return "Order must contain at least one product.", true
	case errors.Is(err, service.ErrProductMismatch):
		return "One or more product IDs are invalid.", true
	default:
		return "", false
	}
}

func parseIDs(raw []interface{}) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, v := range raw {
		s, _ := v.(string)
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
