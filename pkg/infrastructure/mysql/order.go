package mysql

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"crm/pkg/domain/model"
)

func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

type OrderRepository struct {
	db *sqlx.DB
}

type orderRow struct {
	ID          string          `db:"id"`
	CustomerID  string          `db:"customer_id"`
	OrderDate   time.Time       `db:"order_date"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	CreatedAt   time.Time       `db:"created_at"`
}

func (r *OrderRepository) NextID() (uuid.UUID, error) {
	return uuid.New(), nil
}

func (r *OrderRepository) Create(order *model.Order) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "begin order insert")
	}

	if _, err := tx.Exec(
		`INSERT INTO orders (id, customer_id, order_date, total_amount, created_at) VALUES (?, ?, ?, ?, ?)`,
		order.ID.String(), order.CustomerID.String(), order.OrderDate, order.TotalAmount, order.CreatedAt,
	); err != nil {
		_ = tx.Rollback()
		return errors.Wrap(err, "insert order")
	}

	for _, product := range order.Products {
		if _, err := tx.Exec(
			`INSERT INTO order_products (order_id, product_id) VALUES (?, ?)`,
			order.ID.String(), product.ID.String(),
		); err != nil {
			_ = tx.Rollback()
			return errors.Wrap(err, "insert order product")
		}
	}

	return errors.Wrap(tx.Commit(), "commit order insert")
}

func (r *OrderRepository) Find(id uuid.UUID) (*model.Order, error) {
	var row orderRow
	err := r.db.Get(&row, `SELECT id, customer_id, order_date, total_amount, created_at FROM orders WHERE id = ?`, id.String())
	if err == sql.ErrNoRows {
		return nil, model.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select order")
	}
	return r.toOrder(row)
}

func (r *OrderRepository) FindAll() ([]*model.Order, error) {
	var rows []orderRow
	if err := r.db.Select(&rows, `SELECT id, customer_id, order_date, total_amount, created_at FROM orders ORDER BY order_date`); err != nil {
		return nil, errors.Wrap(err, "select orders")
	}
	return r.toOrders(rows)
}

func (r *OrderRepository) FindSince(since time.Time) ([]*model.Order, error) {
	var rows []orderRow
	if err := r.db.Select(&rows, `SELECT id, customer_id, order_date, total_amount, created_at FROM orders WHERE order_date >= ? ORDER BY order_date`, since); err != nil {
		return nil, errors.Wrap(err, "select orders since")
	}
	return r.toOrders(rows)
}

func (r *OrderRepository) toOrders(rows []orderRow) ([]*model.Order, error) {
	orders := make([]*model.Order, 0, len(rows))
	for _, row := range rows {
		order, err := r.toOrder(row)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *OrderRepository) toOrder(row orderRow) (*model.Order, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "parse order id")
	}
	customerID, err := uuid.Parse(row.CustomerID)
	if err != nil {
		return nil, errors.Wrap(err, "parse order customer id")
	}

	products, err := r.orderProducts(row.ID)
	if err != nil {
		return nil, err
	}

	return &model.Order{
		ID:          id,
		CustomerID:  customerID,
		Products:    products,
		OrderDate:   row.OrderDate,
		TotalAmount: row.TotalAmount,
		CreatedAt:   row.CreatedAt,
	}, nil
}

func (r *OrderRepository) orderProducts(orderID string) ([]*model.Product, error) {
	var rows []productRow
	err := r.db.Select(&rows, `
		SELECT p.id, p.name, p.stock, p.price, p.created_at, p.updated_at
		FROM products p
		JOIN order_products op ON op.product_id = p.id
		WHERE op.order_id = ?`, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "select order products")
	}
	return rowsToProducts(rows)
}
