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

func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

type ProductRepository struct {
	db *sqlx.DB
}

type productRow struct {
	ID        string          `db:"id"`
	Name      string          `db:"name"`
	Stock     int             `db:"stock"`
	Price     decimal.Decimal `db:"price"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

func (r *ProductRepository) NextID() (uuid.UUID, error) {
	return uuid.New(), nil
}

func (r *ProductRepository) Create(product *model.Product) error {
	_, err := r.db.Exec(
		`INSERT INTO products (id, name, stock, price, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		product.ID.String(), product.Name, product.Stock, product.Price, product.CreatedAt, product.UpdatedAt,
	)
	return errors.Wrap(err, "insert product")
}

func (r *ProductRepository) Find(id uuid.UUID) (*model.Product, error) {
	var row productRow
	err := r.db.Get(&row, `SELECT id, name, stock, price, created_at, updated_at FROM products WHERE id = ?`, id.String())
	if err == sql.ErrNoRows {
		return nil, model.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select product")
	}
	return row.toProduct()
}

func (r *ProductRepository) FindByIDs(ids []uuid.UUID) ([]*model.Product, error) {
	if len(ids) == 0 {
		return []*model.Product{}, nil
	}

	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id.String())
	}

	query, inArgs, err := sqlx.In(`SELECT id, name, stock, price, created_at, updated_at FROM products WHERE id IN (?)`, args)
	if err != nil {
		return nil, errors.Wrap(err, "build product id query")
	}

	var rows []productRow
	if err := r.db.Select(&rows, r.db.Rebind(query), inArgs...); err != nil {
		return nil, errors.Wrap(err, "select products by ids")
	}
	return rowsToProducts(rows)
}

func (r *ProductRepository) FindAll() ([]*model.Product, error) {
	var rows []productRow
	if err := r.db.Select(&rows, `SELECT id, name, stock, price, created_at, updated_at FROM products ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "select products")
	}
	return rowsToProducts(rows)
}

func (r *ProductRepository) FindBelowStock(threshold int) ([]*model.Product, error) {
	var rows []productRow
	if err := r.db.Select(&rows, `SELECT id, name, stock, price, created_at, updated_at FROM products WHERE stock < ?`, threshold); err != nil {
		return nil, errors.Wrap(err, "select low stock products")
	}
	return rowsToProducts(rows)
}

func (r *ProductRepository) UpdateStockBatch(products []*model.Product) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "begin stock update")
	}

	for _, product := range products {
		if _, err := tx.Exec(
			`UPDATE products SET stock = ?, updated_at = ? WHERE id = ?`,
			product.Stock, product.UpdatedAt, product.ID.String(),
		); err != nil {
			_ = tx.Rollback()
			return errors.Wrap(err, "update product stock")
		}
	}

	return errors.Wrap(tx.Commit(), "commit stock update")
}

func rowsToProducts(rows []productRow) ([]*model.Product, error) {
	products := make([]*model.Product, 0, len(rows))
	for _, row := range rows {
		product, err := row.toProduct()
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

func (row productRow) toProduct() (*model.Product, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "parse product id")
	}
	return &model.Product{
		ID:        id,
		Name:      row.Name,
		Stock:     row.Stock,
		Price:     row.Price,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}
