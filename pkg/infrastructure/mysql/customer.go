package mysql

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"crm/pkg/domain/model"
)

func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

type CustomerRepository struct {
	db *sqlx.DB
}

type customerRow struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	Email     string         `db:"email"`
	Phone     sql.NullString `db:"phone"`
	CreatedAt time.Time      `db:"created_at"`
}

func (r *CustomerRepository) NextID() (uuid.UUID, error) {
	return uuid.New(), nil
}

func (r *CustomerRepository) Create(customer *model.Customer) error {
	_, err := r.db.Exec(
		`INSERT INTO customers (id, name, email, phone, created_at) VALUES (?, ?, ?, ?, ?)`,
		customer.ID.String(), customer.Name, customer.Email, nullString(customer.Phone), customer.CreatedAt,
	)
	return errors.Wrap(err, "insert customer")
}

func (r *CustomerRepository) CreateBatch(customers []*model.Customer) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "begin batch insert")
	}

	for _, customer := range customers {
		if _, err := tx.Exec(
			`INSERT INTO customers (id, name, email, phone, created_at) VALUES (?, ?, ?, ?, ?)`,
			customer.ID.String(), customer.Name, customer.Email, nullString(customer.Phone), customer.CreatedAt,
		); err != nil {
			_ = tx.Rollback()
			return errors.Wrap(err, "insert customer batch row")
		}
	}

	return errors.Wrap(tx.Commit(), "commit batch insert")
}

func (r *CustomerRepository) Find(id uuid.UUID) (*model.Customer, error) {
	var row customerRow
	err := r.db.Get(&row, `SELECT id, name, email, phone, created_at FROM customers WHERE id = ?`, id.String())
	if err == sql.ErrNoRows {
		return nil, model.ErrCustomerNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select customer")
	}
	return row.toCustomer()
}

func (r *CustomerRepository) FindByEmail(email string) (*model.Customer, error) {
	var row customerRow
	err := r.db.Get(&row, `SELECT id, name, email, phone, created_at FROM customers WHERE email = ?`, email)
	if err == sql.ErrNoRows {
		return nil, model.ErrCustomerNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select customer by email")
	}
	return row.toCustomer()
}

func (r *CustomerRepository) FindAll() ([]*model.Customer, error) {
	var rows []customerRow
	if err := r.db.Select(&rows, `SELECT id, name, email, phone, created_at FROM customers ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "select customers")
	}

	customers := make([]*model.Customer, 0, len(rows))
	for _, row := range rows {
		customer, err := row.toCustomer()
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, nil
}

func (row customerRow) toCustomer() (*model.Customer, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "parse customer id")
	}
	return &model.Customer{
		ID:        id,
		Name:      row.Name,
		Email:     row.Email,
		Phone:     row.Phone.String,
		CreatedAt: row.CreatedAt,
	}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
