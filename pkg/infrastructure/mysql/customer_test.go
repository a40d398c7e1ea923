package mysql

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm/pkg/domain/model"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "mysql"), mock
}

func TestCustomerRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCustomerRepository(db)

	customer := &model.Customer{
		ID:        uuid.New(),
		Name:      "Ada",
		Email:     "ada@example.com",
		Phone:     "123-456-7890",
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO customers").
		WithArgs(customer.ID.String(), "Ada", "ada@example.com", sqlmock.AnyArg(), customer.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(customer))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepositoryCreateBatch(t *testing.T) {
	t.Run("Commit on full success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCustomerRepository(db)

		customers := []*model.Customer{
			{ID: uuid.New(), Name: "Ada", Email: "ada@example.com", CreatedAt: time.Now().UTC()},
			{ID: uuid.New(), Name: "Bob", Email: "bob@example.com", CreatedAt: time.Now().UTC()},
		}

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO customers").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO customers").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.CreateBatch(customers))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback when any insert fails", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCustomerRepository(db)

		customers := []*model.Customer{
			{ID: uuid.New(), Name: "Ada", Email: "ada@example.com", CreatedAt: time.Now().UTC()},
			{ID: uuid.New(), Name: "Bob", Email: "bob@example.com", CreatedAt: time.Now().UTC()},
		}

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO customers").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO customers").WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		assert.Error(t, repo.CreateBatch(customers))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCustomerRepositoryFindByEmail(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCustomerRepository(db)

		id := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "name", "email", "phone", "created_at"}).
			AddRow(id.String(), "Ada", "ada@example.com", nil, time.Now().UTC())

		mock.ExpectQuery("SELECT id, name, email, phone, created_at FROM customers WHERE email").
			WithArgs("ada@example.com").
			WillReturnRows(rows)

		customer, err := repo.FindByEmail("ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, id, customer.ID)
		assert.Empty(t, customer.Phone)
	})

	t.Run("Not found maps to the domain sentinel", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCustomerRepository(db)

		mock.ExpectQuery("SELECT id, name, email, phone, created_at FROM customers WHERE email").
			WithArgs("missing@example.com").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByEmail("missing@example.com")
		assert.ErrorIs(t, err, model.ErrCustomerNotFound)
	})
}
