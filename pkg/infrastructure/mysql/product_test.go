package mysql

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm/pkg/domain/model"
)

func TestProductRepositoryFindBelowStock(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "name", "stock", "price", "created_at", "updated_at"}).
		AddRow(id.String(), "Widget", 3, "9.99", time.Now().UTC(), time.Now().UTC())

	mock.ExpectQuery("SELECT id, name, stock, price, created_at, updated_at FROM products WHERE stock <").
		WithArgs(10).
		WillReturnRows(rows)

	products, err := repo.FindBelowStock(10)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, id, products[0].ID)
	assert.Equal(t, 3, products[0].Stock)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("9.99")))
}

func TestProductRepositoryUpdateStockBatch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	products := []*model.Product{
		{ID: uuid.New(), Name: "Widget", Stock: 13, UpdatedAt: time.Now().UTC()},
		{ID: uuid.New(), Name: "Gadget", Stock: 19, UpdatedAt: time.Now().UTC()},
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE products SET stock").
		WithArgs(13, products[0].UpdatedAt, products[0].ID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE products SET stock").
		WithArgs(19, products[1].UpdatedAt, products[1].ID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpdateStockBatch(products))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	order := &model.Order{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Products: []*model.Product{
			{ID: uuid.New(), Name: "Widget", Price: decimal.RequireFromString("9.99")},
		},
		OrderDate:   time.Now().UTC(),
		TotalAmount: decimal.RequireFromString("9.99"),
		CreatedAt:   time.Now().UTC(),
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO order_products").
		WithArgs(order.ID.String(), order.Products[0].ID.String()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(order))
	assert.NoError(t, mock.ExpectationsWereMet())
}
