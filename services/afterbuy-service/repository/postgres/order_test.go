package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahhussein/afterbuy-sdk/pkg/logger"
	"github.com/ahhussein/afterbuy-sdk/pkg/postgres"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/domain"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/domain/model"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/domain/repository"
)

func setupRepository(t *testing.T) (repository.SoldOrder, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err, "Failed to create sqlmock")
	t.Cleanup(func() { _ = sqlDB.Close() })

	mock.ExpectPing()
	client, err := postgres.NewFromConn(context.Background(), sqlDB, postgres.Config{})
	require.NoError(t, err)

	return NewSoldOrderRepository(client.GetDB(), logger.NoOpLogger()), mock
}

func TestSoldOrderRepository_Upsert(t *testing.T) {
	repo, mock := setupRepository(t)

	order := &model.SoldOrder{
		AfterbuyOrderID: 1001,
		BuyerEmail:      "jane@example.com",
		FullAmount:      decimal.RequireFromString("19.99"),
		SyncedAt:        time.Now(),
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "sold_orders" .* ON CONFLICT \("afterbuy_order_id"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Upsert(context.Background(), order))
	assert.Len(t, order.ID, 26, "BeforeCreate should assign a ULID")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSoldOrderRepository_Upsert_Error(t *testing.T) {
	repo, mock := setupRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "sold_orders"`).WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	err := repo.Upsert(context.Background(), &model.SoldOrder{AfterbuyOrderID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upsert sold order")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSoldOrderRepository_GetByAfterbuyID(t *testing.T) {
	repo, mock := setupRepository(t)
	modDate := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "afterbuy_order_id", "buyer_email", "full_amount", "item_count", "mod_date"}).
		AddRow("01HQ8Z0000000000000000000A", int64(1001), "jane@example.com", "19.99", 2, modDate)
	mock.ExpectQuery(`SELECT \* FROM "sold_orders" WHERE afterbuy_order_id = \$1`).
		WillReturnRows(rows)

	order, err := repo.GetByAfterbuyID(context.Background(), 1001)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), order.AfterbuyOrderID)
	assert.Equal(t, "jane@example.com", order.BuyerEmail)
	assert.True(t, decimal.RequireFromString("19.99").Equal(order.FullAmount))
	assert.Equal(t, 2, order.ItemCount)
	assert.True(t, modDate.Equal(order.ModDate))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSoldOrderRepository_GetByAfterbuyID_NotFound(t *testing.T) {
	repo, mock := setupRepository(t)

	mock.ExpectQuery(`SELECT \* FROM "sold_orders" WHERE afterbuy_order_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByAfterbuyID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSoldOrderRepository_List(t *testing.T) {
	repo, mock := setupRepository(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "sold_orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT \* FROM "sold_orders" ORDER BY mod_date DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "afterbuy_order_id"}).
			AddRow("01HQ8Z0000000000000000000C", int64(3)).
			AddRow("01HQ8Z0000000000000000000B", int64(2)))

	orders, total, err := repo.List(context.Background(), 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, orders, 2)
	assert.Equal(t, int64(3), orders[0].AfterbuyOrderID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSoldOrderRepository_List_CountError(t *testing.T) {
	repo, mock := setupRepository(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "sold_orders"`).
		WillReturnError(errors.New("relation does not exist"))

	_, _, err := repo.List(context.Background(), 0, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to count sold orders")
	require.NoError(t, mock.ExpectationsWereMet())
}
