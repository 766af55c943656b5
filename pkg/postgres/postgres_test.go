package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const hasTableQuery = `SELECT count\(\*\) FROM information_schema\.tables WHERE table_schema = CURRENT_SCHEMA\(\) AND table_name = \$1 AND table_type = \$2`

func setupMockPostgres(t *testing.T) (PostgresClient, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err, "Failed to create sqlmock")
	t.Cleanup(func() { _ = sqlDB.Close() })

	mock.ExpectPing()

	client, err := NewFromConn(context.Background(), sqlDB, Config{MaxOpenConns: 4})
	require.NoError(t, err, "Failed to open GORM with mock")

	return client, mock
}

func TestConfig_DSN(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{
			name: "full",
			config: Config{
				Host:           "db",
				Port:           5432,
				User:           "afterbuy",
				Password:       "secret",
				DBName:         "orders",
				Schema:         "sync",
				SSLMode:        "disable",
				ConnectTimeout: 5 * time.Second,
			},
			want: "host=db port=5432 user=afterbuy password=secret dbname=orders sslmode=disable search_path=sync connect_timeout=5",
		},
		{
			name: "no schema and sub-second timeout",
			config: Config{
				Host:           "localhost",
				Port:           5433,
				User:           "u",
				Password:       "p",
				DBName:         "d",
				SSLMode:        "require",
				ConnectTimeout: 500 * time.Millisecond,
			},
			want: "host=localhost port=5433 user=u password=p dbname=d sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.config.DSN())
		})
	}
}

func TestNewFromConn_PingError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectClose()

	client, err := NewFromConn(context.Background(), sqlDB, Config{})
	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "failed to ping postgres")
	require.NoError(t, mock.ExpectationsWereMet(), "Connection should be closed after a failed ping")
}

func TestNewPostgresClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := NewPostgresClient(ctx, Config{
		Host:           "127.0.0.1",
		Port:           1,
		User:           "postgres",
		Password:       "password",
		DBName:         "testdb",
		SSLMode:        "disable",
		ConnectTimeout: time.Second,
	})
	assert.Error(t, err, "NewPostgresClient() should fail without a server")
	assert.Nil(t, client)
}

func TestPostgresClient_Ping(t *testing.T) {
	client, mock := setupMockPostgres(t)

	mock.ExpectPing()
	require.NoError(t, client.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("gone"))
	assert.Error(t, client.Ping(context.Background()))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresClient_Migrate(t *testing.T) {
	client, mock := setupMockPostgres(t)

	mock.ExpectQuery(hasTableQuery).
		WithArgs("sync_cursors", "BASE TABLE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`CREATE TABLE "sync_cursors"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	type SyncCursor struct {
		ID   uint   `gorm:"primaryKey"`
		Name string `gorm:"size:100"`
	}

	require.NoError(t, client.Migrate(&SyncCursor{}), "Migrate() should not fail")
	require.NoError(t, mock.ExpectationsWereMet(), "SQL expectations should be met")
}

func TestPostgresClient_Migrate_Error(t *testing.T) {
	client, mock := setupMockPostgres(t)

	mock.ExpectQuery(hasTableQuery).
		WithArgs("sync_cursors", "BASE TABLE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`CREATE TABLE "sync_cursors"`).
		WillReturnError(errors.New("permission denied"))

	type SyncCursor struct {
		ID uint `gorm:"primaryKey"`
	}

	err := client.Migrate(&SyncCursor{})
	require.Error(t, err, "Migrate() should fail with database error")
	assert.Contains(t, err.Error(), "failed to auto-migrate")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresClient_Migrate_EmptyModels(t *testing.T) {
	client, mock := setupMockPostgres(t)

	assert.NoError(t, client.Migrate(), "Migrate() should succeed with no models")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresClient_Transaction(t *testing.T) {
	client, mock := setupMockPostgres(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO sold_orders").WithArgs(int64(1001)).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := client.Transaction(ctx, func(tx *gorm.DB) error {
		return tx.Exec("INSERT INTO sold_orders (afterbuy_order_id) VALUES (?)", int64(1001)).Error
	})
	require.NoError(t, err, "Transaction should commit")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO sold_orders").WithArgs(int64(1002)).WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err = client.Transaction(ctx, func(tx *gorm.DB) error {
		return tx.Exec("INSERT INTO sold_orders (afterbuy_order_id) VALUES (?)", int64(1002)).Error
	})
	assert.ErrorIs(t, err, sql.ErrConnDone, "Transaction should roll back and return the cause")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresClient_GetDB(t *testing.T) {
	client, _ := setupMockPostgres(t)
	require.NotNil(t, client.GetDB(), "GetDB() should not return nil")
}

func TestPostgresClient_Close(t *testing.T) {
	client, mock := setupMockPostgres(t)

	mock.ExpectClose()
	require.NoError(t, client.Close(), "Close() should not fail")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresClient_Close_Error(t *testing.T) {
	client, mock := setupMockPostgres(t)

	mock.ExpectClose().WillReturnError(gorm.ErrInvalidDB)
	assert.Error(t, client.Close(), "Close() should fail with database error")
	require.NoError(t, mock.ExpectationsWereMet())
}
