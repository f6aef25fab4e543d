// Package storagetest поднимает in-memory SQLite со схемой сервиса для тестов репозиториев и сервисов
package storagetest

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfService/internal/infra/storage/schema"
	"github.com/m04kA/SMC-TurfService/pkg/dbmetrics"
)

var dbCounter atomic.Int64

// NewDB открывает отдельную in-memory базу и применяет схему.
// База закрывается по завершении теста
func NewDB(t testing.TB) *dbmetrics.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:turf_test_%d?mode=memory&cache=shared&_busy_timeout=5000", dbCounter.Add(1))
	sqlDB, err := sql.Open("sqlite3", dsn)
	require.NoError(t, err)

	// одно соединение: все горутины теста видят одну и ту же базу и сериализуются на ней
	sqlDB.SetMaxOpenConns(1)

	db := dbmetrics.Wrap(sqlDB, nil, "turf-test")
	require.NoError(t, schema.Apply(context.Background(), db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}
