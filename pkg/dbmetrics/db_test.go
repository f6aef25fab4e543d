package dbmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	DBExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

func TestOperationName(t *testing.T) {
	assert.Equal(t, "select", operationName("SELECT id FROM reservations"))
	assert.Equal(t, "insert", operationName("  INSERT INTO facilities (id) VALUES ($1)"))
	assert.Equal(t, "unknown", operationName(""))
}

func TestGetExecutor_PrefersTransactionFromContext(t *testing.T) {
	db := Wrap(nil, nil, "test")
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	tx := &fakeTx{}
	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))
}
