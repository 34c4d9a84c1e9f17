package dbctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestContextPrefersTransaction(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	ctx := context.Background()

	plain := New(ctx)
	assert.Nil(t, plain.Tx)
	assert.Equal(t, ctx, plain.DB(db).Statement.Context)

	tx := db.Session(&gorm.Session{NewDB: true})
	withTx := plain.WithTx(tx)
	assert.Same(t, tx, withTx.Tx)
	assert.Equal(t, ctx, withTx.Ctx)
	assert.Nil(t, plain.Tx, "WithTx must not mutate the receiver")

	assert.Same(t, db, Context{}.DB(db))
}
