package repository

import (
	"context"
	"testing"

	"github.com/sanadops/sanad-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSequenceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entity.SequenceCounter{}))
	return db
}

func TestSequenceNextIsMonotonic(t *testing.T) {
	repo := NewSequenceRepository(newSequenceTestDB(t))
	ctx := context.Background()

	for want := int64(1); want <= 5; want++ {
		got, err := repo.Next(ctx, "ticket:ORG1:BR1:2026")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSequenceScopesAreIndependent(t *testing.T) {
	repo := NewSequenceRepository(newSequenceTestDB(t))
	ctx := context.Background()

	first, err := repo.Next(ctx, "ticket:ORG1:BR1:2026")
	require.NoError(t, err)
	second, err := repo.Next(ctx, "ticket:ORG1:BR2:2026")
	require.NoError(t, err)
	third, err := repo.Next(ctx, "invoice:ORG1:2026")
	require.NoError(t, err)

	assert.EqualValues(t, 1, first)
	assert.EqualValues(t, 1, second)
	assert.EqualValues(t, 1, third)

	next, err := repo.Next(ctx, "ticket:ORG1:BR1:2026")
	require.NoError(t, err)
	assert.EqualValues(t, 2, next)
}

func TestSequenceNextJoinsEnclosingTransaction(t *testing.T) {
	db := newSequenceTestDB(t)
	repo := NewSequenceRepository(db)
	tx := NewTxManager(db)
	ctx := context.Background()

	err := tx.Transaction(ctx, func(ctx context.Context) error {
		n, err := repo.Next(ctx, "invoice:ORG1:2026")
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
		return nil
	})
	require.NoError(t, err)

	n, err := repo.Next(ctx, "invoice:ORG1:2026")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}
