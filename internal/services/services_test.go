package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormtests "gorm.io/gorm/utils/tests"
)

// dryRunDB builds SQL without executing it, so tests can assert on the exact
// statements a service issues.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormtests.DummyDialector{}, &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db
}

func TestDuplicateKeyDetection(t *testing.T) {
	assert.True(t, isDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateKey(fmt.Errorf("create product: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, isDuplicateKey(&pq.Error{Code: "23505"}))

	assert.False(t, isDuplicateKey(gorm.ErrRecordNotFound))
	assert.False(t, isDuplicateKey(&pq.Error{Code: "23503"}))
	assert.False(t, isDuplicateKey(errors.New("connection reset")))
}
