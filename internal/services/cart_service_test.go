package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/brightcart/storefront/internal/models"
)

// Re-adding a product must replace the stored quantity, not accumulate it, so
// the write has to be an upsert keyed on (cart_id, product_id).
func TestUpsertItemReplacesQuantityOnConflict(t *testing.T) {
	s := NewCartService(dryRunDB(t))

	item := &models.CartItem{
		CartID:    uuid.New(),
		ProductID: uuid.New(),
		Quantity:  5,
	}
	tx := s.upsertItem(item)

	sql := tx.Statement.SQL.String()
	assert.Contains(t, sql, "ON CONFLICT")
	assert.Contains(t, sql, "DO UPDATE")
	assert.Contains(t, sql, "cart_id")
	assert.Contains(t, sql, "product_id")
	assert.Contains(t, tx.Statement.Vars, int64(5))
}
