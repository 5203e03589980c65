package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightcart/storefront/internal/apperrors"
	"github.com/brightcart/storefront/internal/models"
)

// These cases are rejected before any storage access, so the service runs
// without a database.

func TestCreateOrderRequiresCustomer(t *testing.T) {
	s := NewOrderService(nil, nil)

	_, err := s.Create(&CreateOrderRequest{
		Items: []OrderLineInput{{ProductID: uuid.New(), Quantity: 1}},
	})
	require.Error(t, err)

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "customerId", verr.Fields[0].Field)
}

func TestCreateOrderRejectsUnknownStatus(t *testing.T) {
	s := NewOrderService(nil, nil)

	_, err := s.Create(&CreateOrderRequest{
		CustomerID: uuid.New(),
		Status:     "refunded",
		Items:      []OrderLineInput{{ProductID: uuid.New(), Quantity: 1}},
	})
	require.Error(t, err)

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "status")
}

func TestCreateOrderRequiresItemsOrCart(t *testing.T) {
	s := NewOrderService(nil, nil)

	_, err := s.Create(&CreateOrderRequest{CustomerID: uuid.New()})
	require.Error(t, err)

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "items")
}

func TestCreateOrderRejectsNonPositiveQuantity(t *testing.T) {
	s := NewOrderService(nil, nil)

	_, err := s.Create(&CreateOrderRequest{
		CustomerID: uuid.New(),
		Items:      []OrderLineInput{{ProductID: uuid.New(), Quantity: 0}},
	})
	require.Error(t, err)

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestUpdateStatusRejectsUnknownLiteral(t *testing.T) {
	s := NewOrderService(nil, nil)

	_, err := s.UpdateStatus(uuid.New(), "returned")
	require.Error(t, err)

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	s := NewCartService(nil)

	_, err := s.AddItem(uuid.New(), uuid.New(), 0)
	require.Error(t, err)

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "quantity")
}

func TestSuppliedTotalMustMatchComputed(t *testing.T) {
	lines := []models.OrderLine{
		{PriceCents: 1000, Quantity: 2},
		{PriceCents: 500, Quantity: 1},
	}
	computed := (&models.Order{Items: lines}).CalculateTotal()
	require.Equal(t, int64(2500), computed)

	mismatch := int64(9999)
	err := verifySuppliedTotal(computed, &mismatch)
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)

	exact := int64(2500)
	assert.NoError(t, verifySuppliedTotal(computed, &exact))
	assert.NoError(t, verifySuppliedTotal(computed, nil))
}

// The status write must be conditional on the status the transition was
// computed from, so two racing updates cannot both win.
func TestTransitionUpdateGuardsOnCurrentStatus(t *testing.T) {
	s := NewOrderService(dryRunDB(t), nil)

	order := &models.Order{Status: models.OrderStatusConfirmed}
	order.ID = uuid.New()
	require.True(t, order.ApplyStatus(models.OrderStatusShipped))

	tx := s.transitionUpdate(order, models.OrderStatusConfirmed)

	assert.Contains(t, tx.Statement.SQL.String(), "id = ? AND status = ?")
	assert.Contains(t, tx.Statement.Vars, models.OrderStatusConfirmed)
	assert.Contains(t, tx.Statement.Vars, models.OrderStatusShipped)
}

func TestCustomerOrdersListedNewestFirst(t *testing.T) {
	s := NewOrderService(dryRunDB(t), nil)

	var orders []models.Order
	tx := s.customerOrdersQuery(uuid.New()).Find(&orders)

	sql := tx.Statement.SQL.String()
	assert.Contains(t, sql, "customer_id = ?")
	assert.Contains(t, sql, "ORDER BY created_at DESC")
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "25.00 USD", formatCents(2500, "USD"))
	assert.Equal(t, "0.05 USD", formatCents(5, "USD"))
	assert.Equal(t, "12.34 EUR", formatCents(1234, "EUR"))
}
