package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTotal(t *testing.T) {
	order := &Order{
		Items: []OrderLine{
			{Quantity: 2, PriceCents: 1000},
			{Quantity: 1, PriceCents: 500},
		},
	}

	assert.Equal(t, int64(2500), order.CalculateTotal())
}

func TestCalculateTotalEmptyOrder(t *testing.T) {
	order := &Order{}
	assert.Equal(t, int64(0), order.CalculateTotal())
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusConfirmed, OrderStatusShipped, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusDelivered, false},
		{OrderStatusConfirmed, OrderStatusPending, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusShipped, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
	}

	for _, tc := range cases {
		order := &Order{Status: tc.from}
		assert.Equalf(t, tc.allowed, order.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestApplyStatusUpdatesTimestamp(t *testing.T) {
	order := &Order{Status: OrderStatusPending}
	order.UpdatedAt = time.Now().Add(-time.Hour)
	before := order.UpdatedAt

	require.True(t, order.ApplyStatus(OrderStatusConfirmed))
	assert.Equal(t, OrderStatusConfirmed, order.Status)
	assert.True(t, order.UpdatedAt.After(before))
}

func TestApplyStatusLeavesOrderUnchangedOnInvalidEdge(t *testing.T) {
	order := &Order{Status: OrderStatusDelivered}
	order.UpdatedAt = time.Now().Add(-time.Hour)
	before := order.UpdatedAt

	require.False(t, order.ApplyStatus(OrderStatusPending))
	assert.Equal(t, OrderStatusDelivered, order.Status)
	assert.Equal(t, before, order.UpdatedAt)
}

func TestParseOrderStatus(t *testing.T) {
	status, ok := ParseOrderStatus("confirmed")
	require.True(t, ok)
	assert.Equal(t, OrderStatusConfirmed, status)

	_, ok = ParseOrderStatus("INVALID_STATUS")
	assert.False(t, ok)

	_, ok = ParseOrderStatus("")
	assert.False(t, ok)
}
