package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductShapeAppliesDefaults(t *testing.T) {
	payload := map[string]interface{}{
		"slug":       "aurora-lamp",
		"title":      "Aurora Lamp",
		"priceCents": float64(4599),
	}

	cleaned, err := ProductShape.Apply(payload)
	require.NoError(t, err)

	assert.Equal(t, "USD", cleaned["currency"])
	assert.Equal(t, true, cleaned["inStock"])
	assert.Equal(t, int64(4599), cleaned["priceCents"])
	_, hasDescription := cleaned["description"]
	assert.False(t, hasDescription)
}

func TestProductShapeEnumeratesEveryViolation(t *testing.T) {
	payload := map[string]interface{}{
		"title":      42,
		"priceCents": float64(-1),
	}

	_, err := ProductShape.Apply(payload)
	require.Error(t, err)

	ve, ok := err.(*ValidationError)
	require.True(t, ok)

	fields := make(map[string]string, len(ve.Fields))
	for _, fe := range ve.Fields {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "is required", fields["slug"])
	assert.Equal(t, "must be a string", fields["title"])
	assert.Equal(t, "must be at least 0", fields["priceCents"])
	assert.Len(t, ve.Fields, 3)
}

func TestProductShapeRejectsFractionalCents(t *testing.T) {
	payload := map[string]interface{}{
		"slug":       "x",
		"title":      "X",
		"priceCents": 19.99,
	}

	_, err := ProductShape.Apply(payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "priceCents must be an integer")
}

func TestCustomerShapeDefaultsRoles(t *testing.T) {
	payload := map[string]interface{}{
		"email": "shopper@example.com",
	}

	var c Customer
	require.NoError(t, CustomerShape.Decode(payload, &c))
	assert.Equal(t, []string{"customer"}, c.Roles)
}

func TestCustomerShapeRejectsUnknownRole(t *testing.T) {
	payload := map[string]interface{}{
		"email": "shopper@example.com",
		"roles": []interface{}{"customer", "invalid-role"},
	}

	_, err := CustomerShape.Apply(payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "roles[1] must be one of")
}

func TestCustomerShapeRejectsEmptyRolesAndBadEmail(t *testing.T) {
	payload := map[string]interface{}{
		"email": "not-an-email",
		"roles": []interface{}{},
	}

	_, err := CustomerShape.Apply(payload)
	require.Error(t, err)

	ve := err.(*ValidationError)
	assert.Len(t, ve.Fields, 2)
	assert.Contains(t, err.Error(), "email must be a valid email address")
	assert.Contains(t, err.Error(), "roles must not be empty")
}

func TestOrderShapeValidatesNestedItems(t *testing.T) {
	payload := map[string]interface{}{
		"customerId": "customer_123",
		"items": []interface{}{
			map[string]interface{}{"productId": "p1", "quantity": float64(2), "priceCents": float64(1000)},
			map[string]interface{}{"quantity": float64(0)},
		},
	}

	_, err := OrderShape.Apply(payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "items[1].productId is required")
	assert.Contains(t, err.Error(), "items[1].quantity must be at least 1")
}

func TestOrderShapeDefaultsStatusAndRejectsUnknown(t *testing.T) {
	cleaned, err := OrderShape.Apply(map[string]interface{}{"customerId": "c1"})
	require.NoError(t, err)
	assert.Equal(t, "pending", cleaned["status"])

	_, err = OrderShape.Apply(map[string]interface{}{
		"customerId": "c1",
		"status":     "INVALID_STATUS",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status must be one of")
}

func TestDecodeOrderRoundTripsWireJSON(t *testing.T) {
	raw := `{
		"id": "order_1",
		"customerId": "customer_123",
		"status": "confirmed",
		"totalCents": 2500,
		"currency": "USD",
		"items": [
			{"productId": "p1", "quantity": 2, "priceCents": 1000},
			{"productId": "p2", "quantity": 1, "priceCents": 500}
		],
		"createdAt": "2026-08-01T10:00:00Z",
		"updatedAt": "2026-08-01T10:05:00Z"
	}`

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	order, err := DecodeOrder(payload)
	require.NoError(t, err)
	assert.Equal(t, "customer_123", order.CustomerID)
	assert.Equal(t, int64(2500), order.TotalCents)
	require.Len(t, order.Items, 2)
	assert.Equal(t, int64(1000), order.Items[0].PriceCents)
	assert.Equal(t, "2026-08-01T10:00:00Z", order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	payload := map[string]interface{}{
		"slug":       "s",
		"title":      "T",
		"priceCents": float64(100),
	}

	_, err := ProductShape.Apply(payload)
	require.NoError(t, err)

	_, hasCurrency := payload["currency"]
	assert.False(t, hasCurrency)
}

func TestApplyStripsUndeclaredFields(t *testing.T) {
	cleaned, err := CategoryShape.Apply(map[string]interface{}{
		"slug":    "books",
		"name":    "Books",
		"extra":   "ignored",
		"another": float64(1),
	})
	require.NoError(t, err)

	_, hasExtra := cleaned["extra"]
	assert.False(t, hasExtra)
	assert.Equal(t, "books", cleaned["slug"])
}
