package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightcart/storefront/pkg/schema"
)

func newTestClient(t *testing.T, handler http.Handler, retryLimit int) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{
		BaseURL:    srv.URL,
		Timeout:    2 * time.Second,
		RetryLimit: retryLimit,
		Token:      "test-token",
	})
	require.NoError(t, err)
	return client, srv
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestGetProductReturnsNilForUnknownSlug(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"message":"Product not found","code":"NOT_FOUND"}}`))
	}), 0)

	product, err := client.GetProduct(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestGetProductParsesEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":"p1","slug":"mug","title":"Mug","priceCents":1500,"currency":"USD","inStock":true,"createdAt":"2026-01-02T10:00:00Z","updatedAt":"2026-01-02T10:00:00Z"}}`))
	}), 0)

	product, err := client.GetProduct(context.Background(), "mug")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "mug", product.Slug)
	assert.Equal(t, int64(1500), product.PriceCents)
	assert.True(t, product.InStock)
}

func TestGetRetriesOnServerError(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"data":[]}`))
	}), 2)

	_, _, err := client.ListProducts(context.Background(), ListProductsOptions{})
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetStopsRetryingAtLimit(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}), 1)

	_, _, err := client.ListProducts(context.Background(), ListProductsOptions{})
	require.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestPostIsNeverRetried(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}), 3)

	_, err := client.CreateOrder(context.Background(), map[string]interface{}{
		"customerId": "c1",
		"items": []interface{}{
			map[string]interface{}{"productId": "p1", "quantity": int64(1)},
		},
	})
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCreateOrderValidatesBeforeSending(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}), 0)

	_, err := client.CreateOrder(context.Background(), map[string]interface{}{
		"status": "refunded",
	})
	require.Error(t, err)

	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "invalid payload must not reach the server")
}

func TestClientErrorCarriesEnvelopeMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":{"message":"product mug already exists","code":"CONFLICT"}}`))
	}), 0)

	_, err := client.CreateProduct(context.Background(), map[string]interface{}{
		"slug":       "mug",
		"title":      "Mug",
		"priceCents": int64(1500),
	})
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "CONFLICT", apiErr.Code)
	assert.Contains(t, apiErr.Message, "already exists")
}

func TestUpdateOrderStatusUsesPut(t *testing.T) {
	var method string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		w.Write([]byte(`{"data":{"id":"o1","customerId":"c1","status":"confirmed","totalCents":1500,"currency":"USD","items":[],"createdAt":"2026-01-02T10:00:00Z","updatedAt":"2026-01-02T11:00:00Z"}}`))
	}), 0)

	order, err := client.UpdateOrderStatus(context.Background(), "o1", "confirmed")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "confirmed", order.Status)
}
