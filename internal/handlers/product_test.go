package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func postJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// Creation bodies are checked against the product wire shape before anything
// else runs, and every violation is reported at once.
func TestCreateProductReportsEveryShapeViolation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewProductHandler(nil, nil)
	r := gin.New()
	r.POST("/products", h.CreateProduct)

	w := postJSON(r, http.MethodPost, "/products", `{"priceCents": 19.99, "inStock": "yes"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	for _, field := range []string{"slug", "title", "priceCents", "inStock"} {
		assert.Contains(t, w.Body.String(), field)
	}
}

// Updates are partial: only the fields actually present are validated.
func TestUpdateProductChecksPresentFieldsOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewProductHandler(nil, nil)
	r := gin.New()
	r.PUT("/products/:id", h.UpdateProduct)

	w := postJSON(r, http.MethodPut, "/products/"+uuid.NewString(), `{"priceCents": -5}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "priceCents")
	assert.NotContains(t, w.Body.String(), "slug")
	assert.NotContains(t, w.Body.String(), "title")
}
