package handlers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const webhookSecret = "test-webhook-secret"

func signBody(body []byte) string {
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func webhookRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewWebhookHandler(nil, webhookSecret)

	r := gin.New()
	r.POST("/webhooks/identity", h.HandleIdentityEvent)
	return r
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
	r := webhookRouter()

	body := []byte(`{"type":"identity.created"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/webhooks/identity", bytes.NewReader(body))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhookRejectsTamperedBody(t *testing.T) {
	r := webhookRouter()

	signed := []byte(`{"type":"identity.created"}`)
	tampered := []byte(`{"type":"identity.deleted"}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/webhooks/identity", bytes.NewReader(tampered))
	req.Header.Set("X-Identity-Signature", signBody(signed))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhookAcknowledgesUnknownEventType(t *testing.T) {
	r := webhookRouter()

	body := []byte(`{"type":"identity.heartbeat"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/webhooks/identity", bytes.NewReader(body))
	req.Header.Set("X-Identity-Signature", signBody(body))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "received")
}

func TestWebhookRejectsEventMissingIdentityFields(t *testing.T) {
	r := webhookRouter()

	body := []byte(`{"type":"identity.created","data":{"email":""}}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/webhooks/identity", bytes.NewReader(body))
	req.Header.Set("X-Identity-Signature", signBody(body))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
