// internal/handlers/webhook.go
package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/brightcart/storefront/internal/services"
	"github.com/brightcart/storefront/internal/utils"
)

// WebhookHandler ingests account events pushed by the identity provider.
// Payloads are authenticated with an HMAC-SHA256 signature over the raw body.
type WebhookHandler struct {
	customerService *services.CustomerService
	secret          []byte
}

func NewWebhookHandler(customerService *services.CustomerService, secret string) *WebhookHandler {
	return &WebhookHandler{
		customerService: customerService,
		secret:          []byte(secret),
	}
}

type identityEvent struct {
	Type string `json:"type"`
	Data struct {
		ExternalIdentityID string   `json:"externalIdentityId"`
		Email              string   `json:"email"`
		FirstName          string   `json:"firstName"`
		LastName           string   `json:"lastName"`
		Roles              []string `json:"roles"`
	} `json:"data"`
}

// POST /webhooks/identity
func (h *WebhookHandler) HandleIdentityEvent(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.BadRequestResponse(c, "Unable to read request body", nil)
		return
	}

	signature := c.GetHeader("X-Identity-Signature")
	if !h.verifySignature(body, signature) {
		utils.UnauthorizedResponse(c, "Invalid webhook signature")
		return
	}

	var event identityEvent
	if err := json.Unmarshal(body, &event); err != nil {
		utils.BadRequestResponse(c, "Invalid event payload", err.Error())
		return
	}

	switch event.Type {
	case "identity.created", "identity.updated":
		if event.Data.ExternalIdentityID == "" || event.Data.Email == "" {
			utils.BadRequestResponse(c, "Event is missing identity fields", nil)
			return
		}
		customer, err := h.customerService.UpsertFromIdentity(
			event.Data.ExternalIdentityID,
			event.Data.Email,
			event.Data.FirstName,
			event.Data.LastName,
			event.Data.Roles,
		)
		if err != nil {
			utils.FromError(c, err)
			return
		}
		utils.SuccessResponse(c, customer)
	default:
		// Unknown event types are acknowledged so the provider stops retrying.
		utils.SuccessResponse(c, gin.H{"received": true})
	}
}

func (h *WebhookHandler) verifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, h.secret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
