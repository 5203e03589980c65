// internal/handlers/handlers.go
package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/brightcart/storefront/internal/utils"
	"github.com/brightcart/storefront/pkg/schema"
)

// bindShape validates the raw request body against the entity's declared wire
// shape before binding it into the typed request, so the same shape tables
// that parse responses on the client side also guard inbound payloads.
// Reports false after writing the error response.
func bindShape(c *gin.Context, shape *schema.Shape, dst interface{}) bool {
	payload, ok := bindPayload(c)
	if !ok {
		return false
	}
	cleaned, err := shape.Apply(payload)
	if err != nil {
		utils.FromError(c, err)
		return false
	}
	return bindCleaned(c, cleaned, dst)
}

// bindShapePartial is bindShape for update endpoints: absent fields are left
// alone instead of being required or defaulted.
func bindShapePartial(c *gin.Context, shape *schema.Shape, dst interface{}) bool {
	payload, ok := bindPayload(c)
	if !ok {
		return false
	}
	cleaned, err := shape.ApplyPartial(payload)
	if err != nil {
		utils.FromError(c, err)
		return false
	}
	return bindCleaned(c, cleaned, dst)
}

func bindPayload(c *gin.Context) (map[string]interface{}, bool) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return nil, false
	}
	return payload, true
}

func bindCleaned(c *gin.Context, cleaned map[string]interface{}, dst interface{}) bool {
	raw, err := json.Marshal(cleaned)
	if err == nil {
		err = json.Unmarshal(raw, dst)
	}
	if err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return false
	}
	return true
}
