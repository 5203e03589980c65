// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// BaseModel carries the fields every persisted entity shares. JSON tags are
// camelCase because serialized models are the wire contract consumed by
// pkg/apiclient; they must round-trip losslessly through pkg/schema.
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
