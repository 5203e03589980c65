// internal/models/category.go
package models

// Category is reference data for grouping products. Slug is the stable
// human-readable key.
type Category struct {
	BaseModel
	Slug        string `json:"slug" gorm:"uniqueIndex;size:100;not null"`
	Name        string `json:"name" gorm:"size:255;not null"`
	Description string `json:"description,omitempty" gorm:"type:text"`
}
