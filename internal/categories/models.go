package categories

import (
	"time"

	"github.com/google/uuid"
)

// Category is a blog category. Name is unique case-insensitively; the
// functional index in the constraints migration enforces it.
type Category struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string     `json:"name" gorm:"not null;size:100"`
	CreatedBy uuid.UUID  `json:"created_by" gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID `json:"updated_by" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		CreatedBy: c.CreatedBy.String(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// TableName specifies the table name for GORM
func (Category) TableName() string {
	return "categories"
}
