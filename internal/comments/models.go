package comments

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reader comment on a blog post.
type Comment struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Comment string    `json:"comment" gorm:"type:text;not null;size:1000"`

	PostID uuid.UUID `json:"post_id" gorm:"type:uuid;not null;index"`
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// ToResponse converts a Comment to its outward-facing representation
func (c *Comment) ToResponse() CommentResponse {
	return CommentResponse{
		ID:        c.ID.String(),
		Comment:   c.Comment,
		PostID:    c.PostID.String(),
		UserID:    c.UserID.String(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// TableName specifies the table name for GORM
func (Comment) TableName() string {
	return "comments"
}
