package posts

import (
	"time"

	"github.com/google/uuid"
)

// Post is a blog post. IsDeleted is a soft-delete marker: flagged rows stay
// in storage but are excluded from every normal read.
type Post struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string    `json:"title" gorm:"not null;size:100"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	Excerpt     string    `json:"excerpt" gorm:"size:300"`
	Tags        []string  `json:"tags" gorm:"serializer:json;type:jsonb"`
	ReadTimeMin int       `json:"read_time_min" gorm:"default:1"`
	IsPublished bool      `json:"is_published" gorm:"default:false;index"`
	IsFeatured  bool      `json:"is_featured" gorm:"default:false"`
	IsArchived  bool      `json:"is_archived" gorm:"default:false"`
	IsDeleted   bool      `json:"-" gorm:"default:false;index"`
	Likes       int       `json:"likes" gorm:"default:0;check:likes >= 0"`
	Dislikes    int       `json:"dislikes" gorm:"default:0;check:dislikes >= 0"`

	CategoryID uuid.UUID `json:"category_id" gorm:"type:uuid;not null;index"`
	AuthorID   uuid.UUID `json:"author_id" gorm:"type:uuid;not null;index"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// ToResponse converts a Post to its outward-facing representation
func (p *Post) ToResponse() PostResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	return PostResponse{
		ID:          p.ID.String(),
		Title:       p.Title,
		Content:     p.Content,
		Excerpt:     p.Excerpt,
		Tags:        tags,
		ReadTimeMin: p.ReadTimeMin,
		IsPublished: p.IsPublished,
		IsFeatured:  p.IsFeatured,
		IsArchived:  p.IsArchived,
		Likes:       p.Likes,
		Dislikes:    p.Dislikes,
		CategoryID:  p.CategoryID.String(),
		AuthorID:    p.AuthorID.String(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// TableName specifies the table name for GORM
func (Post) TableName() string {
	return "posts"
}
