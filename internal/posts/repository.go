package posts

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	GetAll(ctx context.Context, query PostListQuery) ([]Post, int64, error)
	GetFeatured(ctx context.Context, limit int) ([]Post, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Post, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	AddReaction(ctx context.Context, id uuid.UUID, column string) (*Post, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// live scopes every read to rows that are not soft-deleted.
func (r *repository) live(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&Post{}).Where("is_deleted = ?", false)
}

func (r *repository) Create(ctx context.Context, post *Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	var post Post
	err := r.live(ctx).Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *repository) GetAll(ctx context.Context, query PostListQuery) ([]Post, int64, error) {
	var posts []Post
	var totalCount int64

	db := r.live(ctx)

	// Apply filters
	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(excerpt) LIKE ? OR LOWER(content) LIKE ?",
			searchTerm, searchTerm, searchTerm)
	}

	if query.Category != "" {
		db = db.Where("category_id = ?", query.Category)
	}

	if query.Author != "" {
		db = db.Where("author_id = ?", query.Author)
	}

	if query.Tag != "" {
		// Tags are stored as a JSON array; jsonb containment matches one tag.
		db = db.Where("tags @> ?", `["`+strings.TrimSpace(query.Tag)+`"]`)
	}

	if query.PublishedOnly {
		db = db.Where("is_published = ? AND is_archived = ?", true, false)
	}

	// Count total records
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	// Apply pagination
	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	offset := (query.Page - 1) * query.Limit

	err := db.Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&posts).Error

	return posts, totalCount, err
}

func (r *repository) GetFeatured(ctx context.Context, limit int) ([]Post, error) {
	var posts []Post
	err := r.live(ctx).
		Where("is_featured = ? AND is_published = ? AND is_archived = ?", true, true, false).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Post, error) {
	result := r.live(ctx).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrPostNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.live(ctx).Where("id = ?", id).Update("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// AddReaction atomically increments the likes or dislikes column.
func (r *repository) AddReaction(ctx context.Context, id uuid.UUID, column string) (*Post, error) {
	if column != "likes" && column != "dislikes" {
		return nil, errors.New("invalid reaction column")
	}

	result := r.live(ctx).Where("id = ?", id).
		Update(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrPostNotFound
	}

	return r.GetByID(ctx, id)
}
