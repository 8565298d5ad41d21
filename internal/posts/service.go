package posts

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"inkwell/internal/categories"
	"inkwell/internal/notifications"
	"inkwell/internal/shared/constants"
	"inkwell/pkg/cache"
	"inkwell/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrForbidden    = errors.New("not allowed to modify this post")
	ErrBadCategory  = errors.New("unknown category")
)

// words per minute used for the read-time estimate
const readingSpeedWPM = 200

// featured list size served to clients
const featuredLimit = 10

type Service interface {
	// Dependency injection
	SetCategoryService(categoryService CategoryService)
	SetCacheService(cacheService cache.Service, postTTL, featuredTTL time.Duration)
	SetPublisher(publisher notifications.Publisher)

	CreatePost(ctx context.Context, authorID uuid.UUID, req CreatePostRequest) (*PostResponse, error)
	GetPostByID(ctx context.Context, id uuid.UUID) (*PostResponse, error)
	GetAllPosts(ctx context.Context, query PostListQuery) (*PaginatedPosts, error)
	GetFeaturedPosts(ctx context.Context) ([]PostResponse, error)
	UpdatePost(ctx context.Context, id, userID uuid.UUID, isAdmin bool, req UpdatePostRequest) (*PostResponse, error)
	DeletePost(ctx context.Context, id, userID uuid.UUID, isAdmin bool) error
	ArchivePost(ctx context.Context, id, userID uuid.UUID, isAdmin bool) (*PostResponse, error)
	LikePost(ctx context.Context, id uuid.UUID) (*PostResponse, error)
	DislikePost(ctx context.Context, id uuid.UUID) (*PostResponse, error)

	// PostExists is used by the comments service for its existence check.
	PostExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// CategoryService is the narrow slice of the categories package the posts
// service needs.
type CategoryService interface {
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*categories.CategoryResponse, error)
}

type service struct {
	repo            Repository
	categoryService CategoryService
	cacheService    cache.Service
	publisher       notifications.Publisher
	postTTL         time.Duration
	featuredTTL     time.Duration
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) SetCategoryService(categoryService CategoryService) {
	s.categoryService = categoryService
}

func (s *service) SetCacheService(cacheService cache.Service, postTTL, featuredTTL time.Duration) {
	s.cacheService = cacheService
	s.postTTL = postTTL
	s.featuredTTL = featuredTTL
}

func (s *service) SetPublisher(publisher notifications.Publisher) {
	s.publisher = publisher
}

func (s *service) CreatePost(ctx context.Context, authorID uuid.UUID, req CreatePostRequest) (*PostResponse, error) {
	categoryID, err := s.resolveCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	post := &Post{
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Content,
		Excerpt:     strings.TrimSpace(req.Excerpt),
		Tags:        normalizeTags(req.Tags),
		ReadTimeMin: estimateReadTime(req.Content),
		IsPublished: req.IsPublished,
		IsFeatured:  req.IsFeatured,
		CategoryID:  categoryID,
		AuthorID:    authorID,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	logger.GetDefault().LogPostCreated(ctx, post.ID.String(), authorID.String())
	if post.IsPublished {
		s.publishEvent(ctx, notifications.EventPostPublished, post)
	}
	s.invalidatePostCache(ctx)

	resp := post.ToResponse()
	return &resp, nil
}

func (s *service) GetPostByID(ctx context.Context, id uuid.UUID) (*PostResponse, error) {
	if s.cacheService != nil {
		var cached PostResponse
		key := constants.KEY_POST_DETAIL + id.String()
		err := s.cacheService.GetOrSet(ctx, key, s.postTTL, func() (interface{}, error) {
			post, err := s.repo.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			return post.ToResponse(), nil
		}, &cached)
		if err != nil {
			return nil, err
		}
		return &cached, nil
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := post.ToResponse()
	return &resp, nil
}

func (s *service) GetAllPosts(ctx context.Context, query PostListQuery) (*PaginatedPosts, error) {
	posts, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, err
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	responses := make([]PostResponse, len(posts))
	for i, post := range posts {
		responses[i] = post.ToResponse()
	}

	return &PaginatedPosts{
		Posts:      responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(query.Limit))),
	}, nil
}

func (s *service) GetFeaturedPosts(ctx context.Context) ([]PostResponse, error) {
	fetch := func() ([]PostResponse, error) {
		posts, err := s.repo.GetFeatured(ctx, featuredLimit)
		if err != nil {
			return nil, err
		}
		responses := make([]PostResponse, len(posts))
		for i, post := range posts {
			responses[i] = post.ToResponse()
		}
		return responses, nil
	}

	if s.cacheService != nil {
		var cached []PostResponse
		err := s.cacheService.GetOrSet(ctx, constants.KEY_POSTS_FEATURED, s.featuredTTL, func() (interface{}, error) {
			return fetch()
		}, &cached)
		if err != nil {
			return nil, err
		}
		return cached, nil
	}

	return fetch()
}

func (s *service) UpdatePost(ctx context.Context, id, userID uuid.UUID, isAdmin bool, req UpdatePostRequest) (*PostResponse, error) {
	post, err := s.authorize(ctx, id, userID, isAdmin)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		updates["content"] = *req.Content
		updates["read_time_min"] = estimateReadTime(*req.Content)
	}
	if req.Excerpt != nil {
		updates["excerpt"] = strings.TrimSpace(*req.Excerpt)
	}
	if req.Tags != nil {
		updates["tags"] = normalizeTags(req.Tags)
	}
	if req.CategoryID != nil {
		categoryID, err := s.resolveCategory(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		updates["category_id"] = categoryID
	}
	if req.IsPublished != nil {
		updates["is_published"] = *req.IsPublished
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}

	if len(updates) == 0 {
		resp := post.ToResponse()
		return &resp, nil
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	// Publishing for the first time is an announceable event.
	if !post.IsPublished && updated.IsPublished {
		s.publishEvent(ctx, notifications.EventPostPublished, updated)
	}
	s.invalidatePostCache(ctx)

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *service) DeletePost(ctx context.Context, id, userID uuid.UUID, isAdmin bool) error {
	if _, err := s.authorize(ctx, id, userID, isAdmin); err != nil {
		return err
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	logger.GetDefault().LogPostDeleted(ctx, id.String(), userID.String())
	s.invalidatePostCache(ctx)
	return nil
}

func (s *service) ArchivePost(ctx context.Context, id, userID uuid.UUID, isAdmin bool) (*PostResponse, error) {
	post, err := s.authorize(ctx, id, userID, isAdmin)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, map[string]interface{}{
		"is_archived": !post.IsArchived,
	})
	if err != nil {
		return nil, err
	}

	s.invalidatePostCache(ctx)

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *service) LikePost(ctx context.Context, id uuid.UUID) (*PostResponse, error) {
	return s.react(ctx, id, "likes")
}

func (s *service) DislikePost(ctx context.Context, id uuid.UUID) (*PostResponse, error) {
	return s.react(ctx, id, "dislikes")
}

func (s *service) PostExists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *service) react(ctx context.Context, id uuid.UUID, column string) (*PostResponse, error) {
	post, err := s.repo.AddReaction(ctx, id, column)
	if err != nil {
		return nil, err
	}

	s.invalidatePostCache(ctx)

	resp := post.ToResponse()
	return &resp, nil
}

// authorize loads the post and applies the ownership check. Existence comes
// first: a missing post is 404 for owner and stranger alike. Admins may act
// on any post.
func (s *service) authorize(ctx context.Context, id, userID uuid.UUID, isAdmin bool) (*Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != userID && !isAdmin {
		return nil, ErrForbidden
	}
	return post, nil
}

func (s *service) resolveCategory(ctx context.Context, raw string) (uuid.UUID, error) {
	categoryID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrBadCategory
	}

	if s.categoryService != nil {
		if _, err := s.categoryService.GetCategoryByID(ctx, categoryID); err != nil {
			if errors.Is(err, categories.ErrCategoryNotFound) {
				return uuid.Nil, ErrBadCategory
			}
			return uuid.Nil, err
		}
	}
	return categoryID, nil
}

func (s *service) publishEvent(ctx context.Context, eventType notifications.EventType, post *Post) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(ctx, notifications.NewEvent(eventType, post.ID.String(), map[string]string{
		"title":     post.Title,
		"author_id": post.AuthorID.String(),
	}))
}

func (s *service) invalidatePostCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_POSTS_ALL); err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "post cache invalidation failed", err, nil)
	}
}

func estimateReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := int(math.Ceil(float64(words) / float64(readingSpeedWPM)))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

func normalizeTags(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}
