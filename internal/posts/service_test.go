package posts_test

import (
	"context"
	"sort"
	"strings"
	"testing"

	"inkwell/internal/categories"
	"inkwell/internal/notifications"
	"inkwell/internal/posts"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	posts map[uuid.UUID]*posts.Post
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{posts: make(map[uuid.UUID]*posts.Post)}
}

func (f *fakeRepository) Create(ctx context.Context, post *posts.Post) error {
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	clone := *post
	f.posts[post.ID] = &clone
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*posts.Post, error) {
	post, exists := f.posts[id]
	if !exists || post.IsDeleted {
		return nil, posts.ErrPostNotFound
	}
	clone := *post
	return &clone, nil
}

func (f *fakeRepository) GetAll(ctx context.Context, query posts.PostListQuery) ([]posts.Post, int64, error) {
	var matched []posts.Post
	for _, post := range f.posts {
		if post.IsDeleted {
			continue
		}
		if query.PublishedOnly && (!post.IsPublished || post.IsArchived) {
			continue
		}
		if query.Author != "" && post.AuthorID.String() != query.Author {
			continue
		}
		if query.Search != "" && !strings.Contains(strings.ToLower(post.Title), strings.ToLower(query.Search)) {
			continue
		}
		matched = append(matched, *post)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))

	page := query.Page
	if page == 0 {
		page = 1
	}
	limit := query.Limit
	if limit == 0 {
		limit = 10
	}
	start := (page - 1) * limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeRepository) GetFeatured(ctx context.Context, limit int) ([]posts.Post, error) {
	var featured []posts.Post
	for _, post := range f.posts {
		if post.IsDeleted || !post.IsFeatured || !post.IsPublished || post.IsArchived {
			continue
		}
		featured = append(featured, *post)
	}
	if len(featured) > limit {
		featured = featured[:limit]
	}
	return featured, nil
}

func (f *fakeRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*posts.Post, error) {
	post, exists := f.posts[id]
	if !exists || post.IsDeleted {
		return nil, posts.ErrPostNotFound
	}
	for column, value := range updates {
		switch column {
		case "title":
			post.Title = value.(string)
		case "content":
			post.Content = value.(string)
		case "excerpt":
			post.Excerpt = value.(string)
		case "tags":
			post.Tags = value.([]string)
		case "read_time_min":
			post.ReadTimeMin = value.(int)
		case "category_id":
			post.CategoryID = value.(uuid.UUID)
		case "is_published":
			post.IsPublished = value.(bool)
		case "is_featured":
			post.IsFeatured = value.(bool)
		case "is_archived":
			post.IsArchived = value.(bool)
		}
	}
	clone := *post
	return &clone, nil
}

func (f *fakeRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	post, exists := f.posts[id]
	if !exists || post.IsDeleted {
		return posts.ErrPostNotFound
	}
	post.IsDeleted = true
	return nil
}

func (f *fakeRepository) AddReaction(ctx context.Context, id uuid.UUID, column string) (*posts.Post, error) {
	post, exists := f.posts[id]
	if !exists || post.IsDeleted {
		return nil, posts.ErrPostNotFound
	}
	switch column {
	case "likes":
		post.Likes++
	case "dislikes":
		post.Dislikes++
	}
	clone := *post
	return &clone, nil
}

// fakeCategoryService accepts a fixed set of category IDs.
type fakeCategoryService struct {
	known map[uuid.UUID]bool
}

func (f *fakeCategoryService) GetCategoryByID(ctx context.Context, id uuid.UUID) (*categories.CategoryResponse, error) {
	if !f.known[id] {
		return nil, categories.ErrCategoryNotFound
	}
	return &categories.CategoryResponse{ID: id.String()}, nil
}

// fakePublisher records published events.
type fakePublisher struct {
	events []*notifications.ActivityEvent
}

func (f *fakePublisher) Publish(ctx context.Context, event *notifications.ActivityEvent) {
	f.events = append(f.events, event)
}

func (f *fakePublisher) Close() error { return nil }

type fixture struct {
	repo      *fakeRepository
	svc       posts.Service
	publisher *fakePublisher
	category  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := newFakeRepository()
	svc := posts.NewService(repo)

	categoryID := uuid.New()
	svc.SetCategoryService(&fakeCategoryService{known: map[uuid.UUID]bool{categoryID: true}})

	publisher := &fakePublisher{}
	svc.SetPublisher(publisher)

	return &fixture{repo: repo, svc: svc, publisher: publisher, category: categoryID}
}

func (fx *fixture) createPost(t *testing.T, authorID uuid.UUID, published bool) *posts.PostResponse {
	t.Helper()
	post, err := fx.svc.CreatePost(context.Background(), authorID, posts.CreatePostRequest{
		Title:       "A reasonably long title",
		Content:     "Some words about something interesting.",
		CategoryID:  fx.category.String(),
		IsPublished: published,
	})
	require.NoError(t, err)
	return post
}

func TestCreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a post and announces publication", func(t *testing.T) {
		fx := newFixture(t)
		authorID := uuid.New()

		post, err := fx.svc.CreatePost(ctx, authorID, posts.CreatePostRequest{
			Title:       "Ten chars or more here",
			Content:     strings.Repeat("word ", 450),
			Excerpt:     "  short summary  ",
			Tags:        []string{"Go", "go", " testing ", ""},
			CategoryID:  fx.category.String(),
			IsPublished: true,
		})

		require.NoError(t, err)
		assert.Equal(t, authorID.String(), post.AuthorID)
		assert.Equal(t, "short summary", post.Excerpt)
		// 450 words at 200 wpm rounds up to 3 minutes.
		assert.Equal(t, 3, post.ReadTimeMin)
		// Tags are lowercased, trimmed and deduplicated.
		assert.Equal(t, []string{"go", "testing"}, post.Tags)

		require.Len(t, fx.publisher.events, 1)
		assert.Equal(t, notifications.EventPostPublished, fx.publisher.events[0].Type)
	})

	t.Run("draft creation publishes no event", func(t *testing.T) {
		fx := newFixture(t)
		fx.createPost(t, uuid.New(), false)

		assert.Empty(t, fx.publisher.events)
	})

	t.Run("short content still reads one minute", func(t *testing.T) {
		fx := newFixture(t)
		post := fx.createPost(t, uuid.New(), false)

		assert.Equal(t, 1, post.ReadTimeMin)
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		fx := newFixture(t)

		_, err := fx.svc.CreatePost(ctx, uuid.New(), posts.CreatePostRequest{
			Title:      "Ten chars or more here",
			Content:    "body",
			CategoryID: uuid.New().String(),
		})

		assert.ErrorIs(t, err, posts.ErrBadCategory)
	})
}

func TestGetPostByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the post", func(t *testing.T) {
		fx := newFixture(t)
		created := fx.createPost(t, uuid.New(), true)

		got, err := fx.svc.GetPostByID(ctx, uuid.MustParse(created.ID))

		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("missing post", func(t *testing.T) {
		fx := newFixture(t)

		_, err := fx.svc.GetPostByID(ctx, uuid.New())

		assert.ErrorIs(t, err, posts.ErrPostNotFound)
	})
}

func TestUpdatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("owner can update", func(t *testing.T) {
		fx := newFixture(t)
		authorID := uuid.New()
		created := fx.createPost(t, authorID, false)

		newTitle := "A different long title"
		updated, err := fx.svc.UpdatePost(ctx, uuid.MustParse(created.ID), authorID, false, posts.UpdatePostRequest{
			Title: &newTitle,
		})

		require.NoError(t, err)
		assert.Equal(t, newTitle, updated.Title)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		fx := newFixture(t)
		created := fx.createPost(t, uuid.New(), false)

		newTitle := "A different long title"
		_, err := fx.svc.UpdatePost(ctx, uuid.MustParse(created.ID), uuid.New(), false, posts.UpdatePostRequest{
			Title: &newTitle,
		})

		assert.ErrorIs(t, err, posts.ErrForbidden)
	})

	t.Run("admin can update any post", func(t *testing.T) {
		fx := newFixture(t)
		created := fx.createPost(t, uuid.New(), false)

		newTitle := "Admin edited this title"
		updated, err := fx.svc.UpdatePost(ctx, uuid.MustParse(created.ID), uuid.New(), true, posts.UpdatePostRequest{
			Title: &newTitle,
		})

		require.NoError(t, err)
		assert.Equal(t, newTitle, updated.Title)
	})

	t.Run("missing post reports not found even for strangers", func(t *testing.T) {
		fx := newFixture(t)

		newTitle := "A different long title"
		_, err := fx.svc.UpdatePost(ctx, uuid.New(), uuid.New(), false, posts.UpdatePostRequest{
			Title: &newTitle,
		})

		assert.ErrorIs(t, err, posts.ErrPostNotFound)
	})

	t.Run("publishing a draft announces it", func(t *testing.T) {
		fx := newFixture(t)
		authorID := uuid.New()
		created := fx.createPost(t, authorID, false)
		require.Empty(t, fx.publisher.events)

		published := true
		_, err := fx.svc.UpdatePost(ctx, uuid.MustParse(created.ID), authorID, false, posts.UpdatePostRequest{
			IsPublished: &published,
		})

		require.NoError(t, err)
		require.Len(t, fx.publisher.events, 1)
		assert.Equal(t, notifications.EventPostPublished, fx.publisher.events[0].Type)
	})

	t.Run("content update recomputes read time", func(t *testing.T) {
		fx := newFixture(t)
		authorID := uuid.New()
		created := fx.createPost(t, authorID, false)

		longContent := strings.Repeat("word ", 650)
		updated, err := fx.svc.UpdatePost(ctx, uuid.MustParse(created.ID), authorID, false, posts.UpdatePostRequest{
			Content: &longContent,
		})

		require.NoError(t, err)
		assert.Equal(t, 4, updated.ReadTimeMin)
	})
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()

	t.Run("soft delete hides the post from reads", func(t *testing.T) {
		fx := newFixture(t)
		authorID := uuid.New()
		created := fx.createPost(t, authorID, true)
		id := uuid.MustParse(created.ID)

		require.NoError(t, fx.svc.DeletePost(ctx, id, authorID, false))

		_, err := fx.svc.GetPostByID(ctx, id)
		assert.ErrorIs(t, err, posts.ErrPostNotFound)

		// The row itself survives, only flagged.
		raw := fx.repo.posts[id]
		require.NotNil(t, raw)
		assert.True(t, raw.IsDeleted)
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		fx := newFixture(t)
		created := fx.createPost(t, uuid.New(), true)

		err := fx.svc.DeletePost(ctx, uuid.MustParse(created.ID), uuid.New(), false)

		assert.ErrorIs(t, err, posts.ErrForbidden)
	})

	t.Run("admin can delete any post", func(t *testing.T) {
		fx := newFixture(t)
		created := fx.createPost(t, uuid.New(), true)

		err := fx.svc.DeletePost(ctx, uuid.MustParse(created.ID), uuid.New(), true)

		assert.NoError(t, err)
	})

	t.Run("deleting twice reports not found", func(t *testing.T) {
		fx := newFixture(t)
		authorID := uuid.New()
		created := fx.createPost(t, authorID, true)
		id := uuid.MustParse(created.ID)

		require.NoError(t, fx.svc.DeletePost(ctx, id, authorID, false))
		err := fx.svc.DeletePost(ctx, id, authorID, false)

		assert.ErrorIs(t, err, posts.ErrPostNotFound)
	})
}

func TestArchivePost(t *testing.T) {
	ctx := context.Background()

	t.Run("toggles archive state", func(t *testing.T) {
		fx := newFixture(t)
		authorID := uuid.New()
		created := fx.createPost(t, authorID, true)
		id := uuid.MustParse(created.ID)

		archived, err := fx.svc.ArchivePost(ctx, id, authorID, false)
		require.NoError(t, err)
		assert.True(t, archived.IsArchived)

		restored, err := fx.svc.ArchivePost(ctx, id, authorID, false)
		require.NoError(t, err)
		assert.False(t, restored.IsArchived)
	})
}

func TestReactions(t *testing.T) {
	ctx := context.Background()

	t.Run("likes and dislikes accumulate", func(t *testing.T) {
		fx := newFixture(t)
		created := fx.createPost(t, uuid.New(), true)
		id := uuid.MustParse(created.ID)

		_, err := fx.svc.LikePost(ctx, id)
		require.NoError(t, err)
		post, err := fx.svc.LikePost(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 2, post.Likes)

		post, err = fx.svc.DislikePost(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 1, post.Dislikes)
		assert.Equal(t, 2, post.Likes)
	})

	t.Run("reacting to a missing post", func(t *testing.T) {
		fx := newFixture(t)

		_, err := fx.svc.LikePost(ctx, uuid.New())

		assert.ErrorIs(t, err, posts.ErrPostNotFound)
	})
}

func TestGetAllPosts(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous listing excludes drafts", func(t *testing.T) {
		fx := newFixture(t)
		fx.createPost(t, uuid.New(), true)
		fx.createPost(t, uuid.New(), false)

		page, err := fx.svc.GetAllPosts(ctx, posts.PostListQuery{PublishedOnly: true})

		require.NoError(t, err)
		assert.Equal(t, int64(1), page.TotalCount)
		require.Len(t, page.Posts, 1)
		assert.True(t, page.Posts[0].IsPublished)
	})

	t.Run("pagination metadata", func(t *testing.T) {
		fx := newFixture(t)
		for i := 0; i < 5; i++ {
			fx.createPost(t, uuid.New(), true)
		}

		page, err := fx.svc.GetAllPosts(ctx, posts.PostListQuery{Page: 1, Limit: 2})

		require.NoError(t, err)
		assert.Equal(t, int64(5), page.TotalCount)
		assert.Equal(t, 2, page.Limit)
		assert.Equal(t, 3, page.TotalPages)
		assert.Len(t, page.Posts, 2)
	})

	t.Run("deleted posts never appear", func(t *testing.T) {
		fx := newFixture(t)
		authorID := uuid.New()
		created := fx.createPost(t, authorID, true)
		require.NoError(t, fx.svc.DeletePost(ctx, uuid.MustParse(created.ID), authorID, false))

		page, err := fx.svc.GetAllPosts(ctx, posts.PostListQuery{})

		require.NoError(t, err)
		assert.Equal(t, int64(0), page.TotalCount)
	})
}

func TestGetFeaturedPosts(t *testing.T) {
	ctx := context.Background()

	fx := newFixture(t)
	featured, err := fx.svc.CreatePost(ctx, uuid.New(), posts.CreatePostRequest{
		Title:       "Featured and published",
		Content:     "body",
		CategoryID:  fx.category.String(),
		IsPublished: true,
		IsFeatured:  true,
	})
	require.NoError(t, err)
	// Featured but unpublished posts stay hidden.
	_, err = fx.svc.CreatePost(ctx, uuid.New(), posts.CreatePostRequest{
		Title:      "Featured draft post",
		Content:    "body",
		CategoryID: fx.category.String(),
		IsFeatured: true,
	})
	require.NoError(t, err)

	got, err := fx.svc.GetFeaturedPosts(ctx)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, featured.ID, got[0].ID)
}

func TestPostExists(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	authorID := uuid.New()
	created := fx.createPost(t, authorID, true)
	id := uuid.MustParse(created.ID)

	exists, err := fx.svc.PostExists(ctx, id)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, fx.svc.DeletePost(ctx, id, authorID, false))

	exists, err = fx.svc.PostExists(ctx, id)
	require.NoError(t, err)
	assert.False(t, exists)
}
