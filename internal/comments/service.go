package comments

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/notifications"
	"inkwell/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrForbidden       = errors.New("not allowed to modify this comment")
)

type Service interface {
	SetPublisher(publisher notifications.Publisher)

	CreateComment(ctx context.Context, userID uuid.UUID, req CreateCommentRequest) (*CommentResponse, error)
	GetCommentsByPost(ctx context.Context, postID uuid.UUID) ([]CommentResponse, error)
	UpdateComment(ctx context.Context, id, userID uuid.UUID, req UpdateCommentRequest) (*CommentResponse, error)
	DeleteComment(ctx context.Context, id, userID uuid.UUID, isAdmin bool) error
}

// PostService is the narrow slice of the posts package the comments service
// needs. Soft-deleted posts do not exist as far as commenting is concerned.
type PostService interface {
	PostExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo        Repository
	postService PostService
	publisher   notifications.Publisher
}

func NewService(repo Repository, postService PostService) Service {
	return &service{
		repo:        repo,
		postService: postService,
	}
}

func (s *service) SetPublisher(publisher notifications.Publisher) {
	s.publisher = publisher
}

func (s *service) CreateComment(ctx context.Context, userID uuid.UUID, req CreateCommentRequest) (*CommentResponse, error) {
	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		return nil, ErrPostNotFound
	}

	exists, err := s.postService.PostExists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	comment := &Comment{
		Comment: strings.TrimSpace(req.Comment),
		PostID:  postID,
		UserID:  userID,
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	logger.GetDefault().LogCommentCreated(ctx, comment.ID.String(), postID.String(), userID.String())
	if s.publisher != nil {
		s.publisher.Publish(ctx, notifications.NewEvent(notifications.EventCommentCreated, comment.ID.String(), map[string]string{
			"post_id": postID.String(),
			"user_id": userID.String(),
		}))
	}

	resp := comment.ToResponse()
	return &resp, nil
}

func (s *service) GetCommentsByPost(ctx context.Context, postID uuid.UUID) ([]CommentResponse, error) {
	exists, err := s.postService.PostExists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	comments, err := s.repo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	responses := make([]CommentResponse, len(comments))
	for i, comment := range comments {
		responses[i] = comment.ToResponse()
	}
	return responses, nil
}

func (s *service) UpdateComment(ctx context.Context, id, userID uuid.UUID, req UpdateCommentRequest) (*CommentResponse, error) {
	comment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Only the author may edit; admins moderate by deleting, not rewriting.
	if comment.UserID != userID {
		return nil, ErrForbidden
	}

	comment.Comment = strings.TrimSpace(req.Comment)
	if err := s.repo.Update(ctx, comment); err != nil {
		return nil, err
	}

	resp := comment.ToResponse()
	return &resp, nil
}

func (s *service) DeleteComment(ctx context.Context, id, userID uuid.UUID, isAdmin bool) error {
	comment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if comment.UserID != userID && !isAdmin {
		return ErrForbidden
	}

	return s.repo.Delete(ctx, id)
}
