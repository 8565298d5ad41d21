package categories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
	ErrForbidden             = errors.New("not allowed to modify this category")
)

type Service interface {
	CreateCategory(ctx context.Context, userID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error)
	GetAllCategories(ctx context.Context) ([]CategoryResponse, error)
	UpdateCategory(ctx context.Context, id, userID uuid.UUID, isAdmin bool, req UpdateCategoryRequest) (*CategoryResponse, error)
	DeleteCategory(ctx context.Context, id, userID uuid.UUID, isAdmin bool) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateCategory(ctx context.Context, userID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)

	// Friendly pre-check; the LOWER(name) unique index is what actually
	// guarantees uniqueness under concurrency.
	exists, err := s.repo.NameExists(ctx, name, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCategoryAlreadyExists
	}

	category := &Category{
		Name:      name,
		CreatedBy: userID,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	resp := category.ToResponse()
	return &resp, nil
}

func (s *service) GetCategoryByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := category.ToResponse()
	return &resp, nil
}

func (s *service) GetAllCategories(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		responses[i] = category.ToResponse()
	}
	return responses, nil
}

func (s *service) UpdateCategory(ctx context.Context, id, userID uuid.UUID, isAdmin bool, req UpdateCategoryRequest) (*CategoryResponse, error) {
	// Existence before authorization: a missing category is 404 for everyone.
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if category.CreatedBy != userID && !isAdmin {
		return nil, ErrForbidden
	}

	name := strings.TrimSpace(req.Name)
	exists, err := s.repo.NameExists(ctx, name, &id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCategoryAlreadyExists
	}

	category.Name = name
	category.UpdatedBy = &userID
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}

	resp := category.ToResponse()
	return &resp, nil
}

func (s *service) DeleteCategory(ctx context.Context, id, userID uuid.UUID, isAdmin bool) error {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if category.CreatedBy != userID && !isAdmin {
		return ErrForbidden
	}

	return s.repo.Delete(ctx, id)
}
