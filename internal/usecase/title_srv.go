package usecase

import (
	"context"
	"fmt"
	"time"

	"review-catalog/internal/data/entity"
	"review-catalog/internal/data/repository"
	"review-catalog/internal/dto/request"
	"review-catalog/internal/dto/response"
	"review-catalog/internal/policy"
	"review-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TitleService interface {
	ListTitles(ctx context.Context, filter repository.TitleFilter, page *request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error)
	CreateTitle(ctx context.Context, sub policy.Subject, req *request.CreateTitleRequest) (*response.TitleResponse, error)
	GetTitle(ctx context.Context, titleID string) (*response.TitleResponse, error)
	UpdateTitle(ctx context.Context, sub policy.Subject, titleID string, req *request.UpdateTitleRequest) (*response.TitleResponse, error)
	DeleteTitle(ctx context.Context, sub policy.Subject, titleID string) error
}

type titleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTitleService(repo *repository.Repository, log *zap.Logger) TitleService {
	return &titleService{
		repo: repo,
		log:  log.With(zap.String("service", "title")),
	}
}

func (s *titleService) ListTitles(ctx context.Context, filter repository.TitleFilter, page *request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error) {
	titles, err := s.repo.Title.FindAll(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}

	total, err := s.repo.Title.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count titles: %w", err)
	}

	items := make([]response.TitleResponse, 0, len(titles))
	for _, title := range titles {
		resp, err := s.buildTitleResponse(ctx, title)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *titleService) CreateTitle(ctx context.Context, sub policy.Subject, req *request.CreateTitleRequest) (*response.TitleResponse, error) {
	if !policy.CanManageCatalog(sub, policy.ActionCreate) {
		return nil, fmt.Errorf("forbidden: administrator rights required")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create title validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var categoryID *uuid.UUID
	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		categoryID = &category.ID
	}

	genreIDs, err := s.resolveGenres(ctx, req.Genre)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	title := &entity.Title{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  categoryID,
	}

	if err := s.repo.Title.Create(ctx, title, genreIDs); err != nil {
		return nil, fmt.Errorf("create title: %w", err)
	}

	s.log.Info("Title created",
		zap.String("title_id", title.ID.String()),
		zap.String("name", title.Name),
	)

	return s.buildTitleResponse(ctx, title)
}

func (s *titleService) GetTitle(ctx context.Context, titleID string) (*response.TitleResponse, error) {
	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	return s.buildTitleResponse(ctx, title)
}

func (s *titleService) UpdateTitle(ctx context.Context, sub policy.Subject, titleID string, req *request.UpdateTitleRequest) (*response.TitleResponse, error) {
	if !policy.CanManageCatalog(sub, policy.ActionMutate) {
		return nil, fmt.Errorf("forbidden: administrator rights required")
	}

	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update title validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	var genreIDs []uuid.UUID
	replaceGenres := req.Genre != nil
	if replaceGenres {
		genreIDs, err = s.resolveGenres(ctx, *req.Genre)
		if err != nil {
			return nil, err
		}
	}

	title.UpdatedAt = time.Now()
	if err := s.repo.Title.Update(ctx, title, genreIDs, replaceGenres); err != nil {
		return nil, fmt.Errorf("update title: %w", err)
	}

	s.log.Info("Title updated", zap.String("title_id", title.ID.String()))

	return s.buildTitleResponse(ctx, title)
}

func (s *titleService) DeleteTitle(ctx context.Context, sub policy.Subject, titleID string) error {
	if !policy.CanManageCatalog(sub, policy.ActionMutate) {
		return fmt.Errorf("forbidden: administrator rights required")
	}

	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return err
	}

	return s.repo.Title.Delete(ctx, title.ID)
}

// findTitle resolves a path ID to a title; a malformed ID reads the
// same as an absent one.
func (s *titleService) findTitle(ctx context.Context, titleID string) (*entity.Title, error) {
	id, err := utils.ParseUUID(titleID)
	if err != nil {
		return nil, fmt.Errorf("title %s not found", titleID)
	}

	title, err := s.repo.Title.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find title: %w", err)
	}
	if title == nil {
		return nil, fmt.Errorf("title %s not found", titleID)
	}

	return title, nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*entity.Category, error) {
	category, err := s.repo.Category.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("resolve category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("validation failed: category: unknown slug %q", slug)
	}
	return category, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(slugs))
	for _, slug := range slugs {
		genre, err := s.repo.Genre.FindBySlug(ctx, slug)
		if err != nil {
			return nil, fmt.Errorf("resolve genre: %w", err)
		}
		if genre == nil {
			return nil, fmt.Errorf("validation failed: genre: unknown slug %q", slug)
		}
		ids = append(ids, genre.ID)
	}
	return ids, nil
}

// buildTitleResponse assembles the read representation with embedded
// category and genres.
func (s *titleService) buildTitleResponse(ctx context.Context, title *entity.Title) (*response.TitleResponse, error) {
	var category *entity.Category
	if title.CategoryID != nil {
		found, err := s.repo.Category.FindByID(ctx, *title.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("load title category: %w", err)
		}
		category = found
	}

	genres, err := s.repo.Genre.FindByTitleID(ctx, title.ID)
	if err != nil {
		return nil, fmt.Errorf("load title genres: %w", err)
	}

	resp := response.TitleToResponse(title, category, genres)
	return &resp, nil
}
