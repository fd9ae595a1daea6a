package usecase

import (
	"context"
	"errors"
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

type ReviewService interface {
	ListReviews(ctx context.Context, titleID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	CreateReview(ctx context.Context, sub policy.Subject, titleID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetReview(ctx context.Context, titleID, reviewID string) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, sub policy.Subject, titleID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, sub policy.Subject, titleID, reviewID string) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) ListReviews(ctx context.Context, titleID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	title, err := s.findParentTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByTitleID(ctx, title.ID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	total, err := s.repo.Review.CountByTitleID(ctx, title.ID)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	usernames := map[uuid.UUID]string{}
	items := make([]response.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, response.ReviewToResponse(
			review, s.authorUsername(ctx, usernames, review.AuthorID), title.Name))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *reviewService) CreateReview(ctx context.Context, sub policy.Subject, titleID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if !policy.CanModerateContent(sub, uuid.Nil, policy.ActionCreate) {
		return nil, fmt.Errorf("authentication required")
	}

	title, err := s.findParentTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Cheap pre-check; the unique constraint settles concurrent inserts.
	existing, err := s.repo.Review.FindByAuthorAndTitle(ctx, sub.UserID, title.ID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("validation failed: you have already reviewed this title")
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now(),
		},
		TitleID:  title.ID,
		AuthorID: sub.UserID,
		Text:     req.Text,
		Score:    req.Score,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("validation failed: you have already reviewed this title")
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("title_id", title.ID.String()),
		zap.String("author_id", sub.UserID.String()),
		zap.Int("score", review.Score),
	)

	usernames := map[uuid.UUID]string{}
	resp := response.ReviewToResponse(review, s.authorUsername(ctx, usernames, review.AuthorID), title.Name)
	return &resp, nil
}

func (s *reviewService) GetReview(ctx context.Context, titleID, reviewID string) (*response.ReviewResponse, error) {
	title, review, err := s.findParentReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	usernames := map[uuid.UUID]string{}
	resp := response.ReviewToResponse(review, s.authorUsername(ctx, usernames, review.AuthorID), title.Name)
	return &resp, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, sub policy.Subject, titleID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	title, review, err := s.findParentReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !policy.CanModerateContent(sub, review.AuthorID, policy.ActionMutate) {
		return nil, fmt.Errorf("forbidden: not the author and no moderator rights")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}

	if err := s.repo.Review.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.log.Info("Review updated", zap.String("review_id", review.ID.String()))

	usernames := map[uuid.UUID]string{}
	resp := response.ReviewToResponse(review, s.authorUsername(ctx, usernames, review.AuthorID), title.Name)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, sub policy.Subject, titleID, reviewID string) error {
	_, review, err := s.findParentReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !policy.CanModerateContent(sub, review.AuthorID, policy.ActionMutate) {
		return fmt.Errorf("forbidden: not the author and no moderator rights")
	}

	return s.repo.Review.Delete(ctx, review.ID)
}

func (s *reviewService) findParentTitle(ctx context.Context, titleID string) (*entity.Title, error) {
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

// findParentReview resolves the nested path; a review hanging off a
// different title reads as absent.
func (s *reviewService) findParentReview(ctx context.Context, titleID, reviewID string) (*entity.Title, *entity.Review, error) {
	title, err := s.findParentTitle(ctx, titleID)
	if err != nil {
		return nil, nil, err
	}

	id, err := utils.ParseUUID(reviewID)
	if err != nil {
		return nil, nil, fmt.Errorf("review %s not found", reviewID)
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil || review.TitleID != title.ID {
		return nil, nil, fmt.Errorf("review %s not found", reviewID)
	}

	return title, review, nil
}

func (s *reviewService) authorUsername(ctx context.Context, cache map[uuid.UUID]string, authorID uuid.UUID) string {
	if username, ok := cache[authorID]; ok {
		return username
	}

	username := ""
	if user, _ := s.repo.User.FindByID(ctx, authorID); user != nil {
		username = user.Username
	}
	cache[authorID] = username
	return username
}
