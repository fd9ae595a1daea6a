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

type CommentService interface {
	ListComments(ctx context.Context, titleID, reviewID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error)
	CreateComment(ctx context.Context, sub policy.Subject, titleID, reviewID string, req *request.CreateCommentRequest) (*response.CommentResponse, error)
	GetComment(ctx context.Context, titleID, reviewID, commentID string) (*response.CommentResponse, error)
	UpdateComment(ctx context.Context, sub policy.Subject, titleID, reviewID, commentID string, req *request.UpdateCommentRequest) (*response.CommentResponse, error)
	DeleteComment(ctx context.Context, sub policy.Subject, titleID, reviewID, commentID string) error
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) ListComments(ctx context.Context, titleID, reviewID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error) {
	review, err := s.findParentReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.Comment.FindByReviewID(ctx, review.ID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	total, err := s.repo.Comment.CountByReviewID(ctx, review.ID)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	usernames := map[uuid.UUID]string{}
	items := make([]response.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		items = append(items, response.CommentToResponse(
			comment, s.authorUsername(ctx, usernames, comment.AuthorID)))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *commentService) CreateComment(ctx context.Context, sub policy.Subject, titleID, reviewID string, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	if !policy.CanModerateContent(sub, uuid.Nil, policy.ActionCreate) {
		return nil, fmt.Errorf("authentication required")
	}

	review, err := s.findParentReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now(),
		},
		ReviewID: review.ID,
		AuthorID: sub.UserID,
		Text:     req.Text,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("review_id", review.ID.String()),
		zap.String("author_id", sub.UserID.String()),
	)

	usernames := map[uuid.UUID]string{}
	resp := response.CommentToResponse(comment, s.authorUsername(ctx, usernames, comment.AuthorID))
	return &resp, nil
}

func (s *commentService) GetComment(ctx context.Context, titleID, reviewID, commentID string) (*response.CommentResponse, error) {
	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	usernames := map[uuid.UUID]string{}
	resp := response.CommentToResponse(comment, s.authorUsername(ctx, usernames, comment.AuthorID))
	return &resp, nil
}

func (s *commentService) UpdateComment(ctx context.Context, sub policy.Subject, titleID, reviewID, commentID string, req *request.UpdateCommentRequest) (*response.CommentResponse, error) {
	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !policy.CanModerateContent(sub, comment.AuthorID, policy.ActionMutate) {
		return nil, fmt.Errorf("forbidden: not the author and no moderator rights")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}

	if err := s.repo.Comment.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}

	s.log.Info("Comment updated", zap.String("comment_id", comment.ID.String()))

	usernames := map[uuid.UUID]string{}
	resp := response.CommentToResponse(comment, s.authorUsername(ctx, usernames, comment.AuthorID))
	return &resp, nil
}

func (s *commentService) DeleteComment(ctx context.Context, sub policy.Subject, titleID, reviewID, commentID string) error {
	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !policy.CanModerateContent(sub, comment.AuthorID, policy.ActionMutate) {
		return fmt.Errorf("forbidden: not the author and no moderator rights")
	}

	return s.repo.Comment.Delete(ctx, comment.ID)
}

func (s *commentService) findParentReview(ctx context.Context, titleID, reviewID string) (*entity.Review, error) {
	tid, err := utils.ParseUUID(titleID)
	if err != nil {
		return nil, fmt.Errorf("title %s not found", titleID)
	}

	title, err := s.repo.Title.FindByID(ctx, tid)
	if err != nil {
		return nil, fmt.Errorf("find title: %w", err)
	}
	if title == nil {
		return nil, fmt.Errorf("title %s not found", titleID)
	}

	rid, err := utils.ParseUUID(reviewID)
	if err != nil {
		return nil, fmt.Errorf("review %s not found", reviewID)
	}

	review, err := s.repo.Review.FindByID(ctx, rid)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil || review.TitleID != title.ID {
		return nil, fmt.Errorf("review %s not found", reviewID)
	}

	return review, nil
}

func (s *commentService) findComment(ctx context.Context, titleID, reviewID, commentID string) (*entity.Comment, error) {
	review, err := s.findParentReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	id, err := utils.ParseUUID(commentID)
	if err != nil {
		return nil, fmt.Errorf("comment %s not found", commentID)
	}

	comment, err := s.repo.Comment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find comment: %w", err)
	}
	if comment == nil || comment.ReviewID != review.ID {
		return nil, fmt.Errorf("comment %s not found", commentID)
	}

	return comment, nil
}

func (s *commentService) authorUsername(ctx context.Context, cache map[uuid.UUID]string, authorID uuid.UUID) string {
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
