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

type UserService interface {
	// Admin endpoints
	ListUsers(ctx context.Context, sub policy.Subject, search string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	CreateUser(ctx context.Context, sub policy.Subject, req *request.CreateUserRequest) (*response.UserResponse, error)
	GetUser(ctx context.Context, sub policy.Subject, username string) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, sub policy.Subject, username string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, sub policy.Subject, username string) error

	// Self-service endpoints
	GetMe(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, req *request.UpdateUserRequest) (*response.UserResponse, error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) ListUsers(ctx context.Context, sub policy.Subject, search string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if !policy.CanManageUsers(sub) {
		return nil, fmt.Errorf("forbidden: administrator rights required")
	}

	users, err := s.repo.User.FindAll(ctx, search, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	total, err := s.repo.User.CountAll(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	items := make([]response.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, response.UserToResponse(user))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *userService) CreateUser(ctx context.Context, sub policy.Subject, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if !policy.CanManageUsers(sub) {
		return nil, fmt.Errorf("forbidden: administrator rights required")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create user validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if req.Username == entity.ReservedUsername {
		return nil, fmt.Errorf("validation failed: username: %q is reserved", entity.ReservedUsername)
	}

	role := entity.RoleUser
	if req.Role != nil {
		role = entity.UserRole(*req.Role)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username: req.Username,
		Email:    req.Email,
		Role:     role,
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("validation failed: username or email already taken")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) GetUser(ctx context.Context, sub policy.Subject, username string) (*response.UserResponse, error) {
	if !policy.CanManageUsers(sub) {
		return nil, fmt.Errorf("forbidden: administrator rights required")
	}

	user, err := s.repo.User.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", username)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateUser(ctx context.Context, sub policy.Subject, username string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if !policy.CanManageUsers(sub) {
		return nil, fmt.Errorf("forbidden: administrator rights required")
	}

	user, err := s.repo.User.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", username)
	}

	if req.Role != nil && !policy.CanChangeRole(sub) {
		return nil, fmt.Errorf("forbidden: role assignment requires administrator rights")
	}

	return s.applyUserUpdate(ctx, user, req)
}

func (s *userService) DeleteUser(ctx context.Context, sub policy.Subject, username string) error {
	if !policy.CanManageUsers(sub) {
		return fmt.Errorf("forbidden: administrator rights required")
	}

	user, err := s.repo.User.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user %s not found", username)
	}

	return s.repo.User.Delete(ctx, user.ID)
}

func (s *userService) GetMe(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("authentication required: user no longer exists")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// UpdateMe updates the caller's own profile. The role guard lives in
// the handler; a role carried this far is ignored.
func (s *userService) UpdateMe(ctx context.Context, userID uuid.UUID, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("authentication required: user no longer exists")
	}

	req.Role = nil
	return s.applyUserUpdate(ctx, user, req)
}

// applyUserUpdate validates and persists a partial update; nil fields
// keep their stored value.
func (s *userService) applyUserUpdate(ctx context.Context, user *entity.User, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update user validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if req.Username != nil {
		if *req.Username == entity.ReservedUsername {
			return nil, fmt.Errorf("validation failed: username: %q is reserved", entity.ReservedUsername)
		}
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = entity.UserRole(*req.Role)
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("validation failed: username or email already taken")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.log.Info("User updated", zap.String("user_id", user.ID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}
