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
	"review-catalog/pkg/mailer"
	"review-catalog/pkg/utils"

	"go.uber.org/zap"
)

// ErrInvalidCredentials covers every token-endpoint failure the caller
// may see: unknown username, wrong code, missing fields. The endpoint
// never distinguishes them.
var ErrInvalidCredentials = errors.New("invalid username or confirmation code")

type AuthService interface {
	Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error)
	IssueToken(ctx context.Context, req *request.TokenRequest) (string, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	mail   mailer.Mailer
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, mail mailer.Mailer, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		mail:   mail,
		log:    log.With(zap.String("service", "auth")),
	}
}

// Signup registers a user and mails a confirmation code. The code hash
// is set on the row before the single insert.
func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if req.Username == entity.ReservedUsername {
		return nil, fmt.Errorf("validation failed: username: %q is reserved", entity.ReservedUsername)
	}

	existing, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("validation failed: username: already taken")
	}

	existing, err = s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("validation failed: email: already registered")
	}

	code, err := utils.GenerateConfirmationCode(s.config.Code.Length)
	if err != nil {
		return nil, err
	}
	codeHash, err := utils.HashConfirmationCode(code)
	if err != nil {
		return nil, err
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
		Role:     entity.RoleUser,
		CodeHash: codeHash,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("validation failed: username or email already taken")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	body := fmt.Sprintf("Your confirmation code: %s", code)
	if err := s.mail.Send(user.Email, "Confirmation code", body); err != nil {
		s.log.Error("Failed to send confirmation code",
			zap.Error(err),
			zap.String("username", user.Username),
		)
		return nil, fmt.Errorf("send confirmation code: %w", err)
	}

	s.log.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	return &response.SignupResponse{
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// IssueToken exchanges a confirmation code for a signed access token.
func (s *authService) IssueToken(ctx context.Context, req *request.TokenRequest) (string, error) {
	if req.Username == "" || req.ConfirmationCode == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}
	if user == nil || user.CodeHash == "" {
		return "", ErrInvalidCredentials
	}

	if !utils.CheckConfirmationCode(req.ConfirmationCode, user.CodeHash) {
		s.log.Warn("Confirmation code mismatch", zap.String("username", req.Username))
		return "", ErrInvalidCredentials
	}

	token, err := utils.GenerateAccessToken(
		s.config.JWT.Secret,
		user.ID,
		user.Username,
		string(user.Role),
		s.config.JWT.ExpiryHours,
	)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("Access token issued", zap.String("username", user.Username))
	return token, nil
}
