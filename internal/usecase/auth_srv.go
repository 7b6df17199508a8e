package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"yamdb-api/internal/data/entity"
	"yamdb-api/internal/data/repository"
	"yamdb-api/internal/dto/request"
	"yamdb-api/internal/dto/response"
	"yamdb-api/pkg/apperr"
	"yamdb-api/pkg/authz"
	"yamdb-api/pkg/mailer"
	"yamdb-api/pkg/token"
	"yamdb-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	// Signup registers an account (or re-sends a code for an exact
	// username+email match) and emails a confirmation code.
	Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error)
	// IssueToken exchanges a valid confirmation code for a JWT.
	IssueToken(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error)
}

type authService struct {
	repo   *repository.Repository
	tokens token.Manager
	mail   mailer.Mailer
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	tokens token.Manager,
	mail mailer.Mailer,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		mail:   mail,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("", utils.FormatValidationErrors(errs))
	}

	// "me" is reserved for the profile endpoint
	if strings.EqualFold(req.Username, "me") {
		return nil, apperr.Validation("username", "using 'me' as a username is forbidden")
	}

	byUsername, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	byEmail, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}

	var user *entity.User
	switch {
	case byUsername != nil && byUsername.Email == req.Email:
		// Exact pair already registered: idempotent re-send.
		user = byUsername

	case byUsername != nil:
		return nil, apperr.Validation("username", "user with this username already exists")

	case byEmail != nil:
		return nil, apperr.Validation("email", "user with this email already exists")

	default:
		now := time.Now()
		user = &entity.User{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Username: req.Username,
			Email:    req.Email,
			Role:     authz.RoleUser,
		}

		if err := s.repo.User.Create(ctx, user); err != nil {
			s.log.Error("Failed to create user on signup",
				zap.Error(err),
				zap.String("username", req.Username),
			)
			return nil, fmt.Errorf("create user: %w", err)
		}

		s.log.Info("User registered",
			zap.String("user_id", user.ID.String()),
			zap.String("username", user.Username),
		)
	}

	if err := s.issueConfirmationCode(ctx, user); err != nil {
		return nil, err
	}

	return &response.SignupResponse{
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

func (s *authService) IssueToken(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Token request validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user", req.Username)
	}

	code, err := s.repo.Confirmation.FindActiveByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("find confirmation code: %w", err)
	}
	if code == nil {
		return nil, apperr.Validation("confirmation_code", "invalid confirmation code")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(code.CodeHash), []byte(req.ConfirmationCode)); err != nil {
		s.log.Warn("Confirmation code mismatch",
			zap.String("user_id", user.ID.String()),
		)
		return nil, apperr.Validation("confirmation_code", "invalid confirmation code")
	}

	// Single use
	if err := s.repo.Confirmation.MarkUsed(ctx, code.ID); err != nil {
		return nil, fmt.Errorf("consume confirmation code: %w", err)
	}

	accessToken, err := s.tokens.Generate(user.ID.String(), string(user.EffectiveRole()))
	if err != nil {
		s.log.Error("Failed to generate access token",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	s.log.Info("Access token issued",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	return &response.TokenResponse{Token: accessToken}, nil
}

// issueConfirmationCode generates, stores (hashed) and emails a fresh code,
// invalidating any outstanding ones. Email failure propagates: the caller
// must not report success when nothing was delivered.
func (s *authService) issueConfirmationCode(ctx context.Context, user *entity.User) error {
	plainCode := utils.GenerateCode(s.config.Code.Length)

	hash, err := bcrypt.GenerateFromPassword([]byte(plainCode), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash confirmation code: %w", err)
	}

	if err := s.repo.Confirmation.InvalidateForUser(ctx, user.ID); err != nil {
		return fmt.Errorf("invalidate previous codes: %w", err)
	}

	code := &entity.ConfirmationCode{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    user.ID,
		CodeHash:  string(hash),
		ExpiresAt: time.Now().Add(time.Duration(s.config.Code.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Confirmation.Create(ctx, code); err != nil {
		return fmt.Errorf("store confirmation code: %w", err)
	}

	if err := s.mail.SendConfirmationCode(user.Email, user.Username, plainCode); err != nil {
		return fmt.Errorf("deliver confirmation code: %w", err)
	}

	s.log.Info("Confirmation code issued",
		zap.String("user_id", user.ID.String()),
		zap.Time("expires_at", code.ExpiresAt),
	)

	return nil
}
