package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"yamdb-api/internal/data/entity"
	"yamdb-api/internal/data/repository"
	"yamdb-api/internal/dto/request"
	"yamdb-api/internal/dto/response"
	"yamdb-api/pkg/apperr"
	"yamdb-api/pkg/authz"
	"yamdb-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	// Admin operations, keyed by username.
	List(ctx context.Context, p authz.Principal, search string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	Create(ctx context.Context, p authz.Principal, req *request.CreateUserRequest) (*response.UserResponse, error)
	Get(ctx context.Context, p authz.Principal, username string) (*response.UserResponse, error)
	Update(ctx context.Context, p authz.Principal, username string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	Delete(ctx context.Context, p authz.Principal, username string) error

	// Self-service profile. Role is read-only here.
	GetProfile(ctx context.Context, p authz.Principal) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, p authz.Principal, req *request.UpdateProfileRequest) (*response.UserResponse, error)
}

type userService struct {
	users repository.UserRepository
	log   *zap.Logger
}

func NewUserService(users repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		users: users,
		log:   log.With(zap.String("service", "user")),
	}
}

func (s *userService) List(ctx context.Context, p authz.Principal, search string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if err := authorize(p, authz.ActionRead, authz.ResourceUser); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx, search, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	total, err := s.users.Count(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	return response.NewPaginatedResponse(userResponses, page.Page, page.Limit(), total), nil
}

func (s *userService) Create(ctx context.Context, p authz.Principal, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if err := authorize(p, authz.ActionCreate, authz.ResourceUser); err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create user validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("", utils.FormatValidationErrors(errs))
	}

	if strings.EqualFold(req.Username, "me") {
		return nil, apperr.Validation("username", "using 'me' as a username is forbidden")
	}

	role := authz.RoleUser
	if req.Role != nil {
		role = authz.Role(*req.Role)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperr.ErrAlreadyExists) {
			return nil, apperr.Validation("username", "user with this username or email already exists")
		}
		s.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("username", req.Username),
		)
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User created by admin",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) Get(ctx context.Context, p authz.Principal, username string) (*response.UserResponse, error) {
	if err := authorize(p, authz.ActionRead, authz.ResourceUser); err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user", username)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) Update(ctx context.Context, p authz.Principal, username string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if err := authorize(p, authz.ActionUpdate, authz.ResourceUser); err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update user validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("", utils.FormatValidationErrors(errs))
	}

	if err := checkReservedUsername(req.Username); err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user", username)
	}

	applyProfileFields(user, req.Username, req.Email, req.FirstName, req.LastName, req.Bio)
	if req.Role != nil {
		user.Role = authz.Role(*req.Role)
	}
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, apperr.ErrAlreadyExists) {
			return nil, apperr.Validation("username", "user with this username or email already exists")
		}
		s.log.Error("Failed to update user",
			zap.Error(err),
			zap.String("username", username),
		)
		return nil, fmt.Errorf("update user: %w", err)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, p authz.Principal, username string) error {
	if err := authorize(p, authz.ActionDelete, authz.ResourceUser); err != nil {
		return err
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return apperr.NotFound("user", username)
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		s.log.Error("Failed to delete user",
			zap.Error(err),
			zap.String("username", username),
		)
		return fmt.Errorf("delete user: %w", err)
	}

	return nil
}

func (s *userService) GetProfile(ctx context.Context, p authz.Principal) (*response.UserResponse, error) {
	if !p.Authenticated {
		return nil, apperr.ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user", p.ID.String())
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, p authz.Principal, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if !p.Authenticated {
		return nil, apperr.ErrUnauthenticated
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update profile validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("", utils.FormatValidationErrors(errs))
	}

	if err := checkReservedUsername(req.Username); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user", p.ID.String())
	}

	// Role is never touched here: the request shape has no role field.
	applyProfileFields(user, req.Username, req.Email, req.FirstName, req.LastName, req.Bio)
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, apperr.ErrAlreadyExists) {
			return nil, apperr.Validation("username", "user with this username or email already exists")
		}
		s.log.Error("Failed to update profile",
			zap.Error(err),
			zap.String("user_id", p.ID.String()),
		)
		return nil, fmt.Errorf("update profile: %w", err)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// checkReservedUsername rejects renames onto "me", which is taken by the
// profile endpoint. Guards every path that writes a username.
func checkReservedUsername(username *string) error {
	if username != nil && strings.EqualFold(*username, "me") {
		return apperr.Validation("username", "using 'me' as a username is forbidden")
	}
	return nil
}

func applyProfileFields(user *entity.User, username, email, firstName, lastName, bio *string) {
	if username != nil {
		user.Username = *username
	}
	if email != nil {
		user.Email = *email
	}
	if firstName != nil {
		user.FirstName = firstName
	}
	if lastName != nil {
		user.LastName = lastName
	}
	if bio != nil {
		user.Bio = bio
	}
}
