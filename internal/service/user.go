package service

import (
	"context"
	"errors"

	"github.com/Payphone-Digital/catalog-api/internal/constants"
	"github.com/Payphone-Digital/catalog-api/internal/dto"
	apperrors "github.com/Payphone-Digital/catalog-api/internal/errors"
	"github.com/Payphone-Digital/catalog-api/internal/model"
	"github.com/Payphone-Digital/catalog-api/internal/repository"
	"github.com/Payphone-Digital/catalog-api/internal/sorting"
	ctxutil "github.com/Payphone-Digital/catalog-api/pkg/context"
	"github.com/Payphone-Digital/catalog-api/pkg/logger"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserSortPolicy declares the sorts the user listing endpoint permits.
// last_login is ascending-only: "least recently seen" is the review
// workflow, newest-first over a sparse column is not useful.
var UserSortPolicy = sorting.Policy{
	sorting.NewSpec("email", "email"),
	sorting.NewSpec("first_name", "first_name"),
	sorting.NewSpec("created_at", "created_at"),
	sorting.NewSpec("last_login", "last_login", sorting.Asc),
}

type UserService struct {
	repo *repository.UserRepository
	jwt  *JWTService
}

func NewUserService(repo *repository.UserRepository, jwt *JWTService) *UserService {
	return &UserService{repo: repo, jwt: jwt}
}

// SortPolicy returns the sort policy for the user listing endpoint.
func (s *UserService) SortPolicy() sorting.Policy {
	return UserSortPolicy
}

// List returns one page of users with sorting already validated upstream.
func (s *UserService) List(ctx context.Context, pagination constants.PaginationParams, sorts []sorting.Field) ([]dto.UserResponse, int64, int, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "List")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	users, total, err := s.repo.List(ctx, pagination.Limit, pagination.Offset, pagination.Search, sorts)
	if err != nil {
		return nil, 0, 0, err
	}

	responses := lo.Map(users, func(u model.User, _ int) dto.UserResponse {
		return toUserResponse(&u)
	})

	return responses, total, pageTotal(total, pagination.Limit), nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByID")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	response := toUserResponse(user)
	return &response, nil
}

func (s *UserService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user := &model.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashed),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	response := toUserResponse(user)
	return &response, nil
}

// Login verifies credentials and issues an access token.
func (s *UserService) Login(ctx context.Context, req *dto.UserLoginRequest) (*dto.UserLoginResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Login")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.WarnWithContext(ctx, "Login failed: password mismatch").
			String("email", req.Email).
			Log()
		return nil, apperrors.ErrInvalidCredentials
	}

	response := toUserResponse(user)

	token, err := s.jwt.GenerateToken(&response)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID); err != nil {
		// login still succeeds, the timestamp is advisory
		logger.WarnWithContext(ctx, "Failed to update last login").
			Int("user_id", int(user.ID)).
			Err(err).
			Log()
	}

	return &dto.UserLoginResponse{
		Token:     token,
		ExpiresIn: int(s.jwt.Expiry().Seconds()),
		User:      response,
	}, nil
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
