package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cmms120187/pratamair/internal/dto"
	"github.com/cmms120187/pratamair/internal/model"
	"github.com/cmms120187/pratamair/internal/repository"
	"github.com/cmms120187/pratamair/pkg/jwt"
	"github.com/cmms120187/pratamair/pkg/redis"
)

var (
	ErrAuthInvalidCredentials = errors.New("email or password is incorrect")
	ErrAuthUserNotFound       = errors.New("user not found")
)

// AuthService handles login, logout and the current-user lookup.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// Logout revokes the token by blacklisting its JWT ID for its
	// remaining life. Without Redis, revocation degrades to expiry.
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	CurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authService struct {
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService creates the AuthService.
func NewAuthService(repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) AuthService {
	return &authService{repo: repo, jwtMgr: jwtMgr, rdb: rdb, logger: logger}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrAuthInvalidCredentials
	}

	token, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("issue access token failed", zap.Error(err))
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		User:        toUserResponse(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		return nil
	}
	if err := s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Warn("blacklist token failed", zap.Error(err), zap.String("jti", jti))
		return err
	}
	return nil
}

func (s *authService) CurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthUserNotFound
		}
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		UserID: u.UserID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
	}
}
