package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"sinar-terang/models"
	"sinar-terang/repositories"
	"sinar-terang/utils"
)

type AuthService struct {
	users     UserStore
	jwtSecret string
	jwtExpiry time.Duration
	logger    *zap.Logger
}

func NewAuthService(users UserStore, jwtSecret string, jwtExpiry time.Duration, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if jwtExpiry <= 0 {
		jwtExpiry = 24 * time.Hour
	}
	return &AuthService{users: users, jwtSecret: jwtSecret, jwtExpiry: jwtExpiry, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !utils.VerifyPassword(user.Password, req.Password) {
		s.logger.Info("login rejected", zap.String("username", user.Username))
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(s.jwtSecret, s.jwtExpiry, user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// CreateUser registers a cashier account. Role defaults to kasir.
func (s *AuthService) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RoleKasir
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: strings.TrimSpace(req.Username),
		Password: hashedPassword,
		FullName: strings.TrimSpace(req.FullName),
		Role:     role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	s.logger.Info("user created", zap.Int("user_id", user.ID), zap.String("role", user.Role))
	return user, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// EnsureAdmin seeds the first admin account when the users table is empty.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}
	_, err = s.CreateUser(ctx, models.CreateUserRequest{
		Username: username,
		Password: password,
		FullName: "Administrator",
		Role:     models.RoleAdmin,
	})
	return err
}
