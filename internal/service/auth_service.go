package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"employee-directory/internal/domain"
	"employee-directory/internal/feature/validation"
	"employee-directory/pkg/utils"
)

// 用户不存在时也跑一次 bcrypt，响应时间不暴露用户名是否存在
var dummyHash = sync.OnceValue(func() string {
	h, _ := utils.HashPassword("not-a-real-password")
	return h
})

type AuthService struct {
	users domain.UserRepository
	now   func() time.Time
}

func NewAuthService(users domain.UserRepository) *AuthService {
	return &AuthService{users: users, now: time.Now}
}

// Authenticate 用户名或密码错误、账号停用都返回 ErrInvalidCredentials
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		utils.CheckPassword(password, dummyHash())
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(password, u.PasswordHash) || !u.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	now := s.now().UTC()
	if err := s.users.TouchLogin(ctx, u.ID, now); err != nil {
		return nil, err
	}
	u.LastLoginAt = &now
	return u, nil
}

func (s *AuthService) CreateUser(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}
	if email != "" && !validation.ValidEmail(email) {
		return nil, fmt.Errorf("invalid email %q", email)
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) SetPassword(ctx context.Context, username, password string) error {
	if password == "" {
		return errors.New("password is required")
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.SetPassword(ctx, strings.TrimSpace(username), hash)
}
