package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tuiter/auth"
	"tuiter/daos"
	"tuiter/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
)

type UserService struct {
	users daos.UserDao
}

func NewUserService(users daos.UserDao) *UserService {
	return &UserService{users: users}
}

func (s *UserService) FindAll(ctx context.Context) ([]models.User, error) {
	return s.users.FindAll(ctx)
}

func (s *UserService) FindByID(ctx context.Context, uid string) (*models.User, error) {
	return s.users.FindByID(ctx, uid)
}

func (s *UserService) Delete(ctx context.Context, uid string) error {
	return s.users.Delete(ctx, uid)
}

// Signup 注册新用户，用户名必须唯一，密码以 bcrypt 哈希保存
func (s *UserService) Signup(ctx context.Context, creds models.Credentials) (*models.User, error) {
	username := strings.TrimSpace(creds.Username)
	if username == "" || creds.Password == "" {
		return nil, ErrInvalidCredentials
	}
	_, err := s.users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, ErrUsernameTaken
	case !errors.Is(err, daos.ErrNotFound):
		return nil, err
	}

	hash, err := auth.HashPassword(creds.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.users.Create(ctx, &models.User{
		Username:  username,
		Password:  hash,
		Email:     creds.Email,
		FirstName: creds.FirstName,
		LastName:  creds.LastName,
	})
	if errors.Is(err, daos.ErrDuplicate) {
		return nil, ErrUsernameTaken
	}
	return user, err
}

func (s *UserService) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(creds.Username))
	if errors.Is(err, daos.ErrNotFound) {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(user.Password, creds.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Create is the admin-style create; it shares Signup's hashing and uniqueness rules.
func (s *UserService) Create(ctx context.Context, creds models.Credentials) (*models.User, error) {
	return s.Signup(ctx, creds)
}

// Update re-hashes the password when a new one is supplied.
func (s *UserService) Update(ctx context.Context, uid string, user *models.User, password string) error {
	if password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user.Password = hash
	}
	return s.users.Update(ctx, uid, user)
}
