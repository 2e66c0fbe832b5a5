// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shoplens/shoplens-backend/internal/config"
	"github.com/shoplens/shoplens-backend/internal/models"
	"github.com/shoplens/shoplens-backend/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Demo accounts, password "admin123". There is no registration flow.
var demoUsers = []models.User{
	{
		ID:           "1",
		Email:        "admin@example.com",
		Name:         "Admin",
		Role:         "admin",
		PasswordHash: "$2a$10$K7L1OJ45/4Y2nIvhRVpCe.FSmhDdWoXehVzJptJ/op0lSsvqNu/1u",
	},
	{
		ID:           "2",
		Email:        "user@example.com",
		Name:         "Demo User",
		Role:         "user",
		PasswordHash: "$2a$10$K7L1OJ45/4Y2nIvhRVpCe.FSmhDdWoXehVzJptJ/op0lSsvqNu/1u",
	},
}

type AuthService struct {
	cfg   *config.Config
	users []models.User
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // in seconds
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		cfg:   cfg,
		users: demoUsers,
	}
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user := s.findByEmail(req.Email)
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{
		User:        user,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   s.cfg.JWT.AccessTokenTTL * 3600,
	}, nil
}

// GetUser resolves a user id from a validated token back to the account.
func (s *AuthService) GetUser(userID string) (*models.User, error) {
	for i := range s.users {
		if s.users[i].ID == userID {
			return &s.users[i], nil
		}
	}
	return nil, errors.New("user not found")
}

func (s *AuthService) findByEmail(email string) *models.User {
	needle := strings.ToLower(strings.TrimSpace(email))
	for i := range s.users {
		if strings.ToLower(s.users[i].Email) == needle {
			return &s.users[i]
		}
	}
	return nil
}
