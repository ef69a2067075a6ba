package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/quizgame-api/internal/domain/entity"
	"github.com/yourusername/quizgame-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizgame-api/internal/pkg/errors"
	"github.com/yourusername/quizgame-api/pkg/auth"
)

// AuthService предоставляет регистрацию и вход пользователей
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register создает нового пользователя и возвращает токен доступа
func (s *AuthService) Register(ctx context.Context, username, password string) (*entity.User, string, error) {
	user := &entity.User{Username: username}
	if err := user.SetPassword(password); err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, "", apperrors.ErrAlreadyExists
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	log.Printf("[AuthService] Зарегистрирован пользователь %q (ID=%d)", username, user.ID)
	return user, token, nil
}

// Login проверяет учетные данные и возвращает токен доступа
func (s *AuthService) Login(ctx context.Context, username, password string) (*entity.User, string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.ErrUnauthorized
		}
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}

	if !user.CheckPassword(password) {
		return nil, "", apperrors.ErrUnauthorized
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}
