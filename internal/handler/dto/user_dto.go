package dto

import (
	"time"

	"github.com/yourusername/quizgame-api/internal/domain/entity"
)

// UserResponse представляет публичные данные пользователя
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse возвращается при регистрации и входе
type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"`
}

// NewAuthResponse создает ответ аутентификации
func NewAuthResponse(user *entity.User, token string) AuthResponse {
	return AuthResponse{
		User: UserResponse{
			ID:        user.ID,
			Username:  user.Username,
			CreatedAt: user.CreatedAt,
		},
		AccessToken: token,
		TokenType:   "Bearer",
	}
}
