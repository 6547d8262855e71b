package dto

import (
	"time"

	"sueta_backend/internal/models"
)

// RegisterRequest - форма регистрации. Порядок полей задает порядок проверок:
// сначала логин, потом пароль, потом пол.
type RegisterRequest struct {
	Username   string `form:"username" validate:"min=6,max=100"`
	Password   string `form:"password" validate:"min=8,max-bytes=72"`
	Gender     string `form:"gender" validate:"is-gender"`
	FirstName  string `form:"first_name" validate:"required,max=50"`
	LastName   string `form:"last_name" validate:"required,max=50"`
	MiddleName string `form:"middle_name" validate:"required,max=50"`
	BirthDate  string `form:"birth_date" validate:"required,max=10"`
	Telegram   string `form:"telegram" validate:"max=100"`
}

// LoginRequest - форма входа
type LoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// LoginResult - подписанный токен сессии для cookie
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}
