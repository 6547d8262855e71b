package services

import (
	"context"
	"errors"
	"time"

	"sueta_backend/internal/auth"
	"sueta_backend/internal/logger"
	"sueta_backend/internal/models"
	"sueta_backend/internal/repositories"
	"sueta_backend/internal/services/dto"
	"sueta_backend/internal/validator"
	"sueta_backend/pkg/apperrors"

	"github.com/google/uuid"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResult, error)
	Logout(ctx context.Context, token string) error
	// ResolveSession возвращает пользователя по cookie-токену
	ResolveSession(ctx context.Context, token string) (*models.User, error)
}

type AuthServiceImpl struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	tokens      *auth.TokenManager
	validator   *validator.Validator
	bcryptCost  int
	now         func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	tokens *auth.TokenManager,
	v *validator.Validator,
	bcryptCost int,
) AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokens:      tokens,
		validator:   v,
		bcryptCost:  bcryptCost,
		now:         time.Now,
	}
}

// Register - регистрация нового участника
func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, registrationError(err)
	}

	gender, _ := models.ParseGender(req.Gender)

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MiddleName:   req.MiddleName,
		BirthDate:    req.BirthDate,
		Telegram:     req.Telegram,
		Username:     req.Username,
		PasswordHash: hash,
		TicketStatus: models.TicketStatusNotPaid,
		IsAdmin:      false,
		Gender:       gender,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "User registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login - проверка логина и пароля, создание серверной сессии
func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.CtxWarn(ctx, "Failed login attempt", "user_id", user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}

	now := s.now()
	sessionID := uuid.NewString()

	token, expiresAt, err := s.tokens.Issue(sessionID, user.ID, now)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	session := &models.Session{
		ID:        sessionID,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "User logged in", "user_id", user.ID)
	return &dto.LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Logout удаляет серверную сессию; недействительный токен - не ошибка
func (s *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil
	}

	if err := s.sessionRepo.Delete(ctx, claims.SessionID); err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "User logged out", "user_id", claims.UserID)
	return nil
}

func (s *AuthServiceImpl) ResolveSession(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	if session.UserID != claims.UserID || session.Expired(s.now()) {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// registrationError переводит первую ошибку формы в пользовательское сообщение
func registrationError(err error) error {
	var ve *validator.ValidationError
	if !errors.As(err, &ve) {
		return apperrors.InternalError(err)
	}

	first := ve.First()
	switch {
	case first.Field == "username" && first.Tag == "min":
		return apperrors.ErrUsernameTooShort
	case first.Field == "password" && first.Tag == "min":
		return apperrors.ErrPasswordTooShort
	case first.Field == "gender":
		return apperrors.ErrInvalidGender
	}

	label, ok := fieldLabels[first.Field]
	if !ok {
		label = first.Field
	}
	return apperrors.ValidationError(label+": "+first.Message, ve.Map())
}

var fieldLabels = map[string]string{
	"username":    "Логин",
	"password":    "Пароль",
	"first_name":  "Имя",
	"last_name":   "Фамилия",
	"middle_name": "Отчество",
	"birth_date":  "Дата рождения",
	"telegram":    "Telegram",
}
