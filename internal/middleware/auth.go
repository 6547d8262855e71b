package middleware

import (
	"errors"
	"net/http"

	"sueta_backend/internal/auth"
	"sueta_backend/internal/logger"
	"sueta_backend/internal/models"
	"sueta_backend/internal/services"
	"sueta_backend/pkg/apperrors"
	"sueta_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// LoginPath - куда отправляем неавторизованных
const LoginPath = "/event/login"

// SessionMiddleware читает cookie сессии и кладет пользователя в контекст.
// Запрос никогда не блокируется: отсутствие сессии решают RequireSession/RequireAdmin.
func SessionMiddleware(authService services.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user, err := authService.ResolveSession(c.Request.Context(), token)
		if err != nil {
			var appErr *apperrors.AppError
			if !errors.As(err, &appErr) || appErr.HTTPCode >= http.StatusInternalServerError {
				logger.CtxWithError(c.Request.Context(), "Session lookup failed", err)
			} else {
				logger.CtxDebug(c.Request.Context(), "Session cookie rejected", "code", appErr.Code)
			}
			c.Next()
			return
		}

		c.Set(contextkeys.CurrentUserKey, user)
		c.Set(contextkeys.SessionTokenKey, token)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), user.ID))
		c.Next()
	}
}

// CurrentUser возвращает пользователя текущей сессии или nil
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(contextkeys.CurrentUserKey)
	if !exists {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}

// RequireSession - без сессии редирект на страницу входа
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin - без сессии или без прав администратора отдаем 403
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.IsAdmin(CurrentUser(c)) {
			apperrors.HandleError(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}
