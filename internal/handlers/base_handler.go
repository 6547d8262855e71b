package handlers

import (
	"net/http"
	"strconv"

	"sueta_backend/internal/logger"
	"sueta_backend/internal/middleware"
	"sueta_backend/internal/models"
	"sueta_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// Общие шаблоны
const (
	templateMessage = "message.html"
)

type BaseHandler struct{}

func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// CurrentUser - пользователь текущей сессии (nil, если не вошел)
func CurrentUser(c *gin.Context) *models.User {
	return middleware.CurrentUser(c)
}

// Render добавляет к данным шаблона текущего пользователя
func (h *BaseHandler) Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["CurrentUser"] = CurrentUser(c)
	c.HTML(status, name, data)
}

// RenderMessage - страница с одной строкой текста
func (h *BaseHandler) RenderMessage(c *gin.Context, status int, message string) {
	h.Render(c, status, templateMessage, gin.H{"Message": message})
}

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		if appErr.HTTPCode < http.StatusInternalServerError {
			logger.CtxWarn(ctx, "Service error",
				"error", appErr.Message,
				"code", appErr.Code,
				"path", c.Request.URL.Path,
			)
		}
		apperrors.HandleError(c, appErr)
		return
	}

	logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
	apperrors.HandleError(c, apperrors.InternalError(err))
}

// ParseUserID читает :user_id; нечисловое значение - 404, как у несуществующего маршрута
func (h *BaseHandler) ParseUserID(c *gin.Context) (uint, bool) {
	value, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil || value == 0 {
		apperrors.HandleError(c, apperrors.NewNotFoundError("Страница не найдена"))
		return 0, false
	}
	return uint(value), true
}
