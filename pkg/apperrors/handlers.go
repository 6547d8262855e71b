package apperrors

import (
	"net/http"

	"sueta_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - стандартный ответ об ошибке (JSON)
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// Шаблоны страниц ошибок
const (
	TemplateForbidden = "403.html"
	TemplateNotFound  = "404.html"
	TemplateError     = "error.html"
)

// GinErrorHandler - обработчик ошибок для Gin
type GinErrorHandler struct {
	Debug bool
}

// HandleGinError отдает HTML-страницу ошибки или JSON, если клиент просит JSON
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= http.StatusInternalServerError {
		logger.CtxWithError(c.Request.Context(), "Server error", err, "path", c.Request.URL.Path)
		if !h.Debug {
			appErr = New(CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)
		}
	}

	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
		return
	}

	c.HTML(appErr.HTTPCode, templateFor(appErr.HTTPCode), gin.H{
		"Code":    appErr.HTTPCode,
		"Message": appErr.Message,
	})
	c.Abort()
}

func templateFor(status int) string {
	switch status {
	case http.StatusForbidden:
		return TemplateForbidden
	case http.StatusNotFound:
		return TemplateNotFound
	default:
		return TemplateError
	}
}

var defaultHandler = &GinErrorHandler{}

// SetDebug включает вывод деталей внутренних ошибок (только для development)
func SetDebug(debug bool) {
	defaultHandler = &GinErrorHandler{Debug: debug}
}

// HandleError - быстрая функция-помощник для Gin
func HandleError(c *gin.Context, err error) {
	defaultHandler.HandleGinError(c, err)
}
