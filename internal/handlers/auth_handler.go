package handlers

import (
	"net/http"
	"time"

	"sueta_backend/internal/logger"
	"sueta_backend/internal/middleware"
	"sueta_backend/internal/services"
	"sueta_backend/internal/services/dto"
	"sueta_backend/pkg/apperrors"
	"sueta_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// CookieConfig - параметры cookie сессии
type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	cookie      CookieConfig
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		cookie:      cookie,
	}
}

// RegisterRoutes регистрирует маршруты входа и регистрации на группе /event
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/register", h.RegisterForm)
	rg.POST("/register", h.Register)
	rg.GET("/login", h.LoginForm)
	rg.POST("/login", h.Login)

	session := rg.Group("")
	session.Use(middleware.RequireSession())
	{
		session.GET("/dashboard", h.Dashboard)
		session.GET("/logout", h.Logout)
	}
}

func (h *AuthHandler) RegisterForm(c *gin.Context) {
	h.Render(c, http.StatusOK, "register.html", gin.H{"Form": dto.RegisterRequest{}})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Неверные данные формы"))
		return
	}

	_, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		var appErr *apperrors.AppError
		if apperrors.As(err, &appErr) && appErr.HTTPCode < http.StatusInternalServerError {
			logger.CtxWarn(c.Request.Context(), "Registration rejected", "code", appErr.Code, "error", appErr.Message)
			req.Password = ""
			h.Render(c, appErr.HTTPCode, "register.html", gin.H{
				"Form":  req,
				"Error": appErr.Message,
			})
			return
		}
		h.HandleServiceError(c, err)
		return
	}

	c.Redirect(http.StatusFound, middleware.LoginPath)
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	h.Render(c, http.StatusOK, "login.html", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Неверные данные формы"))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrInvalidCredentials) {
			h.Render(c, http.StatusUnauthorized, "login.html", gin.H{
				"Error":    apperrors.ErrInvalidCredentials.Message,
				"Username": req.Username,
			})
			return
		}
		h.HandleServiceError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, result.Token, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.Secure, true)
	c.Redirect(http.StatusFound, "/event/dashboard")
}

func (h *AuthHandler) Dashboard(c *gin.Context) {
	h.Render(c, http.StatusOK, "dashboard.html", nil)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString(contextkeys.SessionTokenKey)
	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	c.Redirect(http.StatusFound, "/event/")
}
