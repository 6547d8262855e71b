package routes

import (
	"net/http"

	"sueta_backend/internal/handlers"
	"sueta_backend/internal/logger"
	"sueta_backend/pkg/apperrors"
	"sueta_backend/web"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты.
// staticDir - каталог локального хранилища, раздается как /static (пусто, если хранилище внешнее).
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	staticDir string,
) {
	ginRouter.StaticFS("/assets", http.FS(web.Assets()))
	if staticDir != "" {
		ginRouter.Static("/static", staticDir)
		logger.Info("Serving local storage", "dir", staticDir)
	}

	appHandlers.HealthHandler.RegisterRoutes(ginRouter)
	appHandlers.PagesHandler.RegisterRoutes(ginRouter)

	root := &ginRouter.RouterGroup
	event := ginRouter.Group("/event")
	{
		appHandlers.AuthHandler.RegisterRoutes(event)
		appHandlers.TicketHandler.RegisterRoutes(event)
		appHandlers.AdminHandler.RegisterRoutes(event, root)
	}

	ginRouter.NoRoute(func(c *gin.Context) {
		apperrors.HandleError(c, apperrors.NewNotFoundError("Страница не найдена"))
	})
}
