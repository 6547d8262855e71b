package handlers

import (
	"fmt"
	"net/http"

	"sueta_backend/internal/middleware"
	"sueta_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	reportService services.ReportService
}

func NewAdminHandler(base *BaseHandler, reportService services.ReportService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:   base,
		reportService: reportService,
	}
}

// RegisterRoutes: список в /event/admin/users, выгрузка в корне (/export_excel)
func (h *AdminHandler) RegisterRoutes(event *gin.RouterGroup, root *gin.RouterGroup) {
	event.GET("/admin/users", middleware.RequireAdmin(), h.ListUsers)
	root.GET("/export_excel", middleware.RequireAdmin(), h.ExportExcel)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	view, err := h.reportService.ListUsers(c.Request.Context(), CurrentUser(c), c.Query("status"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Render(c, http.StatusOK, "admin_users.html", gin.H{"View": view})
}

func (h *AdminHandler) ExportExcel(c *gin.Context) {
	file, err := h.reportService.ExportReport(c.Request.Context(), CurrentUser(c), c.Query("status"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
