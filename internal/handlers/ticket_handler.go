package handlers

import (
	"fmt"
	"net/http"

	"sueta_backend/internal/middleware"
	"sueta_backend/internal/services"
	"sueta_backend/internal/services/dto"
	"sueta_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const alreadyPurchasedMessage = "Билет уже куплен."

type TicketHandler struct {
	*BaseHandler
	ticketService services.TicketService
}

func NewTicketHandler(base *BaseHandler, ticketService services.TicketService) *TicketHandler {
	return &TicketHandler{
		BaseHandler:   base,
		ticketService: ticketService,
	}
}

func (h *TicketHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/buy_ticket", middleware.RequireSession(), h.BuyTicket)

	admin := rg.Group("")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/ticket_status/:user_id", h.TicketStatus)
		admin.POST("/confirm_payment/:user_id", h.ConfirmPayment)
		admin.POST("/reject_payment/:user_id", h.RejectPayment)
	}
}

func (h *TicketHandler) BuyTicket(c *gin.Context) {
	result, err := h.ticketService.BuyTicket(c.Request.Context(), CurrentUser(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	switch result.Outcome {
	case dto.TicketIneligible:
		h.Render(c, http.StatusOK, "underage.html", gin.H{"Ticket": result})
	case dto.TicketAlreadyPurchased:
		h.RenderMessage(c, http.StatusOK, alreadyPurchasedMessage)
	default:
		h.Render(c, http.StatusOK, "buy_ticket.html", gin.H{"Ticket": result})
	}
}

func (h *TicketHandler) TicketStatus(c *gin.Context) {
	userID, ok := h.ParseUserID(c)
	if !ok {
		return
	}

	user, err := h.ticketService.GetTicketStatus(c.Request.Context(), CurrentUser(c), userID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			h.RenderMessage(c, http.StatusOK, apperrors.ErrUserNotFound.Message)
			return
		}
		h.HandleServiceError(c, err)
		return
	}

	h.Render(c, http.StatusOK, "ticket_status.html", gin.H{"User": user})
}

func (h *TicketHandler) ConfirmPayment(c *gin.Context) {
	userID, ok := h.ParseUserID(c)
	if !ok {
		return
	}

	if err := h.ticketService.ConfirmPayment(c.Request.Context(), CurrentUser(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Redirect(http.StatusFound, statusPagePath(userID))
}

func (h *TicketHandler) RejectPayment(c *gin.Context) {
	userID, ok := h.ParseUserID(c)
	if !ok {
		return
	}

	if err := h.ticketService.RejectPayment(c.Request.Context(), CurrentUser(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Redirect(http.StatusFound, statusPagePath(userID))
}

func statusPagePath(userID uint) string {
	return fmt.Sprintf("/event/ticket_status/%d", userID)
}
