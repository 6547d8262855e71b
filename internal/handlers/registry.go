package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler   *AuthHandler
	TicketHandler *TicketHandler
	AdminHandler  *AdminHandler
	PagesHandler  *PagesHandler
	HealthHandler *HealthHandler
}
