package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Page - информационная страница без авторизации
type Page struct {
	Path     string
	Template string
	Title    string
}

// Pages - все статические страницы сайта
var Pages = []Page{
	{Path: "/", Template: "index.html", Title: "SUETA"},
	{Path: "/admins", Template: "admins.html", Title: "Организаторы"},
	{Path: "/become_sponsor", Template: "become_sponsor.html", Title: "Стать спонсором"},
	{Path: "/contacts", Template: "contacts.html", Title: "Контакты"},
	{Path: "/merch", Template: "merch.html", Title: "Мерч"},
	{Path: "/no_event", Template: "no_event.html", Title: "Мероприятий нет"},
	{Path: "/event/", Template: "event_page.html", Title: "Мероприятие"},
	{Path: "/event/party_menu", Template: "party_menu.html", Title: "Меню"},
	{Path: "/event/party_menu/food", Template: "menu_food.html", Title: "Еда"},
	{Path: "/event/party_menu/drink", Template: "menu_drink.html", Title: "Напитки"},
	{Path: "/event/party_menu/snack", Template: "menu_snack.html", Title: "Закуски"},
	{Path: "/event/party_menu/alcohol", Template: "menu_alcohol.html", Title: "Алкоголь"},
	{Path: "/event/party_menu/sous", Template: "menu_sous.html", Title: "Соусы"},
	{Path: "/event/party_menu/shisha", Template: "menu_shisha.html", Title: "Кальян"},
	{Path: "/event/party_menu/sets", Template: "menu_sets.html", Title: "Сеты"},
	{Path: "/event/terms", Template: "terms.html", Title: "Правила"},
}

type PagesHandler struct {
	*BaseHandler
	pages []Page
}

func NewPagesHandler(base *BaseHandler) *PagesHandler {
	return &PagesHandler{BaseHandler: base, pages: Pages}
}

func (h *PagesHandler) RegisterRoutes(r gin.IRoutes) {
	for _, page := range h.pages {
		r.GET(page.Path, h.render(page))
	}
}

func (h *PagesHandler) render(page Page) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.Render(c, http.StatusOK, page.Template, gin.H{"Title": page.Title})
	}
}
