// Package handlers: HTML-интерфейс поверх REST API.
package handlers

import (
	"log/slog"
	"net/http"

	"purchase-manager/internal/views"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	customers views.CustomerAPI
	lots      views.LotAPI
	log       *slog.Logger
}

func New(customers views.CustomerAPI, lots views.LotAPI, log *slog.Logger) *Handler {
	return &Handler{customers: customers, lots: lots, log: log}
}

// Register вешает страницы интерфейса на роутер.
func (h *Handler) Register(r gin.IRoutes) {
	// ГЛАВНАЯ (список контрагентов)
	r.GET("/", h.ListCustomers)

	// КОНТРАГЕНТЫ
	r.GET("/customers", h.ListCustomers)
	r.POST("/customers/delete", h.DeleteCustomer)
	r.GET("/customers/export", h.ExportCustomers)
	r.GET("/customers/new", h.ShowNewCustomer)
	r.POST("/customers/new", h.CreateCustomer)
	r.GET("/customers/edit/:code", h.ShowEditCustomer)
	r.POST("/customers/edit/:code", h.UpdateCustomer)

	// ЛОТЫ
	r.GET("/lots", h.ListLots)
	r.POST("/lots/delete", h.DeleteLot)
	r.GET("/lots/export", h.ExportLots)
	r.GET("/lots/new", h.ShowNewLot)
	r.POST("/lots/new", h.CreateLot)
	r.GET("/lots/edit/:id", h.ShowEditLot)
	r.POST("/lots/edit/:id", h.UpdateLot)
}

func NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "not_found.html", gin.H{"Title": "Страница не найдена", "Section": ""}, nil)
}
