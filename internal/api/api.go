// Package api: REST-эндпоинты каталогов контрагентов и лотов.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"purchase-manager/internal/models"
	"purchase-manager/internal/validation"

	"github.com/gin-gonic/gin"
)

type CustomerStore interface {
	List(ctx context.Context) ([]models.Customer, error)
	Search(ctx context.Context, f models.CustomerFilter) ([]models.Customer, error)
	Get(ctx context.Context, code string) (*models.Customer, error)
	Create(ctx context.Context, c *models.Customer) error
	Update(ctx context.Context, code string, patch models.CustomerPatch) (*models.Customer, error)
	Delete(ctx context.Context, code string) error
}

type LotStore interface {
	List(ctx context.Context) ([]models.Lot, error)
	Search(ctx context.Context, f models.LotFilter) ([]models.Lot, error)
	Get(ctx context.Context, id int64) (*models.Lot, error)
	Create(ctx context.Context, l *models.Lot) error
	Update(ctx context.Context, id int64, patch models.LotPatch) (*models.Lot, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	customers CustomerStore
	lots      LotStore
	log       *slog.Logger
}

func NewHandler(customers CustomerStore, lots LotStore, log *slog.Logger) *Handler {
	return &Handler{customers: customers, lots: lots, log: log}
}

// Register вешает эндпоинты на группу (обычно /api).
func (h *Handler) Register(g *gin.RouterGroup) {
	customers := g.Group("/customers")
	customers.GET("", h.ListCustomers)
	customers.GET("/search", h.SearchCustomers)
	customers.GET("/:code", h.GetCustomer)
	customers.POST("", h.CreateCustomer)
	customers.PUT("/:code", h.UpdateCustomer)
	customers.DELETE("/:code", h.DeleteCustomer)

	lots := g.Group("/lots")
	lots.GET("", h.ListLots)
	lots.GET("/search", h.SearchLots)
	lots.GET("/:id", h.GetLot)
	lots.POST("", h.CreateLot)
	lots.PUT("/:id", h.UpdateLot)
	lots.DELETE("/:id", h.DeleteLot)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// fail переводит ошибку хранилища в статус и тело {"error": "..."}.
func (h *Handler) fail(c *gin.Context, err error, op string) {
	ctx := c.Request.Context()

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		h.log.InfoContext(ctx, op+" rejected", "fields", verrs.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": verrs.Error(), "fields": verrs})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrAlreadyExists), errors.Is(err, models.ErrInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrInUse):
		status = http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}

	msg := "Внутренняя ошибка сервера"
	var derr *models.Error
	if errors.As(err, &derr) {
		msg = derr.Msg
	}

	if status >= http.StatusInternalServerError {
		h.log.ErrorContext(ctx, op+" failed", "error", err, "path", c.Request.URL.Path)
	} else {
		h.log.WarnContext(ctx, op+" rejected", "error", err, "status", status)
	}
	c.JSON(status, gin.H{"error": msg})
}
