package api

import (
	"net/http"
	"strconv"

	"purchase-manager/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListLots(c *gin.Context) {
	lots, err := h.lots.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "list lots")
		return
	}
	c.JSON(http.StatusOK, lots)
}

func (h *Handler) SearchLots(c *gin.Context) {
	var f models.LotFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		h.badRequest(c, "Некорректные параметры поиска")
		return
	}

	lots, err := h.lots.Search(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err, "search lots")
		return
	}
	c.JSON(http.StatusOK, lots)
}

func (h *Handler) GetLot(c *gin.Context) {
	id, ok := h.lotID(c)
	if !ok {
		return
	}

	lot, err := h.lots.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "get lot")
		return
	}
	c.JSON(http.StatusOK, lot)
}

func (h *Handler) CreateLot(c *gin.Context) {
	var lot models.Lot
	if err := c.ShouldBindJSON(&lot); err != nil {
		h.badRequest(c, "Некорректные данные")
		return
	}

	if err := h.lots.Create(c.Request.Context(), &lot); err != nil {
		h.fail(c, err, "create lot")
		return
	}

	h.log.InfoContext(c.Request.Context(), "lot created", "id", lot.ID, "name", lot.LotName)
	c.JSON(http.StatusCreated, lot)
}

func (h *Handler) UpdateLot(c *gin.Context) {
	id, ok := h.lotID(c)
	if !ok {
		return
	}

	var patch models.LotPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.badRequest(c, "Некорректные данные")
		return
	}

	lot, err := h.lots.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.fail(c, err, "update lot")
		return
	}

	h.log.InfoContext(c.Request.Context(), "lot updated", "id", id)
	c.JSON(http.StatusOK, lot)
}

func (h *Handler) DeleteLot(c *gin.Context) {
	id, ok := h.lotID(c)
	if !ok {
		return
	}

	if err := h.lots.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "delete lot")
		return
	}

	h.log.InfoContext(c.Request.Context(), "lot deleted", "id", id)
	c.Status(http.StatusNoContent)
}

func (h *Handler) lotID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.badRequest(c, "Некорректный ID лота")
		return 0, false
	}
	return id, true
}
