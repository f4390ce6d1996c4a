package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"purchase-manager/internal/export"
	"purchase-manager/internal/models"
	"purchase-manager/internal/views"

	"github.com/gin-gonic/gin"
)

//
// СПИСОК
//

func lotFilter(get func(string) string) models.LotFilter {
	return models.LotFilter{
		LotName:      strings.TrimSpace(get("lotName")),
		CustomerCode: strings.TrimSpace(get("customerCode")),
		CurrencyCode: strings.TrimSpace(get("currencyCode")),
	}
}

func (h *Handler) ListLots(c *gin.Context) {
	ctx := c.Request.Context()
	list := views.NewLotList(h.lots, lotFilter(c.Query))

	load := list.Load
	if c.Query("reset") != "" {
		load = list.Reset
	}
	if err := load(ctx); err != nil {
		h.log.WarnContext(ctx, "lots list", "error", err)
	}

	h.renderLots(c, list)
}

func (h *Handler) DeleteLot(c *gin.Context) {
	ctx := c.Request.Context()
	list := views.NewLotList(h.lots, lotFilter(c.PostForm))

	id, _ := strconv.ParseInt(c.PostForm("id"), 10, 64)
	if id <= 0 || c.PostForm("confirm") != "yes" {
		c.Redirect(http.StatusFound, list.URL())
		return
	}

	eff, err := list.Remove(ctx, id)
	if err != nil {
		h.log.WarnContext(ctx, "lot delete", "id", id, "error", err)
	} else {
		h.log.InfoContext(ctx, "lot deleted", "id", id)
	}
	redirect(c, eff)
}

func (h *Handler) ExportLots(c *gin.Context) {
	ctx := c.Request.Context()
	list := views.NewLotList(h.lots, lotFilter(c.Query))
	if err := list.Load(ctx); err != nil {
		h.log.WarnContext(ctx, "lots export", "error", err)
		redirect(c, views.Effect{Notice: list.Notice, Redirect: views.PathLots})
		return
	}

	buf, err := export.Lots(list.Rows)
	if err != nil {
		h.log.ErrorContext(ctx, "lots export", "error", err)
		redirect(c, views.Effect{
			Notice:   &views.Notice{Text: "Ошибка формирования файла", Error: true},
			Redirect: views.PathLots,
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.FileName("lots", time.Now())+`"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

func (h *Handler) renderLots(c *gin.Context, list *views.LotList) {
	render(c, http.StatusOK, "lots_list.html", gin.H{
		"Title":      "Лоты",
		"Section":    "lots",
		"list":       list,
		"currencies": models.Currencies(),
		"prompt":     views.LotDeletePrompt,
	}, list.Notice)
}

//
// СОЗДАНИЕ / РЕДАКТИРОВАНИЕ
//

func lotValues(c *gin.Context) views.LotValues {
	return views.LotValues{
		LotName:       strings.TrimSpace(c.PostForm("lotName")),
		CustomerCode:  strings.TrimSpace(c.PostForm("customerCode")),
		Price:         strings.TrimSpace(c.PostForm("price")),
		CurrencyCode:  strings.TrimSpace(c.PostForm("currencyCode")),
		NdsRate:       strings.TrimSpace(c.PostForm("ndsRate")),
		PlaceDelivery: strings.TrimSpace(c.PostForm("placeDelivery")),
		DateDelivery:  strings.TrimSpace(c.PostForm("dateDelivery")),
	}
}

// lotID разбирает :id; при ошибке уводит к списку с сообщением.
func (h *Handler) lotID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		redirect(c, views.Effect{
			Notice:   &views.Notice{Text: views.MsgLoadFailed, Error: true},
			Redirect: views.PathLots,
		})
		return 0, false
	}
	return id, true
}

func (h *Handler) ShowNewLot(c *gin.Context) {
	form := views.NewLotForm(h.lots, 0)
	form.Open(c.Request.Context())
	h.renderLotForm(c, http.StatusOK, form)
}

func (h *Handler) CreateLot(c *gin.Context) {
	form := views.NewLotForm(h.lots, 0)
	form.Values = lotValues(c)
	h.submitLot(c, form)
}

func (h *Handler) ShowEditLot(c *gin.Context) {
	id, ok := h.lotID(c)
	if !ok {
		return
	}

	form := views.NewLotForm(h.lots, id)
	if eff := form.Open(c.Request.Context()); eff.Redirect != "" {
		h.log.WarnContext(c.Request.Context(), "lot load failed", "id", id)
		redirect(c, eff)
		return
	}
	h.renderLotForm(c, http.StatusOK, form)
}

func (h *Handler) UpdateLot(c *gin.Context) {
	id, ok := h.lotID(c)
	if !ok {
		return
	}

	form := views.NewLotForm(h.lots, id)
	form.Values = lotValues(c)
	h.submitLot(c, form)
}

func (h *Handler) submitLot(c *gin.Context, form *views.LotForm) {
	eff := form.Submit(c.Request.Context())
	if eff.Redirect != "" {
		redirect(c, eff)
		return
	}

	status := http.StatusOK
	if len(form.Errors) > 0 || form.Notice != nil {
		status = http.StatusBadRequest
	}
	h.renderLotForm(c, status, form)
}

func (h *Handler) renderLotForm(c *gin.Context, status int, form *views.LotForm) {
	title := "Новый лот"
	if form.IsEdit() {
		title = "Редактирование лота"
	}
	render(c, status, "lots_form.html", gin.H{
		"Title":      title,
		"Section":    "lots",
		"form":       form,
		"currencies": models.Currencies(),
		"ndsRates":   models.NdsRates(),
	}, form.Notice)
}
