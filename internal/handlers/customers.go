package handlers

import (
	"net/http"
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

// customerFilter читает фильтр из строки запроса (GET) или из формы (POST).
func customerFilter(get func(string) string) models.CustomerFilter {
	f, err := models.ParseCustomerFilter(get("name"), get("inn"), get("isOrganization"))
	if err != nil {
		f.IsOrganization = nil
	}
	return f
}

func (h *Handler) ListCustomers(c *gin.Context) {
	ctx := c.Request.Context()
	list := views.NewCustomerList(h.customers, customerFilter(c.Query))

	load := list.Load
	if c.Query("reset") != "" {
		load = list.Reset
	}
	if err := load(ctx); err != nil {
		h.log.WarnContext(ctx, "customers list", "error", err)
	}

	h.renderCustomers(c, list)
}

// DeleteCustomer удаляет запись после подтверждения и уводит на список
// с тем же фильтром. Без подтверждения запрос на удаление не уходит.
func (h *Handler) DeleteCustomer(c *gin.Context) {
	ctx := c.Request.Context()
	list := views.NewCustomerList(h.customers, customerFilter(c.PostForm))

	code := strings.TrimSpace(c.PostForm("code"))
	if code == "" || c.PostForm("confirm") != "yes" {
		c.Redirect(http.StatusFound, list.URL())
		return
	}

	eff, err := list.Remove(ctx, code)
	if err != nil {
		h.log.WarnContext(ctx, "customer delete", "code", code, "error", err)
	} else {
		h.log.InfoContext(ctx, "customer deleted", "code", code)
	}
	redirect(c, eff)
}

func (h *Handler) ExportCustomers(c *gin.Context) {
	ctx := c.Request.Context()
	list := views.NewCustomerList(h.customers, customerFilter(c.Query))
	if err := list.Load(ctx); err != nil {
		h.log.WarnContext(ctx, "customers export", "error", err)
		redirect(c, views.Effect{Notice: list.Notice, Redirect: views.PathCustomers})
		return
	}

	buf, err := export.Customers(list.Rows)
	if err != nil {
		h.log.ErrorContext(ctx, "customers export", "error", err)
		redirect(c, views.Effect{
			Notice:   &views.Notice{Text: "Ошибка формирования файла", Error: true},
			Redirect: views.PathCustomers,
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.FileName("customers", time.Now())+`"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

func (h *Handler) renderCustomers(c *gin.Context, list *views.CustomerList) {
	render(c, http.StatusOK, "customers_list.html", gin.H{
		"Title":   "Контрагенты",
		"Section": "customers",
		"list":    list,
		"orgType": orgTypeValue(list.Filter.IsOrganization),
		"prompt":  views.CustomerDeletePrompt,
	}, list.Notice)
}

func orgTypeValue(v *bool) string {
	switch {
	case v == nil:
		return ""
	case *v:
		return "true"
	default:
		return "false"
	}
}

//
// СОЗДАНИЕ / РЕДАКТИРОВАНИЕ
//

func customerValues(c *gin.Context) views.CustomerValues {
	cv := views.CustomerValues{
		CustomerCode:          strings.TrimSpace(c.PostForm("customerCode")),
		CustomerName:          strings.TrimSpace(c.PostForm("customerName")),
		CustomerInn:           strings.TrimSpace(c.PostForm("customerInn")),
		CustomerKpp:           strings.TrimSpace(c.PostForm("customerKpp")),
		CustomerLegalAddress:  strings.TrimSpace(c.PostForm("customerLegalAddress")),
		CustomerPostalAddress: strings.TrimSpace(c.PostForm("customerPostalAddress")),
		CustomerEmail:         strings.TrimSpace(c.PostForm("customerEmail")),
		CustomerCodeMain:      strings.TrimSpace(c.PostForm("customerCodeMain")),
	}
	cv.SetOrganization(c.PostForm("isOrganization") != "")
	cv.SetPerson(c.PostForm("isPerson") != "")
	return cv
}

func (h *Handler) ShowNewCustomer(c *gin.Context) {
	form := views.NewCustomerForm(h.customers, "")
	form.Open(c.Request.Context())
	h.renderCustomerForm(c, http.StatusOK, form)
}

func (h *Handler) CreateCustomer(c *gin.Context) {
	form := views.NewCustomerForm(h.customers, "")
	form.Values = customerValues(c)
	h.submitCustomer(c, form)
}

func (h *Handler) ShowEditCustomer(c *gin.Context) {
	form := views.NewCustomerForm(h.customers, c.Param("code"))
	if eff := form.Open(c.Request.Context()); eff.Redirect != "" {
		h.log.WarnContext(c.Request.Context(), "customer load failed", "code", form.Code())
		redirect(c, eff)
		return
	}
	h.renderCustomerForm(c, http.StatusOK, form)
}

func (h *Handler) UpdateCustomer(c *gin.Context) {
	form := views.NewCustomerForm(h.customers, c.Param("code"))
	form.Values = customerValues(c)
	h.submitCustomer(c, form)
}

func (h *Handler) submitCustomer(c *gin.Context, form *views.CustomerForm) {
	eff := form.Submit(c.Request.Context())
	if eff.Redirect != "" {
		redirect(c, eff)
		return
	}

	status := http.StatusOK
	if len(form.Errors) > 0 || form.Notice != nil {
		status = http.StatusBadRequest
	}
	h.renderCustomerForm(c, status, form)
}

func (h *Handler) renderCustomerForm(c *gin.Context, status int, form *views.CustomerForm) {
	title := "Новый контрагент"
	if form.IsEdit() {
		title = "Редактирование контрагента"
	}
	render(c, status, "customers_form.html", gin.H{
		"Title":   title,
		"Section": "customers",
		"form":    form,
	}, form.Notice)
}
