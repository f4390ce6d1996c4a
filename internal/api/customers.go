package api

import (
	"net/http"

	"purchase-manager/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.customers.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "list customers")
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *Handler) SearchCustomers(c *gin.Context) {
	f, err := models.ParseCustomerFilter(c.Query("name"), c.Query("inn"), c.Query("isOrganization"))
	if err != nil {
		h.badRequest(c, "Некорректные параметры поиска")
		return
	}

	customers, err := h.customers.Search(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err, "search customers")
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *Handler) GetCustomer(c *gin.Context) {
	customer, err := h.customers.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.fail(c, err, "get customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) CreateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		h.badRequest(c, "Некорректные данные")
		return
	}

	if err := h.customers.Create(c.Request.Context(), &customer); err != nil {
		h.fail(c, err, "create customer")
		return
	}

	h.log.InfoContext(c.Request.Context(), "customer created", "code", customer.CustomerCode)
	c.JSON(http.StatusCreated, customer)
}

func (h *Handler) UpdateCustomer(c *gin.Context) {
	code := c.Param("code")

	var patch models.CustomerPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.badRequest(c, "Некорректные данные")
		return
	}

	customer, err := h.customers.Update(c.Request.Context(), code, patch)
	if err != nil {
		h.fail(c, err, "update customer")
		return
	}

	h.log.InfoContext(c.Request.Context(), "customer updated", "code", code)
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) DeleteCustomer(c *gin.Context) {
	code := c.Param("code")
	if err := h.customers.Delete(c.Request.Context(), code); err != nil {
		h.fail(c, err, "delete customer")
		return
	}

	h.log.InfoContext(c.Request.Context(), "customer deleted", "code", code)
	c.Status(http.StatusNoContent)
}
