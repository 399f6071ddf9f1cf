package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backoffice/internal/loyalty"
)

func (a *ConsoleAPI) ListCustomers(c *gin.Context) {
	key, err := loyalty.ParseSortKey(c.Query("sort"))
	if err != nil {
		badRequest(c, err)
		return
	}
	customers, err := a.svc.Customers(c.Query("q"), key)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (a *ConsoleAPI) CustomerSummary(c *gin.Context) {
	s, err := a.svc.CustomerSummary()
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (a *ConsoleAPI) GetCustomer(c *gin.Context) {
	cust, err := a.svc.Customer(c.Param("id"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}

func (a *ConsoleAPI) ExportCustomers(c *gin.Context) {
	key, err := loyalty.ParseSortKey(c.Query("sort"))
	if err != nil {
		badRequest(c, err)
		return
	}
	e, err := a.svc.ExportCustomers(c.Query("q"), key)
	if err != nil {
		a.respondError(c, err)
		return
	}
	sendExport(c, e)
}
