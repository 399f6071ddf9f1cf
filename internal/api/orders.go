package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"backoffice/internal/console"
	"backoffice/internal/filter"
	"backoffice/internal/models"
)

// orderFilter reads outlet, type, status, bucket and q
func orderFilter(c *gin.Context) (filter.OrderFilter, error) {
	f := filter.OrderFilter{
		Outlet: c.Query("outlet"),
		Query:  c.Query("q"),
	}
	if raw := c.Query("type"); raw != "" {
		t, err := models.ParseOrderType(raw)
		if err != nil {
			return f, err
		}
		f.Type = t
	}
	if raw := c.Query("status"); raw != "" {
		s, err := models.ParseOrderStatus(raw)
		if err != nil {
			return f, err
		}
		f.Status = s
	}
	b, err := filter.ParseDateBucket(c.Query("bucket"))
	if err != nil {
		return f, err
	}
	f.Bucket = b
	return f, nil
}

// activeFiltersHeader carries the number of narrowing predicates applied
const activeFiltersHeader = "X-Active-Filters"

func (a *ConsoleAPI) ListOrders(c *gin.Context) {
	f, err := orderFilter(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	orders, err := a.svc.Orders(f)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.Header(activeFiltersHeader, strconv.Itoa(f.Active()))
	c.JSON(http.StatusOK, orders)
}

func (a *ConsoleAPI) CreateOrder(c *gin.Context) {
	var in console.NewOrder
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	o, err := a.svc.CreateOrder(in)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (a *ConsoleAPI) GetOrder(c *gin.Context) {
	o, err := a.svc.Order(c.Param("id"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (a *ConsoleAPI) GetBill(c *gin.Context) {
	b, err := a.svc.Bill(c.Param("id"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (a *ConsoleAPI) GetOrderTransitions(c *gin.Context) {
	next, err := a.svc.OrderTransitions(c.Param("id"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "allowed": next})
}

type statusUpdate struct {
	Status string `json:"status" binding:"required"`
}

func (a *ConsoleAPI) UpdateOrderStatus(c *gin.Context) {
	var body statusUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	target, err := models.ParseOrderStatus(body.Status)
	if err != nil {
		badRequest(c, err)
		return
	}
	o, err := a.svc.ChangeOrderStatus(c.Param("id"), target)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (a *ConsoleAPI) OrderCounts(c *gin.Context) {
	counts, err := a.svc.OrderCounts(c.Query("outlet"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (a *ConsoleAPI) ExportOrders(c *gin.Context) {
	f, err := orderFilter(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	e, err := a.svc.ExportOrders(f)
	if err != nil {
		a.respondError(c, err)
		return
	}
	sendExport(c, e)
}
