package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"backoffice/internal/console"
	"backoffice/internal/database"
	"backoffice/internal/export"
	"backoffice/internal/logging"
	"backoffice/internal/models"
	"backoffice/internal/monitoring"
	"backoffice/internal/status"
)

// ConsoleAPI serves the back-office console over HTTP
type ConsoleAPI struct {
	router  *gin.Engine
	svc     *console.Service
	log     *zap.Logger
	monitor *monitoring.Monitor
}

// NewConsoleAPI creates the router with every route registered
func NewConsoleAPI(svc *console.Service, logger *zap.Logger, monitor *monitoring.Monitor) *ConsoleAPI {
	if logger == nil {
		logger = zap.NewNop()
	}
	router := gin.New()
	router.Use(gin.Recovery(), logging.GinLogger(logger))

	a := &ConsoleAPI{
		router:  router,
		svc:     svc,
		log:     logger,
		monitor: monitor,
	}
	a.setupRoutes()
	return a
}

// Router returns the gin engine
func (a *ConsoleAPI) Router() *gin.Engine {
	return a.router
}

// setupRoutes configures all API endpoints
func (a *ConsoleAPI) setupRoutes() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "ok",
			"message":        "back-office console is running",
			"uptime_seconds": a.monitor.Uptime().Seconds(),
		})
	})

	v1 := a.router.Group("/api/v1")
	{
		v1.GET("/outlets", a.ListOutlets)
		v1.GET("/dashboard", a.GetDashboard)

		// Orders
		v1.GET("/orders", a.ListOrders)
		v1.POST("/orders", a.CreateOrder)
		v1.GET("/orders/counts", a.OrderCounts)
		v1.GET("/orders/export", a.ExportOrders)
		v1.GET("/orders/:id", a.GetOrder)
		v1.GET("/orders/:id/bill", a.GetBill)
		v1.GET("/orders/:id/transitions", a.GetOrderTransitions)
		v1.PATCH("/orders/:id/status", a.UpdateOrderStatus)

		// Reservations
		v1.GET("/reservations", a.ListReservations)
		v1.POST("/reservations", a.CreateReservation)
		v1.GET("/reservations/counts", a.ReservationCounts)
		v1.GET("/reservations/export", a.ExportReservations)
		v1.GET("/reservations/:id", a.GetReservation)
		v1.POST("/reservations/:id/confirm", a.reservationAction(a.svc.ConfirmReservation))
		v1.POST("/reservations/:id/seat", a.reservationAction(a.svc.SeatReservation))
		v1.POST("/reservations/:id/cancel", a.reservationAction(a.svc.CancelReservation))

		// Customers
		v1.GET("/customers", a.ListCustomers)
		v1.GET("/customers/summary", a.CustomerSummary)
		v1.GET("/customers/export", a.ExportCustomers)
		v1.GET("/customers/:id", a.GetCustomer)
	}
}

// respondError maps service errors onto status codes
func (a *ConsoleAPI) respondError(c *gin.Context, err error) {
	var (
		orderErr *status.TransitionError[models.OrderStatus]
		resErr   *status.TransitionError[models.ReservationStatus]
		valErr   *console.ValidationError
	)
	switch {
	case errors.As(err, &orderErr):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "from": orderErr.From, "to": orderErr.To, "allowed": orderErr.Allowed})
	case errors.As(err, &resErr):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "from": resErr.From, "to": resErr.To, "allowed": resErr.Allowed})
	case errors.Is(err, status.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &valErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": valErr.Field})
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		a.log.Error("request failed", zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// sendExport writes a CSV attachment, or 204 when nothing matched
func sendExport(c *gin.Context, e console.Export) {
	if e.Empty() {
		c.Status(http.StatusNoContent)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.SafeFilename(e.Filename)+`"`)
	c.Data(http.StatusOK, export.ContentType, []byte(e.Content))
}

func (a *ConsoleAPI) ListOutlets(c *gin.Context) {
	outlets, err := a.svc.Outlets()
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, outlets)
}

func (a *ConsoleAPI) GetDashboard(c *gin.Context) {
	d, err := a.svc.Dashboard(c.Query("outlet"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
