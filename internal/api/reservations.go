package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backoffice/internal/console"
	"backoffice/internal/filter"
	"backoffice/internal/models"
)

// reservationFilter reads status, bucket, slot and q
func reservationFilter(c *gin.Context) (filter.ReservationFilter, error) {
	f := filter.ReservationFilter{Query: c.Query("q")}
	if raw := c.Query("status"); raw != "" {
		s, err := models.ParseReservationStatus(raw)
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
	if raw := c.Query("slot"); raw != "" {
		slot, err := filter.ParseTimeSlot(raw)
		if err != nil {
			return f, err
		}
		f.Slot = slot
	}
	return f, nil
}

func (a *ConsoleAPI) ListReservations(c *gin.Context) {
	f, err := reservationFilter(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	rs, err := a.svc.Reservations(f)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rs)
}

func (a *ConsoleAPI) CreateReservation(c *gin.Context) {
	var in console.NewReservation
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	r, err := a.svc.CreateReservation(in)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (a *ConsoleAPI) GetReservation(c *gin.Context) {
	r, err := a.svc.Reservation(c.Param("id"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// reservationAction adapts a confirm, seat or cancel operation
func (a *ConsoleAPI) reservationAction(action func(id string) (models.Reservation, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, err := action(c.Param("id"))
		if err != nil {
			a.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, r)
	}
}

func (a *ConsoleAPI) ReservationCounts(c *gin.Context) {
	counts, err := a.svc.ReservationCounts()
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (a *ConsoleAPI) ExportReservations(c *gin.Context) {
	f, err := reservationFilter(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	e, err := a.svc.ExportReservations(f)
	if err != nil {
		a.respondError(c, err)
		return
	}
	sendExport(c, e)
}
