package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/http/middleware"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"

	"github.com/gin-gonic/gin"
)

type tripPayload struct {
	Origin           string     `json:"origin" binding:"required"`
	Destination      string     `json:"destination" binding:"required"`
	DepartureDate    time.Time  `json:"departureDate" binding:"required"`
	ReturnDate       *time.Time `json:"returnDate"`
	InitialKilometer *int       `json:"initialKilometer" binding:"omitempty,min=0"`
	FinalKilometer   *int       `json:"finalKilometer" binding:"omitempty,min=0"`
	TripValue        *float64   `json:"tripValue" binding:"omitempty,min=0"`
	Status           string     `json:"status" binding:"omitempty,oneof=SCHEDULED IN_PROGRESS COMPLETED CANCELLED"`
	Notes            *string    `json:"notes"`
	VehicleID        string     `json:"vehicleId" binding:"required"`
	DriverID         string     `json:"driverId" binding:"required"`
	ClientID         string     `json:"clientId" binding:"required"`
}

func (p tripPayload) toModel(id string) (models.Trip, error) {
	if p.ReturnDate != nil && p.ReturnDate.Before(p.DepartureDate) {
		return models.Trip{}, domain.ValidationError{Field: "returnDate", Msg: "must not be before departureDate"}
	}
	if p.InitialKilometer != nil && p.FinalKilometer != nil && *p.FinalKilometer < *p.InitialKilometer {
		return models.Trip{}, domain.ValidationError{Field: "finalKilometer", Msg: "must not be below initialKilometer"}
	}
	status := models.TripStatus(p.Status)
	if status == "" {
		status = models.TripScheduled
	}
	return models.Trip{
		ID:               id,
		Origin:           utils.NormalizeSpace(p.Origin),
		Destination:      utils.NormalizeSpace(p.Destination),
		DepartureDate:    p.DepartureDate,
		ReturnDate:       p.ReturnDate,
		InitialKilometer: p.InitialKilometer,
		FinalKilometer:   p.FinalKilometer,
		TripValue:        p.TripValue,
		Status:           status,
		Notes:            trimPtr(p.Notes),
		VehicleID:        p.VehicleID,
		DriverID:         p.DriverID,
		ClientID:         p.ClientID,
	}, nil
}

// GET /api/trips?startDate&endDate&vehicleId&driverId&clientId&status
func (h *Handler) ListTrips(c *gin.Context) {
	rng, err := dateRange(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	f := repositories.TripFilter{
		Range:         rng,
		VehicleID:     strings.TrimSpace(c.Query("vehicleId")),
		DriverID:      strings.TrimSpace(c.Query("driverId")),
		ClientID:      strings.TrimSpace(c.Query("clientId")),
		Status:        models.TripStatus(strings.ToUpper(strings.TrimSpace(c.Query("status")))),
		WithExpenses:  true,
		WithRelations: true,
	}
	if f.Status != "" && !f.Status.Valid() {
		RespondDomainError(c, domain.ValidationError{Field: "status", Msg: "unknown trip status"})
		return
	}
	trips, err := h.Store.FindTrips(c.Request.Context(), f)
	if err != nil {
		respondFetchError(c, "trips", err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

func (h *Handler) GetTrip(c *gin.Context) {
	ctx := c.Request.Context()
	t, err := h.Store.Trips.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondFetchError(c, "trip", err)
		return
	}
	if t, err = h.withExpenses(ctx, t); err != nil {
		respondFetchError(c, "trip", err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) withExpenses(ctx context.Context, t models.Trip) (models.Trip, error) {
	byTrip, err := h.Store.Expenses.ListByTripIDs(ctx, []string{t.ID})
	if err != nil {
		return models.Trip{}, err
	}
	t.Expenses = byTrip[t.ID]
	if t.Expenses == nil {
		t.Expenses = []models.Expense{}
	}
	return t, nil
}

func (h *Handler) CreateTrip(c *gin.Context) {
	var p tripPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	t, err := p.toModel("")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	t.UserID = middleware.GetUserID(c)
	t, err = h.Store.Trips.Create(c.Request.Context(), t)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	t.Expenses = []models.Expense{}
	c.JSON(http.StatusCreated, t)
}

func (h *Handler) UpdateTrip(c *gin.Context) {
	var p tripPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	t, err := p.toModel(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	t, err = h.Store.Trips.Update(c.Request.Context(), t)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if t, err = h.withExpenses(c.Request.Context(), t); err != nil {
		respondFetchError(c, "trip", err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) DeleteTrip(c *gin.Context) {
	if err := h.Store.Trips.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
