package handlers

import (
	"net/http"
	"strings"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/repositories"

	"github.com/gin-gonic/gin"
)

type expensePayload struct {
	Name   string    `json:"name" binding:"required"`
	Value  float64   `json:"value" binding:"required,gt=0"`
	Date   time.Time `json:"date" binding:"required"`
	Type   string    `json:"type" binding:"required,oneof=MAINTENANCE TOLL FUEL FOOD OTHER"`
	Notes  *string   `json:"notes"`
	TripID string    `json:"tripId" binding:"required"`
}

func (p expensePayload) toModel(id string) models.Expense {
	return models.Expense{
		ID:     id,
		Name:   strings.TrimSpace(p.Name),
		Value:  p.Value,
		Date:   p.Date,
		Type:   models.ExpenseType(p.Type),
		Notes:  trimPtr(p.Notes),
		TripID: p.TripID,
	}
}

// GET /api/expenses?startDate&endDate&type&tripId&vehicleId&driverId
func (h *Handler) ListExpenses(c *gin.Context) {
	rng, err := dateRange(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	f := repositories.ExpenseFilter{
		Range:     rng,
		Type:      models.ExpenseType(strings.ToUpper(strings.TrimSpace(c.Query("type")))),
		TripID:    strings.TrimSpace(c.Query("tripId")),
		VehicleID: strings.TrimSpace(c.Query("vehicleId")),
		DriverID:  strings.TrimSpace(c.Query("driverId")),
	}
	if f.Type != "" && !f.Type.Valid() {
		RespondDomainError(c, domain.ValidationError{Field: "type", Msg: "unknown expense type"})
		return
	}
	list, err := h.Store.FindExpenses(c.Request.Context(), f)
	if err != nil {
		respondFetchError(c, "expenses", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) GetExpense(c *gin.Context) {
	e, err := h.Store.Expenses.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondFetchError(c, "expense", err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *Handler) CreateExpense(c *gin.Context) {
	var p expensePayload
	if !BindJSONOrError(c, &p) {
		return
	}
	e, err := h.Store.Expenses.Create(c.Request.Context(), p.toModel(""))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *Handler) UpdateExpense(c *gin.Context) {
	var p expensePayload
	if !BindJSONOrError(c, &p) {
		return
	}
	e, err := h.Store.Expenses.Update(c.Request.Context(), p.toModel(c.Param("id")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *Handler) DeleteExpense(c *gin.Context) {
	if err := h.Store.Expenses.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
