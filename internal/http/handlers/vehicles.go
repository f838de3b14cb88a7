package handlers

import (
	"net/http"
	"strings"

	"fleetops/internal/domain/models"

	"github.com/gin-gonic/gin"
)

type vehiclePayload struct {
	Plate    string `json:"plate" binding:"required"`
	Brand    string `json:"brand" binding:"required"`
	Model    string `json:"model" binding:"required"`
	Year     int    `json:"year" binding:"required,min=1950,max=2100"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
	Status   string `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE MAINTENANCE"`
}

func (p vehiclePayload) toModel(id string) models.Vehicle {
	status := models.VehicleStatus(p.Status)
	if status == "" {
		status = models.VehicleActive
	}
	return models.Vehicle{
		ID:       id,
		Plate:    strings.ToUpper(strings.TrimSpace(p.Plate)),
		Brand:    strings.TrimSpace(p.Brand),
		Model:    strings.TrimSpace(p.Model),
		Year:     p.Year,
		Capacity: p.Capacity,
		Status:   status,
	}
}

// GET /api/vehicles?q=&status=
func (h *Handler) ListVehicles(c *gin.Context) {
	list, err := h.Store.Vehicles.List(c.Request.Context(), listFilter(c))
	if err != nil {
		respondFetchError(c, "vehicles", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) GetVehicle(c *gin.Context) {
	v, err := h.Store.Vehicles.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondFetchError(c, "vehicle", err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *Handler) CreateVehicle(c *gin.Context) {
	var p vehiclePayload
	if !BindJSONOrError(c, &p) {
		return
	}
	v, err := h.Store.Vehicles.Create(c.Request.Context(), p.toModel(""))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *Handler) UpdateVehicle(c *gin.Context) {
	var p vehiclePayload
	if !BindJSONOrError(c, &p) {
		return
	}
	v, err := h.Store.Vehicles.Update(c.Request.Context(), p.toModel(c.Param("id")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *Handler) DeleteVehicle(c *gin.Context) {
	if err := h.Store.Vehicles.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
