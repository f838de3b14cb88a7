package handlers

import (
	"net/http"
	"strings"

	"fleetops/internal/domain/models"
	"fleetops/internal/utils"

	"github.com/gin-gonic/gin"
)

type driverPayload struct {
	Name    string  `json:"name" binding:"required"`
	CPF     string  `json:"cpf" binding:"required"`
	CNH     string  `json:"cnh" binding:"required"`
	Phone   string  `json:"phone" binding:"required"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address"`
	Status  string  `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED"`
}

func (p driverPayload) toModel(id string) models.Driver {
	status := models.DriverStatus(p.Status)
	if status == "" {
		status = models.DriverActive
	}
	return models.Driver{
		ID:      id,
		Name:    utils.NormalizeSpace(p.Name),
		CPF:     strings.TrimSpace(p.CPF),
		CNH:     strings.TrimSpace(p.CNH),
		Phone:   strings.TrimSpace(p.Phone),
		Email:   trimPtr(p.Email),
		Address: trimPtr(p.Address),
		Status:  status,
	}
}

// GET /api/drivers?q=&status=
func (h *Handler) ListDrivers(c *gin.Context) {
	list, err := h.Store.Drivers.List(c.Request.Context(), listFilter(c))
	if err != nil {
		respondFetchError(c, "drivers", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) GetDriver(c *gin.Context) {
	d, err := h.Store.Drivers.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondFetchError(c, "driver", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) CreateDriver(c *gin.Context) {
	var p driverPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	d, err := h.Store.Drivers.Create(c.Request.Context(), p.toModel(""))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *Handler) UpdateDriver(c *gin.Context) {
	var p driverPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	d, err := h.Store.Drivers.Update(c.Request.Context(), p.toModel(c.Param("id")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDriver(c *gin.Context) {
	if err := h.Store.Drivers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
