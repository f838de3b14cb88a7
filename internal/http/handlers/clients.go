package handlers

import (
	"net/http"
	"strings"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/utils"

	"github.com/gin-gonic/gin"
)

type clientPayload struct {
	Name    string  `json:"name" binding:"required"`
	CPF     *string `json:"cpf"`
	CNPJ    *string `json:"cnpj"`
	Phone   string  `json:"phone" binding:"required"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address"`
	Status  string  `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE BLOCKED"`
}

func (p clientPayload) toModel(id string) (models.Client, error) {
	cl := models.Client{
		ID:      id,
		Name:    utils.NormalizeSpace(p.Name),
		CPF:     trimPtr(p.CPF),
		CNPJ:    trimPtr(p.CNPJ),
		Phone:   strings.TrimSpace(p.Phone),
		Email:   trimPtr(p.Email),
		Address: trimPtr(p.Address),
		Status:  models.ClientStatus(p.Status),
	}
	if cl.Status == "" {
		cl.Status = models.ClientActive
	}
	if cl.CPF == nil && cl.CNPJ == nil {
		return models.Client{}, domain.ValidationError{Field: "cpf", Msg: "cpf or cnpj is required"}
	}
	return cl, nil
}

// GET /api/clients?q=&status=
func (h *Handler) ListClients(c *gin.Context) {
	list, err := h.Store.Clients.List(c.Request.Context(), listFilter(c))
	if err != nil {
		respondFetchError(c, "clients", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) GetClient(c *gin.Context) {
	cl, err := h.Store.Clients.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondFetchError(c, "client", err)
		return
	}
	c.JSON(http.StatusOK, cl)
}

func (h *Handler) CreateClient(c *gin.Context) {
	var p clientPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	cl, err := p.toModel("")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	cl, err = h.Store.Clients.Create(c.Request.Context(), cl)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cl)
}

func (h *Handler) UpdateClient(c *gin.Context) {
	var p clientPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	cl, err := p.toModel(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	cl, err = h.Store.Clients.Update(c.Request.Context(), cl)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cl)
}

func (h *Handler) DeleteClient(c *gin.Context) {
	if err := h.Store.Clients.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
