package handlers

import (
	"net/http"
	"strings"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/repositories"
	"fleetops/internal/services"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TripsBy serves GET /api/reports/trips-by-{vehicle,driver,client}?startDate&endDate.
func (h *Handler) TripsBy(d models.Dimension) gin.HandlerFunc {
	resource := "trips by " + string(d)
	return func(c *gin.Context) {
		rng, err := dateRange(c)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		groups, err := h.reports(c).AggregateTripsBy(c.Request.Context(), d, rng)
		if err != nil {
			respondFetchError(c, resource, err)
			return
		}
		c.JSON(http.StatusOK, groups)
	}
}

// GET /api/reports/financial?startDate&endDate
func (h *Handler) FinancialReport(c *gin.Context) {
	rng, err := dateRange(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	report, err := h.reports(c).BuildFinancialReport(c.Request.Context(), rng)
	if err != nil {
		respondFetchError(c, "financial report", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GET /api/reports/financial/pdf?startDate&endDate
func (h *Handler) FinancialReportPDF(c *gin.Context) {
	rng, err := dateRange(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	report, err := h.reports(c).BuildFinancialReport(c.Request.Context(), rng)
	if err != nil {
		respondFetchError(c, "financial report", err)
		return
	}
	data, filename, err := services.BuildFinancialReportPDF(report)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendFile(c, "application/pdf", filename, data)
}

// GET /api/reports/expenses?startDate&endDate&type
func (h *Handler) ExpenseReport(c *gin.Context) {
	rng, err := dateRange(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	f := repositories.ExpenseFilter{Range: rng}
	if raw := strings.TrimSpace(c.Query("type")); raw != "" {
		f.Type = models.ExpenseType(strings.ToUpper(raw))
		if !f.Type.Valid() {
			RespondDomainError(c, domain.ValidationError{Field: "type", Msg: "unknown expense type " + raw})
			return
		}
	}
	report, err := h.reports(c).BuildExpenseReport(c.Request.Context(), f)
	if err != nil {
		respondFetchError(c, "expenses report", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GET /api/reports/export/:dimension?startDate&endDate
func (h *Handler) ExportTripsXLSX(c *gin.Context) {
	d, ok := models.ParseDimension(c.Param("dimension"))
	if !ok {
		RespondDomainError(c, domain.ValidationError{Field: "dimension", Msg: "must be vehicle, driver or client"})
		return
	}
	rng, err := dateRange(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	groups, err := h.reports(c).AggregateTripsBy(c.Request.Context(), d, rng)
	if err != nil {
		respondFetchError(c, "trips by "+string(d), err)
		return
	}
	data, filename, err := services.BuildAggregationXLSX(d, services.Period{StartDate: rng.StartRaw, EndDate: rng.EndRaw}, groups)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendFile(c, xlsxContentType, filename, data)
}
