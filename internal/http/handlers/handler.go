package handlers

import (
	"database/sql"

	intconfig "fleetops/internal/config"
	"fleetops/internal/http/middleware"
	"fleetops/internal/repositories"
	"fleetops/internal/services"

	"github.com/gin-gonic/gin"
)

// Handler carries the dependencies every endpoint needs.
type Handler struct {
	DB    *sql.DB
	Store repositories.Store

	// Reports is the read side used by the report endpoints. New points it
	// at Store.
	Reports services.ReportStore

	Env intconfig.Env

	engine *gin.Engine
}

func New(db *sql.DB, env intconfig.Env) *Handler {
	store := repositories.NewStore(db)
	return &Handler{
		DB:      db,
		Store:   store,
		Reports: store,
		Env:     env,
	}
}

// SetEngine stores the active gin engine for /api/routes.
func (h *Handler) SetEngine(r *gin.Engine) {
	h.engine = r
}

func (h *Handler) reports(c *gin.Context) services.ReportsService {
	return services.ReportsService{
		Store:       h.Reports,
		Concurrency: h.Env.ReportConcurrency,
		RequestID:   middleware.GetRequestID(c),
	}
}
