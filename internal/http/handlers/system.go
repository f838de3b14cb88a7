package handlers

import (
	"net/http"

	intconfig "fleetops/internal/config"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "fleetops backend running"})
}

func (h *Handler) DBCheck(c *gin.Context) {
	if err := intconfig.PingDB(c.Request.Context(), h.DB); err != nil {
		respondError(c, http.StatusInternalServerError, "db_unavailable", "database ping failed: "+err.Error(), nil)
		return
	}
	var trips int
	if err := h.DB.QueryRowContext(c.Request.Context(), "SELECT COUNT(*) FROM trips").Scan(&trips); err != nil {
		respondError(c, http.StatusInternalServerError, "db_unavailable", "database query failed: "+err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "trips_in_db": trips})
}

func (h *Handler) Routes(c *gin.Context) {
	if h.engine == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router not ready"})
		return
	}

	routes := h.engine.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
