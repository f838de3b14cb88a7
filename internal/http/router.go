package api

import (
	"database/sql"
	"log"
	stdhttp "net/http"

	intconfig "fleetops/internal/config"
	"fleetops/internal/domain/models"
	h "fleetops/internal/http/handlers"
	"fleetops/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, db *sql.DB) *gin.Engine {
	return Mount(env, h.New(db, env))
}

// Mount wires handler into a fresh engine. Tests call it with a handler
// whose stores are fakes.
func Mount(env intconfig.Env, handler *h.Handler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", handler.Health)
		api.GET("/db-check", handler.DBCheck)
		api.GET("/routes", handler.Routes)

		secured := api.Group("", middleware.Auth(env.JWTSecret, env.AuthRequired))
		writes := []gin.HandlerFunc{}
		if env.AuthRequired {
			writes = append(writes, middleware.RequireRoles(string(models.RoleAdmin), string(models.RoleManager)))
		}

		// Reports
		reports := secured.Group("/reports")
		reports.GET("/trips-by-vehicle", handler.TripsBy(models.DimensionVehicle))
		reports.GET("/trips-by-driver", handler.TripsBy(models.DimensionDriver))
		reports.GET("/trips-by-client", handler.TripsBy(models.DimensionClient))
		reports.GET("/financial", handler.FinancialReport)
		reports.GET("/financial/pdf", handler.FinancialReportPDF)
		reports.GET("/expenses", handler.ExpenseReport)
		reports.GET("/export/:dimension", handler.ExportTripsXLSX)

		mountCRUD(secured.Group("/vehicles"), writes, crud{handler.ListVehicles, handler.GetVehicle, handler.CreateVehicle, handler.UpdateVehicle, handler.DeleteVehicle})
		mountCRUD(secured.Group("/drivers"), writes, crud{handler.ListDrivers, handler.GetDriver, handler.CreateDriver, handler.UpdateDriver, handler.DeleteDriver})
		mountCRUD(secured.Group("/clients"), writes, crud{handler.ListClients, handler.GetClient, handler.CreateClient, handler.UpdateClient, handler.DeleteClient})
		mountCRUD(secured.Group("/trips"), writes, crud{handler.ListTrips, handler.GetTrip, handler.CreateTrip, handler.UpdateTrip, handler.DeleteTrip})
		mountCRUD(secured.Group("/expenses"), writes, crud{handler.ListExpenses, handler.GetExpense, handler.CreateExpense, handler.UpdateExpense, handler.DeleteExpense})
	}

	handler.SetEngine(r)
	return r
}

type crud struct {
	list, get, create, update, remove gin.HandlerFunc
}

func mountCRUD(g *gin.RouterGroup, writes []gin.HandlerFunc, c crud) {
	g.GET("", c.list)
	g.GET("/:id", c.get)
	g.POST("", guarded(writes, c.create)...)
	g.PUT("/:id", guarded(writes, c.update)...)
	g.DELETE("/:id", guarded(writes, c.remove)...)
}

func guarded(writes []gin.HandlerFunc, last gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(writes)+1)
	out = append(out, writes...)
	return append(out, last)
}
