package config

import (
	"os"
	"strconv"
	"strings"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser     string
	DBPassword string
	DBHost     string
	DBName     string

	// AutoMigrate creates missing tables on startup.
	AutoMigrate bool

	JWTSecret    string
	AuthRequired bool

	CORSAllowedOrigins []string

	// ReportConcurrency bounds per-group detail fetches in aggregation reports.
	ReportConcurrency int
}

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

func LoadEnv() Env {
	return Env{
		AppAddr:            getenv("APP_ADDR", ":8080"),
		GinMode:            getenv("GIN_MODE", ""),
		DBUser:             getenv("DB_USER", "root"),
		DBPassword:         getenv("DB_PASSWORD", ""),
		DBHost:             getenv("DB_HOST", "127.0.0.1:3306"),
		DBName:             getenv("DB_NAME", "fleetops"),
		AutoMigrate:        getbool("DB_AUTO_MIGRATE", false),
		JWTSecret:          getenv("JWT_SECRET", ""),
		AuthRequired:       getbool("AUTH_REQUIRED", false),
		CORSAllowedOrigins: getlist("CORS_ALLOWED_ORIGINS", defaultOrigins),
		ReportConcurrency:  getint("REPORT_CONCURRENCY", 4),
	}
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getbool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getenv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getint(key string, fallback int) int {
	v, err := strconv.Atoi(getenv(key, ""))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getlist(key string, fallback []string) []string {
	raw := getenv(key, "")
	if raw == "" {
		return fallback
	}
	out := []string{}
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
