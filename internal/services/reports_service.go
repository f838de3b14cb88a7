package services

import (
	"context"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/repositories"
)

// ReportStore is the read side of the entity store the reports depend on.
type ReportStore interface {
	GroupTrips(ctx context.Context, d models.Dimension, rng domain.DateRange) ([]repositories.TripGroup, error)
	FindTrips(ctx context.Context, f repositories.TripFilter) ([]models.Trip, error)
	FindExpenses(ctx context.Context, f repositories.ExpenseFilter) ([]models.Expense, error)
	FindEntity(ctx context.Context, d models.Dimension, id string) (models.Entity, error)
}

const defaultConcurrency = 4

// ReportsService computes trip aggregations and financial summaries.
// It never writes and keeps no state between calls.
type ReportsService struct {
	Store ReportStore

	// Concurrency bounds per-group detail fetches; <= 0 uses the default.
	Concurrency int
	RequestID   string
}

// Period echoes the requested window.
type Period struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func periodOf(rng domain.DateRange) Period {
	return Period{StartDate: rng.StartRaw, EndDate: rng.EndRaw}
}

func (s ReportsService) limit() int {
	if s.Concurrency > 0 {
		return s.Concurrency
	}
	return defaultConcurrency
}
