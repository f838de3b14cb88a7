package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/repositories"
)

// memStore is an in-memory ReportStore for service tests.
type memStore struct {
	trips    []models.Trip
	expenses []models.Expense
	entities map[models.Dimension]map[string]models.Entity

	failGroup    error
	failTrips    error
	failExpenses error
	failEntity   error

	mu         sync.Mutex
	tripCalls  int
	groupCalls int
}

func newMemStore() *memStore {
	return &memStore{entities: map[models.Dimension]map[string]models.Entity{
		models.DimensionVehicle: {},
		models.DimensionDriver:  {},
		models.DimensionClient:  {},
	}}
}

func (m *memStore) addVehicle(v models.Vehicle) { m.entities[models.DimensionVehicle][v.ID] = v }
func (m *memStore) addDriver(d models.Driver)   { m.entities[models.DimensionDriver][d.ID] = d }
func (m *memStore) addClient(c models.Client)   { m.entities[models.DimensionClient][c.ID] = c }

func (m *memStore) GroupTrips(_ context.Context, d models.Dimension, rng domain.DateRange) ([]repositories.TripGroup, error) {
	m.mu.Lock()
	m.groupCalls++
	m.mu.Unlock()
	if m.failGroup != nil {
		return nil, m.failGroup
	}
	idx := map[string]int{}
	out := []repositories.TripGroup{}
	for _, t := range m.trips {
		if !rng.Contains(t.DepartureDate) {
			continue
		}
		key := t.ForeignKey(d)
		i, ok := idx[key]
		if !ok {
			i = len(out)
			idx[key] = i
			out = append(out, repositories.TripGroup{Key: key})
		}
		out[i].Count++
		out[i].SumTripValue += t.Value()
	}
	return out, nil
}

func (m *memStore) FindTrips(_ context.Context, f repositories.TripFilter) ([]models.Trip, error) {
	m.mu.Lock()
	m.tripCalls++
	m.mu.Unlock()
	if m.failTrips != nil {
		return nil, m.failTrips
	}
	out := []models.Trip{}
	for _, t := range m.trips {
		if !f.Range.Contains(t.DepartureDate) {
			continue
		}
		if (f.VehicleID != "" && t.VehicleID != f.VehicleID) ||
			(f.DriverID != "" && t.DriverID != f.DriverID) ||
			(f.ClientID != "" && t.ClientID != f.ClientID) {
			continue
		}
		if f.WithExpenses {
			t.Expenses = []models.Expense{}
			for _, e := range m.expenses {
				if e.TripID == t.ID {
					t.Expenses = append(t.Expenses, e)
				}
			}
		}
		out = append(out, t)
	}
	// deliberately ascending; the engine must impose its own order
	sort.SliceStable(out, func(i, j int) bool { return out[i].DepartureDate.Before(out[j].DepartureDate) })
	return out, nil
}

func (m *memStore) FindExpenses(_ context.Context, f repositories.ExpenseFilter) ([]models.Expense, error) {
	if m.failExpenses != nil {
		return nil, m.failExpenses
	}
	out := []models.Expense{}
	for _, e := range m.expenses {
		if !f.Range.Contains(e.Date) {
			continue
		}
		if f.Type != "" && e.Type != f.Type {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *memStore) FindEntity(_ context.Context, d models.Dimension, id string) (models.Entity, error) {
	if m.failEntity != nil {
		return nil, m.failEntity
	}
	if e, ok := m.entities[d][id]; ok {
		return e, nil
	}
	return nil, domain.NotFoundError{Resource: string(d), ID: id}
}

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func money(v float64) *float64 { return &v }

func mustRange(start, end string) domain.DateRange {
	rng, err := domain.ParseDateRange(start, end)
	if err != nil {
		panic(err)
	}
	return rng
}
