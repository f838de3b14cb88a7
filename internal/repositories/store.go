package repositories

import (
	"context"
	"fmt"

	intdb "fleetops/internal/db"
	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
)

// Store bundles the repositories over one connection pool and exposes the
// read primitives the report services consume.
type Store struct {
	Trips    TripsRepository
	Expenses ExpenseRepository
	Vehicles VehicleRepository
	Drivers  DriverRepository
	Clients  ClientRepository
}

func NewStore(q intdb.Querier) Store {
	return Store{
		Trips:    TripsRepository{DB: q},
		Expenses: ExpenseRepository{DB: q},
		Vehicles: VehicleRepository{DB: q},
		Drivers:  DriverRepository{DB: q},
		Clients:  ClientRepository{DB: q},
	}
}

func (s Store) GroupTrips(ctx context.Context, d models.Dimension, rng domain.DateRange) ([]TripGroup, error) {
	return s.Trips.GroupTrips(ctx, d, rng)
}

func (s Store) FindExpenses(ctx context.Context, f ExpenseFilter) ([]models.Expense, error) {
	return s.Expenses.List(ctx, f)
}

// FindTrips lists trips and, on request, batch-loads their expenses and
// vehicle/driver/client with one IN query per table.
func (s Store) FindTrips(ctx context.Context, f TripFilter) ([]models.Trip, error) {
	trips, err := s.Trips.List(ctx, f)
	if err != nil || len(trips) == 0 {
		return trips, err
	}

	if f.WithExpenses {
		ids := make([]string, len(trips))
		for i, t := range trips {
			ids[i] = t.ID
		}
		byTrip, err := s.Expenses.ListByTripIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range trips {
			trips[i].Expenses = byTrip[trips[i].ID]
			if trips[i].Expenses == nil {
				trips[i].Expenses = []models.Expense{}
			}
		}
	}

	if f.WithRelations {
		if err := s.attachRelations(ctx, trips); err != nil {
			return nil, err
		}
	}
	return trips, nil
}

func (s Store) attachRelations(ctx context.Context, trips []models.Trip) error {
	var vehicleIDs, driverIDs, clientIDs []string
	for _, t := range trips {
		vehicleIDs = append(vehicleIDs, t.VehicleID)
		driverIDs = append(driverIDs, t.DriverID)
		clientIDs = append(clientIDs, t.ClientID)
	}

	vehicles, err := s.Vehicles.FindByIDs(ctx, vehicleIDs)
	if err != nil {
		return err
	}
	drivers, err := s.Drivers.FindByIDs(ctx, driverIDs)
	if err != nil {
		return err
	}
	clients, err := s.Clients.FindByIDs(ctx, clientIDs)
	if err != nil {
		return err
	}

	for i := range trips {
		if v, ok := vehicles[trips[i].VehicleID]; ok {
			trips[i].Vehicle = &v
		}
		if d, ok := drivers[trips[i].DriverID]; ok {
			trips[i].Driver = &d
		}
		if c, ok := clients[trips[i].ClientID]; ok {
			trips[i].Client = &c
		}
	}
	return nil
}

// FindEntity resolves the record a trip group points at. Deleted rows yield domain.NotFoundError.
func (s Store) FindEntity(ctx context.Context, d models.Dimension, id string) (models.Entity, error) {
	switch d {
	case models.DimensionVehicle:
		v, err := s.Vehicles.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return v, nil
	case models.DimensionDriver:
		dr, err := s.Drivers.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return dr, nil
	case models.DimensionClient:
		c, err := s.Clients.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, domain.ValidationError{Field: "dimension", Msg: fmt.Sprintf("unknown dimension %q", d)}
}
