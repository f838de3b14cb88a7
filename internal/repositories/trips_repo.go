package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	intdb "fleetops/internal/db"
	"fleetops/internal/domain"
	"fleetops/internal/domain/models"

	"github.com/google/uuid"
)

// TripFilter narrows trip queries. Range applies to departure_date.
type TripFilter struct {
	Range     domain.DateRange
	VehicleID string
	DriverID  string
	ClientID  string
	Status    models.TripStatus

	WithExpenses  bool
	WithRelations bool
}

// ByDimension returns a copy of f restricted to one grouping key.
func (f TripFilter) ByDimension(d models.Dimension, key string) TripFilter {
	switch d {
	case models.DimensionVehicle:
		f.VehicleID = key
	case models.DimensionDriver:
		f.DriverID = key
	case models.DimensionClient:
		f.ClientID = key
	}
	return f
}

// TripGroup is one row of a GROUP BY over trips.
type TripGroup struct {
	Key          string
	Count        int
	SumTripValue float64
}

type TripsRepository struct {
	DB intdb.Querier
}

const tripColumns = `id, origin, destination, departure_date, return_date,
	initial_kilometer, final_kilometer, trip_value, status, notes,
	vehicle_id, driver_id, client_id, user_id, created_at, updated_at`

func tripWhere(f TripFilter) (string, []any) {
	where := []string{"1=1"}
	args := []any{}
	if f.Range.Active() {
		where = append(where, "departure_date>=?", "departure_date<=?")
		args = append(args, *f.Range.Start, *f.Range.End)
	}
	if f.VehicleID != "" {
		where = append(where, "vehicle_id=?")
		args = append(args, f.VehicleID)
	}
	if f.DriverID != "" {
		where = append(where, "driver_id=?")
		args = append(args, f.DriverID)
	}
	if f.ClientID != "" {
		where = append(where, "client_id=?")
		args = append(args, f.ClientID)
	}
	if f.Status != "" {
		where = append(where, "status=?")
		args = append(args, string(f.Status))
	}
	return strings.Join(where, " AND "), args
}

// List returns trips matching f, newest departure first. Nested data is not loaded.
func (r TripsRepository) List(ctx context.Context, f TripFilter) ([]models.Trip, error) {
	where, args := tripWhere(f)
	query := fmt.Sprintf(`SELECT %s FROM trips WHERE %s ORDER BY departure_date DESC, id ASC`, tripColumns, where)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GroupTrips counts trips and sums trip_value per foreign key of d.
func (r TripsRepository) GroupTrips(ctx context.Context, d models.Dimension, rng domain.DateRange) ([]TripGroup, error) {
	col := d.Column()
	if col == "" {
		return nil, domain.ValidationError{Field: "dimension", Msg: fmt.Sprintf("unknown dimension %q", d)}
	}
	where, args := tripWhere(TripFilter{Range: rng})
	query := fmt.Sprintf(`SELECT %s, COUNT(*), COALESCE(SUM(trip_value),0) FROM trips WHERE %s GROUP BY %s`, col, where, col)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []TripGroup{}
	for rows.Next() {
		var g TripGroup
		if err := rows.Scan(&g.Key, &g.Count, &g.SumTripValue); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r TripsRepository) GetByID(ctx context.Context, id string) (models.Trip, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+tripColumns+` FROM trips WHERE id=? LIMIT 1`, id)
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Trip{}, domain.NotFoundError{Resource: "trip", ID: id, Err: err}
	}
	return t, err
}

func (r TripsRepository) Create(ctx context.Context, t models.Trip) (models.Trip, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now()
	t.CreatedAt, t.UpdatedAt = now, now

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO trips (
		  id, origin, destination, departure_date, return_date,
		  initial_kilometer, final_kilometer, trip_value, status, notes,
		  vehicle_id, driver_id, client_id, user_id, created_at, updated_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`,
		t.ID, t.Origin, t.Destination, t.DepartureDate, intdb.NullTime(t.ReturnDate),
		intdb.NullInt(t.InitialKilometer), intdb.NullInt(t.FinalKilometer), intdb.NullFloat(t.TripValue), string(t.Status), intdb.NullIfEmpty(t.Notes),
		t.VehicleID, t.DriverID, t.ClientID, t.UserID, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return models.Trip{}, mapWriteError("trip", err)
	}
	return t, nil
}

func (r TripsRepository) Update(ctx context.Context, t models.Trip) (models.Trip, error) {
	t.UpdatedAt = time.Now()
	_, err := r.DB.ExecContext(ctx, `
		UPDATE trips SET
		  origin=?, destination=?, departure_date=?, return_date=?,
		  initial_kilometer=?, final_kilometer=?, trip_value=?, status=?, notes=?,
		  vehicle_id=?, driver_id=?, client_id=?, updated_at=?
		WHERE id=?
	`,
		t.Origin, t.Destination, t.DepartureDate, intdb.NullTime(t.ReturnDate),
		intdb.NullInt(t.InitialKilometer), intdb.NullInt(t.FinalKilometer), intdb.NullFloat(t.TripValue), string(t.Status), intdb.NullIfEmpty(t.Notes),
		t.VehicleID, t.DriverID, t.ClientID, t.UpdatedAt,
		t.ID,
	)
	if err != nil {
		return models.Trip{}, mapWriteError("trip", err)
	}
	// MySQL reports 0 affected for unchanged rows, so re-read instead of trusting RowsAffected.
	return r.GetByID(ctx, t.ID)
}

func (r TripsRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM trips WHERE id=?`, id)
	if err != nil {
		return mapWriteError("trip", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Resource: "trip", ID: id}
	}
	return nil
}

func scanTrip(s scanner) (models.Trip, error) {
	var (
		t          models.Trip
		status     string
		returnDate sql.NullTime
		initialKm  sql.NullInt64
		finalKm    sql.NullInt64
		tripValue  sql.NullFloat64
		notes      sql.NullString
	)
	if err := s.Scan(
		&t.ID, &t.Origin, &t.Destination, &t.DepartureDate, &returnDate,
		&initialKm, &finalKm, &tripValue, &status, &notes,
		&t.VehicleID, &t.DriverID, &t.ClientID, &t.UserID, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return models.Trip{}, err
	}
	t.Status = models.TripStatus(status)
	t.ReturnDate = intdb.TimePtr(returnDate)
	t.InitialKilometer = intdb.IntPtr(initialKm)
	t.FinalKilometer = intdb.IntPtr(finalKm)
	t.TripValue = intdb.FloatPtr(tripValue)
	t.Notes = intdb.StringPtr(notes)
	return t, nil
}
