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

// ExpenseFilter narrows expense queries. Range applies to the expense date.
type ExpenseFilter struct {
	Range     domain.DateRange
	Type      models.ExpenseType
	TripID    string
	VehicleID string
	DriverID  string
}

type ExpenseRepository struct {
	DB intdb.Querier
}

const expenseColumns = `id, name, value, date, type, notes, trip_id, driver_id, vehicle_id, created_at, updated_at`

func (r ExpenseRepository) List(ctx context.Context, f ExpenseFilter) ([]models.Expense, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.Range.Active() {
		where = append(where, "date>=?", "date<=?")
		args = append(args, *f.Range.Start, *f.Range.End)
	}
	if f.Type != "" {
		where = append(where, "type=?")
		args = append(args, string(f.Type))
	}
	if f.TripID != "" {
		where = append(where, "trip_id=?")
		args = append(args, f.TripID)
	}
	if f.VehicleID != "" {
		where = append(where, "vehicle_id=?")
		args = append(args, f.VehicleID)
	}
	if f.DriverID != "" {
		where = append(where, "driver_id=?")
		args = append(args, f.DriverID)
	}

	query := fmt.Sprintf(`SELECT %s FROM expenses WHERE %s ORDER BY date DESC, id ASC`, expenseColumns, strings.Join(where, " AND "))
	return r.query(ctx, query, args...)
}

// ListByTripIDs loads the expenses of many trips in one round trip, keyed by trip id.
func (r ExpenseRepository) ListByTripIDs(ctx context.Context, tripIDs []string) (map[string][]models.Expense, error) {
	out := map[string][]models.Expense{}
	ids := intdb.Unique(tripIDs)
	if len(ids) == 0 {
		return out, nil
	}
	ph, args := intdb.InClause(ids)
	list, err := r.query(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE trip_id IN (`+ph+`) ORDER BY date DESC, id ASC`, args...)
	if err != nil {
		return nil, err
	}
	for _, e := range list {
		out[e.TripID] = append(out[e.TripID], e)
	}
	return out, nil
}

func (r ExpenseRepository) GetByID(ctx context.Context, id string) (models.Expense, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id=? LIMIT 1`, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Expense{}, domain.NotFoundError{Resource: "expense", ID: id, Err: err}
	}
	return e, err
}

// Create stores e, copying driver and vehicle from the owning trip.
func (r ExpenseRepository) Create(ctx context.Context, e models.Expense) (models.Expense, error) {
	if err := r.attachTrip(ctx, &e); err != nil {
		return models.Expense{}, err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now()
	e.CreatedAt, e.UpdatedAt = now, now

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO expenses (id, name, value, date, type, notes, trip_id, driver_id, vehicle_id, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)
	`, e.ID, e.Name, e.Value, e.Date, string(e.Type), intdb.NullIfEmpty(e.Notes), e.TripID, e.DriverID, e.VehicleID, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return models.Expense{}, mapWriteError("expense", err)
	}
	return e, nil
}

func (r ExpenseRepository) Update(ctx context.Context, e models.Expense) (models.Expense, error) {
	if err := r.attachTrip(ctx, &e); err != nil {
		return models.Expense{}, err
	}
	e.UpdatedAt = time.Now()

	_, err := r.DB.ExecContext(ctx, `
		UPDATE expenses
		SET name=?, value=?, date=?, type=?, notes=?, trip_id=?, driver_id=?, vehicle_id=?, updated_at=?
		WHERE id=?
	`, e.Name, e.Value, e.Date, string(e.Type), intdb.NullIfEmpty(e.Notes), e.TripID, e.DriverID, e.VehicleID, e.UpdatedAt, e.ID)
	if err != nil {
		return models.Expense{}, mapWriteError("expense", err)
	}
	return r.GetByID(ctx, e.ID)
}

func (r ExpenseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM expenses WHERE id=?`, id)
	if err != nil {
		return mapWriteError("expense", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Resource: "expense", ID: id}
	}
	return nil
}

func (r ExpenseRepository) attachTrip(ctx context.Context, e *models.Expense) error {
	err := r.DB.QueryRowContext(ctx, `SELECT driver_id, vehicle_id FROM trips WHERE id=? LIMIT 1`, e.TripID).
		Scan(&e.DriverID, &e.VehicleID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ValidationError{Field: "tripId", Msg: "trip does not exist", Err: err}
	}
	return err
}

func (r ExpenseRepository) query(ctx context.Context, query string, args ...any) ([]models.Expense, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanExpense(s scanner) (models.Expense, error) {
	var (
		e     models.Expense
		typ   string
		value sql.NullFloat64
		notes sql.NullString
	)
	if err := s.Scan(&e.ID, &e.Name, &value, &e.Date, &typ, &notes, &e.TripID, &e.DriverID, &e.VehicleID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return models.Expense{}, err
	}
	// NULL values count as 0
	e.Value = value.Float64
	e.Type = models.ExpenseType(typ)
	e.Notes = intdb.StringPtr(notes)
	return e, nil
}
