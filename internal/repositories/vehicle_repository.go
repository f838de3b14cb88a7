package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	intdb "fleetops/internal/db"
	"fleetops/internal/domain"
	"fleetops/internal/domain/models"

	"github.com/google/uuid"
)

// ListFilter is the search shared by the vehicle, driver and client listings.
type ListFilter struct {
	Q      string
	Status string
}

func (f ListFilter) where(searchCols ...string) (string, []any) {
	where := []string{"1=1"}
	args := []any{}
	if q := strings.TrimSpace(f.Q); q != "" {
		like := "%" + q + "%"
		ors := make([]string, len(searchCols))
		for i, c := range searchCols {
			ors[i] = c + " LIKE ?"
			args = append(args, like)
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}
	if s := strings.TrimSpace(f.Status); s != "" {
		where = append(where, "status=?")
		args = append(args, strings.ToUpper(s))
	}
	return strings.Join(where, " AND "), args
}

type VehicleRepository struct {
	DB intdb.Querier
}

const vehicleColumns = `id, plate, brand, model, year, capacity, status`

func (r VehicleRepository) List(ctx context.Context, f ListFilter) ([]models.Vehicle, error) {
	where, args := f.where("plate", "brand", "model")
	return r.query(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE `+where+` ORDER BY plate ASC`, args...)
}

func (r VehicleRepository) GetByID(ctx context.Context, id string) (models.Vehicle, error) {
	var v models.Vehicle
	err := scanVehicle(r.DB.QueryRowContext(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id=? LIMIT 1`, id), &v)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vehicle{}, domain.NotFoundError{Resource: "vehicle", ID: id, Err: err}
	}
	return v, err
}

func (r VehicleRepository) FindByIDs(ctx context.Context, ids []string) (map[string]models.Vehicle, error) {
	out := map[string]models.Vehicle{}
	ids = intdb.Unique(ids)
	if len(ids) == 0 {
		return out, nil
	}
	ph, args := intdb.InClause(ids)
	list, err := r.query(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id IN (`+ph+`)`, args...)
	if err != nil {
		return nil, err
	}
	for _, v := range list {
		out[v.ID] = v
	}
	return out, nil
}

func (r VehicleRepository) Create(ctx context.Context, v models.Vehicle) (models.Vehicle, error) {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if _, err := r.DB.ExecContext(ctx, `
		INSERT INTO vehicles (id, plate, brand, model, year, capacity, status)
		VALUES (?,?,?,?,?,?,?)
	`, v.ID, v.Plate, v.Brand, v.Model, v.Year, v.Capacity, string(v.Status)); err != nil {
		return models.Vehicle{}, mapWriteError("vehicle", err)
	}
	return v, nil
}

func (r VehicleRepository) Update(ctx context.Context, v models.Vehicle) (models.Vehicle, error) {
	if _, err := r.DB.ExecContext(ctx, `
		UPDATE vehicles SET plate=?, brand=?, model=?, year=?, capacity=?, status=?
		WHERE id=?
	`, v.Plate, v.Brand, v.Model, v.Year, v.Capacity, string(v.Status), v.ID); err != nil {
		return models.Vehicle{}, mapWriteError("vehicle", err)
	}
	return r.GetByID(ctx, v.ID)
}

func (r VehicleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM vehicles WHERE id=?`, id)
	if err != nil {
		return mapWriteError("vehicle", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Resource: "vehicle", ID: id}
	}
	return nil
}

func (r VehicleRepository) query(ctx context.Context, query string, args ...any) ([]models.Vehicle, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Vehicle{}
	for rows.Next() {
		var v models.Vehicle
		if err := scanVehicle(rows, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func scanVehicle(s scanner, v *models.Vehicle) error {
	var status string
	if err := s.Scan(&v.ID, &v.Plate, &v.Brand, &v.Model, &v.Year, &v.Capacity, &status); err != nil {
		return err
	}
	v.Status = models.VehicleStatus(status)
	return nil
}
