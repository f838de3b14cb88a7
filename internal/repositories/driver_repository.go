package repositories

import (
	"context"
	"database/sql"
	"errors"

	intdb "fleetops/internal/db"
	"fleetops/internal/domain"
	"fleetops/internal/domain/models"

	"github.com/google/uuid"
)

type DriverRepository struct {
	DB intdb.Querier
}

const driverColumns = `id, name, cpf, cnh, phone, email, address, status`

func (r DriverRepository) List(ctx context.Context, f ListFilter) ([]models.Driver, error) {
	where, args := f.where("name", "cpf", "cnh")
	return r.query(ctx, `SELECT `+driverColumns+` FROM drivers WHERE `+where+` ORDER BY name ASC`, args...)
}

func (r DriverRepository) GetByID(ctx context.Context, id string) (models.Driver, error) {
	var d models.Driver
	err := scanDriver(r.DB.QueryRowContext(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id=? LIMIT 1`, id), &d)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Driver{}, domain.NotFoundError{Resource: "driver", ID: id, Err: err}
	}
	return d, err
}

func (r DriverRepository) FindByIDs(ctx context.Context, ids []string) (map[string]models.Driver, error) {
	out := map[string]models.Driver{}
	ids = intdb.Unique(ids)
	if len(ids) == 0 {
		return out, nil
	}
	ph, args := intdb.InClause(ids)
	list, err := r.query(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id IN (`+ph+`)`, args...)
	if err != nil {
		return nil, err
	}
	for _, d := range list {
		out[d.ID] = d
	}
	return out, nil
}

func (r DriverRepository) Create(ctx context.Context, d models.Driver) (models.Driver, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if _, err := r.DB.ExecContext(ctx, `
		INSERT INTO drivers (id, name, cpf, cnh, phone, email, address, status)
		VALUES (?,?,?,?,?,?,?,?)
	`, d.ID, d.Name, d.CPF, d.CNH, d.Phone, intdb.NullIfEmpty(d.Email), intdb.NullIfEmpty(d.Address), string(d.Status)); err != nil {
		return models.Driver{}, mapWriteError("driver", err)
	}
	return d, nil
}

func (r DriverRepository) Update(ctx context.Context, d models.Driver) (models.Driver, error) {
	if _, err := r.DB.ExecContext(ctx, `
		UPDATE drivers SET name=?, cpf=?, cnh=?, phone=?, email=?, address=?, status=?
		WHERE id=?
	`, d.Name, d.CPF, d.CNH, d.Phone, intdb.NullIfEmpty(d.Email), intdb.NullIfEmpty(d.Address), string(d.Status), d.ID); err != nil {
		return models.Driver{}, mapWriteError("driver", err)
	}
	return r.GetByID(ctx, d.ID)
}

func (r DriverRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM drivers WHERE id=?`, id)
	if err != nil {
		return mapWriteError("driver", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Resource: "driver", ID: id}
	}
	return nil
}

func (r DriverRepository) query(ctx context.Context, query string, args ...any) ([]models.Driver, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		var d models.Driver
		if err := scanDriver(rows, &d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanDriver(s scanner, d *models.Driver) error {
	var (
		status         string
		email, address sql.NullString
	)
	if err := s.Scan(&d.ID, &d.Name, &d.CPF, &d.CNH, &d.Phone, &email, &address, &status); err != nil {
		return err
	}
	d.Email = intdb.StringPtr(email)
	d.Address = intdb.StringPtr(address)
	d.Status = models.DriverStatus(status)
	return nil
}
