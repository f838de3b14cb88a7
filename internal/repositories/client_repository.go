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

type ClientRepository struct {
	DB intdb.Querier
}

const clientColumns = `id, name, cpf, cnpj, phone, email, address, status`

func (r ClientRepository) List(ctx context.Context, f ListFilter) ([]models.Client, error) {
	where, args := f.where("name", "cpf", "cnpj")
	return r.query(ctx, `SELECT `+clientColumns+` FROM clients WHERE `+where+` ORDER BY name ASC`, args...)
}

func (r ClientRepository) GetByID(ctx context.Context, id string) (models.Client, error) {
	var c models.Client
	err := scanClient(r.DB.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id=? LIMIT 1`, id), &c)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Client{}, domain.NotFoundError{Resource: "client", ID: id, Err: err}
	}
	return c, err
}

func (r ClientRepository) FindByIDs(ctx context.Context, ids []string) (map[string]models.Client, error) {
	out := map[string]models.Client{}
	ids = intdb.Unique(ids)
	if len(ids) == 0 {
		return out, nil
	}
	ph, args := intdb.InClause(ids)
	list, err := r.query(ctx, `SELECT `+clientColumns+` FROM clients WHERE id IN (`+ph+`)`, args...)
	if err != nil {
		return nil, err
	}
	for _, c := range list {
		out[c.ID] = c
	}
	return out, nil
}

func (r ClientRepository) Create(ctx context.Context, c models.Client) (models.Client, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if _, err := r.DB.ExecContext(ctx, `
		INSERT INTO clients (id, name, cpf, cnpj, phone, email, address, status)
		VALUES (?,?,?,?,?,?,?,?)
	`, c.ID, c.Name, intdb.NullIfEmpty(c.CPF), intdb.NullIfEmpty(c.CNPJ), c.Phone, intdb.NullIfEmpty(c.Email), intdb.NullIfEmpty(c.Address), string(c.Status)); err != nil {
		return models.Client{}, mapWriteError("client", err)
	}
	return c, nil
}

func (r ClientRepository) Update(ctx context.Context, c models.Client) (models.Client, error) {
	if _, err := r.DB.ExecContext(ctx, `
		UPDATE clients SET name=?, cpf=?, cnpj=?, phone=?, email=?, address=?, status=?
		WHERE id=?
	`, c.Name, intdb.NullIfEmpty(c.CPF), intdb.NullIfEmpty(c.CNPJ), c.Phone, intdb.NullIfEmpty(c.Email), intdb.NullIfEmpty(c.Address), string(c.Status), c.ID); err != nil {
		return models.Client{}, mapWriteError("client", err)
	}
	return r.GetByID(ctx, c.ID)
}

func (r ClientRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM clients WHERE id=?`, id)
	if err != nil {
		return mapWriteError("client", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Resource: "client", ID: id}
	}
	return nil
}

func (r ClientRepository) query(ctx context.Context, query string, args ...any) ([]models.Client, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Client{}
	for rows.Next() {
		var c models.Client
		if err := scanClient(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanClient(s scanner, c *models.Client) error {
	var (
		status                    string
		cpf, cnpj, email, address sql.NullString
	)
	if err := s.Scan(&c.ID, &c.Name, &cpf, &cnpj, &c.Phone, &email, &address, &status); err != nil {
		return err
	}
	c.CPF = intdb.StringPtr(cpf)
	c.CNPJ = intdb.StringPtr(cnpj)
	c.Email = intdb.StringPtr(email)
	c.Address = intdb.StringPtr(address)
	c.Status = models.ClientStatus(status)
	return nil
}
