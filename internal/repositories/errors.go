package repositories

import (
	"errors"

	"fleetops/internal/domain"

	"github.com/go-sql-driver/mysql"
)

const (
	mysqlDuplicateEntry = 1062
	mysqlRowReferenced  = 1451
	mysqlNoReferenced   = 1452
)

type scanner interface {
	Scan(dest ...any) error
}

// mapWriteError translates MySQL constraint failures into domain errors.
func mapWriteError(resource string, err error) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return err
	}
	switch me.Number {
	case mysqlDuplicateEntry:
		return domain.ConflictError{Resource: resource, Msg: "duplicate entry", Err: err}
	case mysqlRowReferenced:
		return domain.ConflictError{Resource: resource, Msg: "still referenced by other records", Err: err}
	case mysqlNoReferenced:
		return domain.ValidationError{Field: resource, Msg: "references a record that does not exist", Err: err}
	}
	return err
}
