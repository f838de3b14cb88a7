package db

import (
	"context"
	"fmt"
	"log"
)

// tables is in foreign-key order: parents before children.
var tables = []struct {
	name string
	ddl  string
}{
	{"vehicles", `CREATE TABLE vehicles (
		id       VARCHAR(36) NOT NULL PRIMARY KEY,
		plate    VARCHAR(16) NOT NULL UNIQUE,
		brand    VARCHAR(80) NOT NULL,
		model    VARCHAR(80) NOT NULL,
		year     INT NOT NULL,
		capacity INT NOT NULL,
		status   VARCHAR(16) NOT NULL DEFAULT 'ACTIVE'
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"drivers", `CREATE TABLE drivers (
		id      VARCHAR(36) NOT NULL PRIMARY KEY,
		name    VARCHAR(120) NOT NULL,
		cpf     VARCHAR(14) NOT NULL UNIQUE,
		cnh     VARCHAR(20) NOT NULL UNIQUE,
		phone   VARCHAR(20) NOT NULL,
		email   VARCHAR(120) NULL,
		address VARCHAR(255) NULL,
		status  VARCHAR(16) NOT NULL DEFAULT 'ACTIVE'
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"clients", `CREATE TABLE clients (
		id      VARCHAR(36) NOT NULL PRIMARY KEY,
		name    VARCHAR(120) NOT NULL,
		cpf     VARCHAR(14) NULL UNIQUE,
		cnpj    VARCHAR(18) NULL UNIQUE,
		phone   VARCHAR(20) NOT NULL,
		email   VARCHAR(120) NULL,
		address VARCHAR(255) NULL,
		status  VARCHAR(16) NOT NULL DEFAULT 'ACTIVE'
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"trips", `CREATE TABLE trips (
		id                VARCHAR(36) NOT NULL PRIMARY KEY,
		origin            VARCHAR(160) NOT NULL,
		destination       VARCHAR(160) NOT NULL,
		departure_date    DATETIME NOT NULL,
		return_date       DATETIME NULL,
		initial_kilometer INT NULL,
		final_kilometer   INT NULL,
		trip_value        DOUBLE NULL,
		status            VARCHAR(16) NOT NULL DEFAULT 'SCHEDULED',
		notes             TEXT NULL,
		vehicle_id        VARCHAR(36) NOT NULL,
		driver_id         VARCHAR(36) NOT NULL,
		client_id         VARCHAR(36) NOT NULL,
		user_id           VARCHAR(36) NOT NULL DEFAULT '',
		created_at        DATETIME NOT NULL,
		updated_at        DATETIME NOT NULL,
		KEY idx_trips_departure (departure_date),
		CONSTRAINT fk_trips_vehicle FOREIGN KEY (vehicle_id) REFERENCES vehicles(id),
		CONSTRAINT fk_trips_driver FOREIGN KEY (driver_id) REFERENCES drivers(id),
		CONSTRAINT fk_trips_client FOREIGN KEY (client_id) REFERENCES clients(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"expenses", `CREATE TABLE expenses (
		id         VARCHAR(36) NOT NULL PRIMARY KEY,
		name       VARCHAR(160) NOT NULL,
		value      DOUBLE NOT NULL,
		date       DATETIME NOT NULL,
		type       VARCHAR(16) NOT NULL,
		notes      TEXT NULL,
		trip_id    VARCHAR(36) NOT NULL,
		driver_id  VARCHAR(36) NOT NULL,
		vehicle_id VARCHAR(36) NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		KEY idx_expenses_date (date),
		CONSTRAINT fk_expenses_trip FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
}

// EnsureSchema creates whichever tables are missing. Existing tables are
// left untouched.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, t := range tables {
		if HasTable(ctx, q, t.name) {
			continue
		}
		if _, err := q.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
		log.Printf("[DB] action=create_table table=%s", t.name)
	}
	return nil
}
