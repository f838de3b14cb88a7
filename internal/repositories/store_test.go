package repositories

import (
	"context"
	"testing"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

var (
	tripCols    = []string{"id", "origin", "destination", "departure_date", "return_date", "initial_kilometer", "final_kilometer", "trip_value", "status", "notes", "vehicle_id", "driver_id", "client_id", "user_id", "created_at", "updated_at"}
	expenseCols = []string{"id", "name", "value", "date", "type", "notes", "trip_id", "driver_id", "vehicle_id", "created_at", "updated_at"}
)

func newMock(t *testing.T) (Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db), mock
}

func TestGroupTripsByVehicleWithRange(t *testing.T) {
	store, mock := newMock(t)
	rng, err := domain.ParseDateRange("2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("range: %v", err)
	}

	mock.ExpectQuery(`SELECT vehicle_id, COUNT\(\*\), COALESCE\(SUM\(trip_value\),0\) FROM trips WHERE 1=1 AND departure_date>=\? AND departure_date<=\? GROUP BY vehicle_id`).
		WithArgs(*rng.Start, *rng.End).
		WillReturnRows(sqlmock.NewRows([]string{"vehicle_id", "count", "total"}).
			AddRow("v1", 2, 510.0).
			AddRow("v2", 1, 0.0))

	groups, err := store.GroupTrips(context.Background(), models.DimensionVehicle, rng)
	if err != nil {
		t.Fatalf("GroupTrips error: %v", err)
	}
	if len(groups) != 2 || groups[0].Key != "v1" || groups[0].Count != 2 || groups[0].SumTripValue != 510 {
		t.Fatalf("unexpected groups %+v", groups)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGroupTripsRejectsUnknownDimension(t *testing.T) {
	store, _ := newMock(t)
	_, err := store.GroupTrips(context.Background(), models.Dimension("route"), domain.DateRange{})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFindTripsLoadsExpensesAndRelationsInBatches(t *testing.T) {
	store, mock := newMock(t)
	now := time.Date(2025, 1, 10, 8, 0, 0, 0, time.Local)

	mock.ExpectQuery(`SELECT .+ FROM trips WHERE 1=1 AND vehicle_id=\? ORDER BY departure_date DESC, id ASC`).
		WithArgs("v1").
		WillReturnRows(sqlmock.NewRows(tripCols).
			AddRow("t2", "A", "B", now.Add(24*time.Hour), nil, nil, nil, 130.0, "COMPLETED", nil, "v1", "d1", "c1", "u1", now, now).
			AddRow("t1", "A", "C", now, nil, 1000, 1200, nil, "SCHEDULED", "late", "v1", "d2", "c1", "u1", now, now))

	mock.ExpectQuery(`FROM expenses WHERE trip_id IN \(\?,\?\)`).
		WithArgs("t2", "t1").
		WillReturnRows(sqlmock.NewRows(expenseCols).
			AddRow("e1", "Diesel", 50.0, now, "FUEL", nil, "t2", "d1", "v1", now, now))

	mock.ExpectQuery(`FROM vehicles WHERE id IN \(\?\)`).WithArgs("v1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "plate", "brand", "model", "year", "capacity", "status"}).
			AddRow("v1", "ABC1D23", "Mercedes", "Sprinter", 2022, 15, "ACTIVE"))
	mock.ExpectQuery(`FROM drivers WHERE id IN \(\?,\?\)`).WithArgs("d1", "d2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "cpf", "cnh", "phone", "email", "address", "status"}).
			AddRow("d1", "Ana", "111", "222", "9999", nil, nil, "ACTIVE"))
	mock.ExpectQuery(`FROM clients WHERE id IN \(\?\)`).WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "cpf", "cnpj", "phone", "email", "address", "status"}).
			AddRow("c1", "Acme", nil, "12345678000199", "8888", nil, nil, "ACTIVE"))

	trips, err := store.FindTrips(context.Background(), TripFilter{VehicleID: "v1", WithExpenses: true, WithRelations: true})
	if err != nil {
		t.Fatalf("FindTrips error: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("expected 2 trips, got %d", len(trips))
	}
	if len(trips[0].Expenses) != 1 || trips[0].Expenses[0].Value != 50 {
		t.Fatalf("expenses not attached: %+v", trips[0].Expenses)
	}
	if trips[1].Expenses == nil || len(trips[1].Expenses) != 0 {
		t.Fatalf("trip without expenses should carry an empty list")
	}
	if trips[1].TripValue != nil || trips[1].Value() != 0 {
		t.Fatalf("NULL trip_value should stay nil and count as 0")
	}
	if trips[1].InitialKilometer == nil || *trips[1].InitialKilometer != 1000 {
		t.Fatalf("initial kilometer not scanned")
	}
	if trips[0].Vehicle == nil || trips[0].Vehicle.Plate != "ABC1D23" {
		t.Fatalf("vehicle not attached")
	}
	if trips[1].Driver != nil {
		t.Fatalf("missing driver d2 should leave Driver nil")
	}
	if trips[0].Client == nil || trips[0].Client.CNPJ == nil {
		t.Fatalf("client not attached")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindExpensesFiltersByDateAndType(t *testing.T) {
	store, mock := newMock(t)
	rng, _ := domain.ParseDateRange("2025-02-01", "2025-02-28")

	mock.ExpectQuery(`FROM expenses WHERE 1=1 AND date>=\? AND date<=\? AND type=\? ORDER BY date DESC, id ASC`).
		WithArgs(*rng.Start, *rng.End, "TOLL").
		WillReturnRows(sqlmock.NewRows(expenseCols))

	list, err := store.FindExpenses(context.Background(), ExpenseFilter{Range: rng, Type: models.ExpenseToll})
	if err != nil {
		t.Fatalf("FindExpenses error: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", list)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindEntityMissingDriverIsNotFound(t *testing.T) {
	store, mock := newMock(t)
	mock.ExpectQuery(`FROM drivers WHERE id=\?`).WithArgs("gone").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "cpf", "cnh", "phone", "email", "address", "status"}))

	_, err := store.FindEntity(context.Background(), models.DimensionDriver, "gone")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestExpenseCreateCopiesTripDriverAndVehicle(t *testing.T) {
	store, mock := newMock(t)
	mock.ExpectQuery(`SELECT driver_id, vehicle_id FROM trips WHERE id=\?`).WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{"driver_id", "vehicle_id"}).AddRow("d1", "v1"))
	mock.ExpectExec(`INSERT INTO expenses`).WillReturnResult(sqlmock.NewResult(1, 1))

	e, err := store.Expenses.Create(context.Background(), models.Expense{
		Name:     "Pedágio",
		Value:    20,
		Date:     time.Now(),
		Type:     models.ExpenseToll,
		TripID:   "t1",
		DriverID: "stale",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if e.ID == "" || e.DriverID != "d1" || e.VehicleID != "v1" {
		t.Fatalf("unexpected expense %+v", e)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestExpenseCreateUnknownTrip(t *testing.T) {
	store, mock := newMock(t)
	mock.ExpectQuery(`SELECT driver_id, vehicle_id FROM trips`).WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"driver_id", "vehicle_id"}))

	_, err := store.Expenses.Create(context.Background(), models.Expense{TripID: "nope", Type: models.ExpenseFuel})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestVehicleCreateDuplicatePlateIsConflict(t *testing.T) {
	store, mock := newMock(t)
	mock.ExpectExec(`INSERT INTO vehicles`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'ABC1D23' for key 'plate'"})

	_, err := store.Vehicles.Create(context.Background(), models.Vehicle{Plate: "ABC1D23", Status: models.VehicleActive})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestTripDeleteMissingIsNotFound(t *testing.T) {
	store, mock := newMock(t)
	mock.ExpectExec(`DELETE FROM trips WHERE id=\?`).WithArgs("t404").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.Trips.Delete(context.Background(), "t404"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListFilterBuildsSearch(t *testing.T) {
	where, args := ListFilter{Q: "abc", Status: "active"}.where("plate", "brand")
	if where != "1=1 AND (plate LIKE ? OR brand LIKE ?) AND status=?" {
		t.Fatalf("where = %q", where)
	}
	if len(args) != 3 || args[0] != "%abc%" || args[2] != "ACTIVE" {
		t.Fatalf("args = %v", args)
	}
}
