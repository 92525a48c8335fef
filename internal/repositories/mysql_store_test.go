package repositories

import (
	"context"
	"errors"
	"testing"

	"busreservation/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMySQLStoreInitSeedsEmptyTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS buses").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS bookings").WillReturnResult(sqlmock.NewResult(0, 0))
	expectBookingColumns(mock, true, true)
	expectSeedMarker(mock, false)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM buses`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM buses").WillReturnResult(sqlmock.NewResult(0, 0))
	for i, b := range SeedBuses() {
		mock.ExpectExec("INSERT INTO buses").
			WithArgs(b.ID, i, b.Source, b.Destination, b.SeatsAvailable, b.TotalSeats, int64(b.FarePerSeat)).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()
	mock.ExpectExec("INSERT INTO store_meta").WillReturnResult(sqlmock.NewResult(1, 1))

	if err := (MySQLStore{DB: db}).Init(context.Background()); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMySQLStoreInitSkipsSeedWhenPopulated(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS buses").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS bookings").WillReturnResult(sqlmock.NewResult(0, 0))
	expectBookingColumns(mock, true, true)
	expectSeedMarker(mock, false)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM buses`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectExec("INSERT INTO store_meta").WillReturnResult(sqlmock.NewResult(1, 1))

	if err := (MySQLStore{DB: db}).Init(context.Background()); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMySQLStoreLoadBuses(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, source, destination").
		WillReturnRows(sqlmock.NewRows([]string{"id", "source", "destination", "seats_available", "total_seats", "fare_cents"}).
			AddRow("R1", "Delhi", "Mumbai", 1, 2, 10000))

	buses, err := MySQLStore{DB: db}.LoadBuses(context.Background())
	if err != nil {
		t.Fatalf("LoadBuses returned error: %v", err)
	}
	want := models.Bus{ID: "R1", Source: "Delhi", Destination: "Mumbai", SeatsAvailable: 1, TotalSeats: 2, FarePerSeat: 10000}
	if len(buses) != 1 || buses[0] != want {
		t.Fatalf("LoadBuses = %+v, want [%+v]", buses, want)
	}
}

func TestMySQLStoreLoadBookingsRejectsUnknownStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	cols := []string{"id", "passenger_name", "passenger_age", "passenger_gender", "passenger_phone", "passenger_email",
		"bus_id", "seat_number", "fare_cents", "status", "created_at"}
	mock.ExpectQuery("SELECT id, passenger_name").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("BK1", "A", 30, "F", "1", "", "R1", 1, 10000, "CONFIRMED", "2026-10-15 10:00:00").
			AddRow("BK2", "B", 30, "M", "2", "", "R1", 2, 10000, "PENDING", "2026-10-15 10:00:00"))

	if _, err := (MySQLStore{DB: db}).LoadBookings(context.Background()); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestMySQLStoreSaveBookingsRollsBackOnInsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	b := models.Booking{
		ID:         "BK1",
		Passenger:  models.Passenger{Name: "A", Age: 30, Gender: "F", Phone: "1"},
		BusID:      "R1",
		SeatNumber: 1,
		CreatedAt:  "2026-10-15 10:00:00",
		Fare:       10000,
		Status:     models.StatusConfirmed,
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs("BK1", 0, "A", 30, "F", "1", "", "R1", 1, int64(10000), "CONFIRMED", "2026-10-15 10:00:00").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = MySQLStore{DB: db}.SaveBookings(context.Background(), []models.Booking{b})
	if err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func expectBookingColumns(mock sqlmock.Sqlmock, hasEmail, hasCreatedAt bool) {
	for _, col := range []struct {
		name   string
		exists bool
	}{{"passenger_email", hasEmail}, {"created_at", hasCreatedAt}} {
		rows := sqlmock.NewRows([]string{"column_name"})
		if col.exists {
			rows.AddRow(col.name)
		}
		mock.ExpectQuery("FROM information_schema.columns").
			WithArgs("bookings", col.name).
			WillReturnRows(rows)
	}
}

func TestMySQLStoreInitAddsMissingBookingColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS buses").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS bookings").WillReturnResult(sqlmock.NewResult(0, 0))
	expectBookingColumns(mock, false, false)
	mock.ExpectExec("ALTER TABLE bookings ADD COLUMN passenger_email").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("ALTER TABLE bookings ADD COLUMN created_at").WillReturnResult(sqlmock.NewResult(0, 0))
	expectSeedMarker(mock, true)

	if err := (MySQLStore{DB: db}).Init(context.Background()); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func expectSeedMarker(mock sqlmock.Sqlmock, seeded bool) {
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS store_meta").WillReturnResult(sqlmock.NewResult(0, 0))
	count := 0
	if seeded {
		count = 1
	}
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM store_meta`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(count))
}

func TestMySQLStoreInitDoesNotReseedEmptiedTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS buses").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS bookings").WillReturnResult(sqlmock.NewResult(0, 0))
	expectBookingColumns(mock, true, true)
	expectSeedMarker(mock, true)

	if err := (MySQLStore{DB: db}).Init(context.Background()); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
