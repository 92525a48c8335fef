package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"busreservation/internal/domain/models"
)

// MySQLStore keeps the collections in the buses and bookings tables. The
// position column preserves collection order across saves.
type MySQLStore struct {
	DB *sql.DB
}

const busesDDL = `
CREATE TABLE IF NOT EXISTS buses (
	id VARCHAR(64) NOT NULL PRIMARY KEY,
	position INT NOT NULL,
	source VARCHAR(255) NOT NULL,
	destination VARCHAR(255) NOT NULL,
	seats_available INT NOT NULL,
	total_seats INT NOT NULL,
	fare_cents BIGINT NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`

const bookingsDDL = `
CREATE TABLE IF NOT EXISTS bookings (
	id VARCHAR(64) NOT NULL PRIMARY KEY,
	position INT NOT NULL,
	passenger_name VARCHAR(255) NOT NULL,
	passenger_age INT NOT NULL,
	passenger_gender VARCHAR(50) NOT NULL,
	passenger_phone VARCHAR(100) NOT NULL,
	passenger_email VARCHAR(255) NOT NULL DEFAULT '',
	bus_id VARCHAR(64) NOT NULL,
	seat_number INT NOT NULL,
	fare_cents BIGINT NOT NULL,
	status VARCHAR(16) NOT NULL,
	created_at VARCHAR(32) NOT NULL DEFAULT '',
	KEY idx_bus (bus_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`

const metaDDL = `
CREATE TABLE IF NOT EXISTS store_meta (
	name VARCHAR(64) NOT NULL PRIMARY KEY,
	value VARCHAR(255) NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`

// Init creates the tables when missing and adds columns newer releases need.
// Buses are seeded into an empty table once; the store_meta marker keeps a
// table emptied later from being seeded again.
func (s MySQLStore) Init(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("mysql store: db not available")
	}
	if _, err := s.DB.ExecContext(ctx, busesDDL); err != nil {
		return fmt.Errorf("create buses table: %w", err)
	}
	if _, err := s.DB.ExecContext(ctx, bookingsDDL); err != nil {
		return fmt.Errorf("create bookings table: %w", err)
	}
	if err := s.migrateBookings(ctx); err != nil {
		return err
	}

	if _, err := s.DB.ExecContext(ctx, metaDDL); err != nil {
		return fmt.Errorf("create store_meta table: %w", err)
	}

	var seeded int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM store_meta WHERE name = 'seeded'`).Scan(&seeded); err != nil {
		return fmt.Errorf("check seed marker: %w", err)
	}
	if seeded > 0 {
		return nil
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM buses`).Scan(&count); err != nil {
		return fmt.Errorf("count buses: %w", err)
	}
	if count == 0 {
		if err := s.SaveBuses(ctx, SeedBuses()); err != nil {
			return err
		}
	}
	if _, err := s.DB.ExecContext(ctx, `INSERT INTO store_meta (name, value) VALUES ('seeded', '1')`); err != nil {
		return fmt.Errorf("write seed marker: %w", err)
	}
	return nil
}

func (s MySQLStore) LoadBuses(ctx context.Context) ([]models.Bus, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, source, destination, seats_available, total_seats, fare_cents
		FROM buses
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query buses: %w", err)
	}
	defer rows.Close()

	buses := []models.Bus{}
	for rows.Next() {
		var b models.Bus
		var fare int64
		if err := rows.Scan(&b.ID, &b.Source, &b.Destination, &b.SeatsAvailable, &b.TotalSeats, &fare); err != nil {
			return nil, fmt.Errorf("scan bus row: %w", err)
		}
		b.FarePerSeat = models.Money(fare)
		if err := b.Validate(); err != nil {
			return nil, err
		}
		buses = append(buses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bus rows: %w", err)
	}
	return buses, nil
}

func (s MySQLStore) LoadBookings(ctx context.Context) ([]models.Booking, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, passenger_name, passenger_age, passenger_gender, passenger_phone, passenger_email,
			bus_id, seat_number, fare_cents, status, created_at
		FROM bookings
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		var fare int64
		var status string
		if err := rows.Scan(
			&b.ID,
			&b.Passenger.Name,
			&b.Passenger.Age,
			&b.Passenger.Gender,
			&b.Passenger.Phone,
			&b.Passenger.Email,
			&b.BusID,
			&b.SeatNumber,
			&fare,
			&status,
			&b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		b.Fare = models.Money(fare)
		if b.Status, err = models.ParseBookingStatus(status); err != nil {
			return nil, fmt.Errorf("booking %s: %w", b.ID, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}
	return bookings, nil
}

func (s MySQLStore) SaveBuses(ctx context.Context, buses []models.Bus) error {
	return s.replaceAll(ctx, "buses", len(buses), func(tx *sql.Tx, i int) error {
		b := buses[i]
		_, err := tx.ExecContext(ctx, `
			INSERT INTO buses (id, position, source, destination, seats_available, total_seats, fare_cents)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, b.ID, i, b.Source, b.Destination, b.SeatsAvailable, b.TotalSeats, int64(b.FarePerSeat))
		return err
	})
}

func (s MySQLStore) SaveBookings(ctx context.Context, bookings []models.Booking) error {
	return s.replaceAll(ctx, "bookings", len(bookings), func(tx *sql.Tx, i int) error {
		b := bookings[i]
		_, err := tx.ExecContext(ctx, `
			INSERT INTO bookings (id, position, passenger_name, passenger_age, passenger_gender, passenger_phone,
				passenger_email, bus_id, seat_number, fare_cents, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, b.ID, i, b.Passenger.Name, b.Passenger.Age, b.Passenger.Gender, b.Passenger.Phone,
			b.Passenger.Email, b.BusID, b.SeatNumber, int64(b.Fare), string(b.Status), b.CreatedAt)
		return err
	})
}

// replaceAll deletes every row of table and inserts n rows in one transaction.
func (s MySQLStore) replaceAll(ctx context.Context, table string, n int, insert func(tx *sql.Tx, i int) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s save: %w", table, err)
	}
	rollback := func(cause error) error {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", cause, rbErr)
		}
		return cause
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
		return rollback(fmt.Errorf("clear %s: %w", table, err))
	}
	for i := 0; i < n; i++ {
		if err := insert(tx, i); err != nil {
			return rollback(fmt.Errorf("insert into %s: %w", table, err))
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s save: %w", table, err)
	}
	return nil
}
