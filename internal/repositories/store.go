package repositories

import (
	"context"

	"busreservation/internal/domain/models"
)

// Store loads and saves the two ledger collections. Saves overwrite the whole
// collection.
type Store interface {
	LoadBuses(ctx context.Context) ([]models.Bus, error)
	LoadBookings(ctx context.Context) ([]models.Booking, error)
	SaveBuses(ctx context.Context, buses []models.Bus) error
	SaveBookings(ctx context.Context, bookings []models.Booking) error
}

// SeedBuses returns the routes a fresh store starts with.
func SeedBuses() []models.Bus {
	return []models.Bus{
		models.NewBus("BUS101", "Delhi", "Mumbai", 40, 120000),
		models.NewBus("BUS102", "Mumbai", "Bangalore", 35, 150000),
		models.NewBus("BUS103", "Delhi", "Jaipur", 30, 80000),
		models.NewBus("BUS104", "Bangalore", "Chennai", 32, 95000),
		models.NewBus("BUS105", "Mumbai", "Pune", 25, 45000),
	}
}
