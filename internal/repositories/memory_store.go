package repositories

import (
	"context"
	"sync"

	"busreservation/internal/domain/models"
)

// MemoryStore keeps the collections in process.
type MemoryStore struct {
	mu       sync.Mutex
	buses    []models.Bus
	bookings []models.Booking
	saveErr  error
	saves    int
}

func NewMemoryStore(buses []models.Bus, bookings []models.Booking) *MemoryStore {
	return &MemoryStore{
		buses:    append([]models.Bus(nil), buses...),
		bookings: append([]models.Booking(nil), bookings...),
	}
}

// FailSaves makes subsequent saves return err; nil restores normal saving.
func (s *MemoryStore) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// Saves counts successful save calls.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *MemoryStore) LoadBuses(ctx context.Context) ([]models.Bus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Bus(nil), s.buses...), nil
}

func (s *MemoryStore) LoadBookings(ctx context.Context) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Booking(nil), s.bookings...), nil
}

func (s *MemoryStore) SaveBuses(ctx context.Context, buses []models.Bus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.buses = append([]models.Bus(nil), buses...)
	s.saves++
	return nil
}

func (s *MemoryStore) SaveBookings(ctx context.Context, bookings []models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.bookings = append([]models.Booking(nil), bookings...)
	s.saves++
	return nil
}
