package models

import (
	"fmt"
	"strings"
)

// Bus is one route with a fixed seat inventory.
type Bus struct {
	ID             string `json:"id"`
	Source         string `json:"source"`
	Destination    string `json:"destination"`
	TotalSeats     int    `json:"total_seats"`
	SeatsAvailable int    `json:"seats_available"`
	FarePerSeat    Money  `json:"fare_per_seat"`
}

// NewBus returns a bus with every seat available.
func NewBus(id, source, destination string, totalSeats int, fare Money) Bus {
	return Bus{
		ID:             id,
		Source:         source,
		Destination:    destination,
		TotalSeats:     totalSeats,
		SeatsAvailable: totalSeats,
		FarePerSeat:    fare,
	}
}

// BookSeat takes one seat off the inventory. It returns false when the bus is full.
func (b *Bus) BookSeat() bool {
	if b.SeatsAvailable <= 0 {
		return false
	}
	b.SeatsAvailable--
	return true
}

// ReleaseSeat puts one seat back, never above TotalSeats.
func (b *Bus) ReleaseSeat() {
	if b.SeatsAvailable < b.TotalSeats {
		b.SeatsAvailable++
	}
}

// Validate checks the seat inventory and fare invariants.
func (b Bus) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return fmt.Errorf("bus id is required")
	}
	if b.TotalSeats <= 0 || b.SeatsAvailable < 0 || b.SeatsAvailable > b.TotalSeats {
		return fmt.Errorf("bus %s: seats %d/%d out of range", b.ID, b.SeatsAvailable, b.TotalSeats)
	}
	if b.FarePerSeat < 0 {
		return fmt.Errorf("bus %s: negative fare", b.ID)
	}
	return nil
}

func (b Bus) BookedSeats() int {
	return b.TotalSeats - b.SeatsAvailable
}

func (b Bus) String() string {
	return fmt.Sprintf("Bus[%s] %s -> %s | Seats: %d/%d | Fare: %s",
		b.ID, b.Source, b.Destination, b.SeatsAvailable, b.TotalSeats, b.FarePerSeat)
}
