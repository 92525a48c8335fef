package models

import (
	"fmt"
	"strings"

	"busreservation/internal/domain"
)

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// ParseBookingStatus accepts the two known statuses, case-insensitively.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusConfirmed:
		return StatusConfirmed, nil
	case StatusCancelled:
		return StatusCancelled, nil
	default:
		return "", domain.ValidationError{Field: "status", Msg: fmt.Sprintf("unknown booking status %q", s)}
	}
}

// Booking is one seat sold on one bus.
type Booking struct {
	ID         string        `json:"id"`
	Passenger  Passenger     `json:"passenger"`
	BusID      string        `json:"bus_id"`
	SeatNumber int           `json:"seat_number"`
	CreatedAt  string        `json:"created_at"`
	Fare       Money         `json:"fare"`
	Status     BookingStatus `json:"status"`
}

func (b Booking) IsConfirmed() bool { return b.Status == StatusConfirmed }

// Cancel moves a confirmed booking to CANCELLED. It returns false if the
// booking was not confirmed.
func (b *Booking) Cancel() bool {
	if b.Status != StatusConfirmed {
		return false
	}
	b.Status = StatusCancelled
	return true
}

func (b Booking) String() string {
	return fmt.Sprintf("Booking ID: %s | Bus: %s | Seat: %d | Fare: %s | Status: %s",
		b.ID, b.BusID, b.SeatNumber, b.Fare, b.Status)
}
