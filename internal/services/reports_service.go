package services

import (
	"busreservation/internal/domain/models"
)

// LedgerSnapshotter is the read side ReportsService needs.
type LedgerSnapshotter interface {
	Snapshot() ([]models.Bus, []models.Booking)
}

// RevenueSummary counts bookings per status and sums confirmed fares.
type RevenueSummary struct {
	TotalRevenue models.Money `json:"total_revenue"`
	Confirmed    int          `json:"confirmed_bookings"`
	Cancelled    int          `json:"cancelled_bookings"`
	Total        int          `json:"total_bookings"`
}

// BusOccupancy is one bus's seat usage.
type BusOccupancy struct {
	BusID          string `json:"bus_id"`
	Source         string `json:"source"`
	Destination    string `json:"destination"`
	SeatsAvailable int    `json:"seats_available"`
	TotalSeats     int    `json:"total_seats"`
	Booked         int    `json:"booked"`
}

// OccupancyReport is per-bus usage plus fleet totals; Rate is a percentage.
type OccupancyReport struct {
	Buses    []BusOccupancy `json:"buses"`
	Booked   int            `json:"booked"`
	Capacity int            `json:"capacity"`
	Rate     float64        `json:"occupancy_rate"`
}

// ReportsService aggregates the ledger on every call; nothing is cached.
type ReportsService struct {
	Ledger LedgerSnapshotter
}

// Revenue sums the fares of confirmed bookings and counts bookings per status.
func (s ReportsService) Revenue() RevenueSummary {
	_, bookings := s.Ledger.Snapshot()
	return revenueOf(bookings)
}

func revenueOf(bookings []models.Booking) RevenueSummary {
	out := RevenueSummary{Total: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case models.StatusConfirmed:
			out.Confirmed++
			out.TotalRevenue += b.Fare
		case models.StatusCancelled:
			out.Cancelled++
		}
	}
	return out
}

// Occupancy reports per-bus seat usage and the fleet-wide rate, where booked
// is the number of confirmed bookings and capacity the sum of total seats.
func (s ReportsService) Occupancy() OccupancyReport {
	buses, bookings := s.Ledger.Snapshot()

	out := OccupancyReport{Buses: make([]BusOccupancy, 0, len(buses))}
	for _, b := range buses {
		out.Buses = append(out.Buses, BusOccupancy{
			BusID:          b.ID,
			Source:         b.Source,
			Destination:    b.Destination,
			SeatsAvailable: b.SeatsAvailable,
			TotalSeats:     b.TotalSeats,
			Booked:         b.BookedSeats(),
		})
		out.Capacity += b.TotalSeats
	}
	for _, b := range bookings {
		if b.IsConfirmed() {
			out.Booked++
		}
	}
	if out.Capacity > 0 {
		out.Rate = float64(out.Booked) / float64(out.Capacity) * 100
	}
	return out
}
