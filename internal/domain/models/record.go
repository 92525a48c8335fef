package models

import (
	"fmt"
	"strconv"
	"strings"

	"busreservation/internal/utils"
)

const (
	busRecordFields       = 6
	bookingRecordFields   = 9
	bookingRecordExtended = 11
)

// Record encodes the bus as
// busId,source,destination,seatsAvailable,totalSeats,farePerSeat.
func (b Bus) Record() string {
	return strings.Join([]string{
		b.ID,
		b.Source,
		b.Destination,
		strconv.Itoa(b.SeatsAvailable),
		strconv.Itoa(b.TotalSeats),
		b.FarePerSeat.String(),
	}, ",")
}

// ParseBusRecord decodes a line written by Bus.Record.
func ParseBusRecord(line string) (Bus, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != busRecordFields {
		return Bus{}, fmt.Errorf("bus record: want %d fields, got %d", busRecordFields, len(parts))
	}
	available, err := strconv.Atoi(strings.TrimSpace(parts[3]))
	if err != nil {
		return Bus{}, fmt.Errorf("bus record %s: seats available: %w", parts[0], err)
	}
	total, err := strconv.Atoi(strings.TrimSpace(parts[4]))
	if err != nil {
		return Bus{}, fmt.Errorf("bus record %s: total seats: %w", parts[0], err)
	}
	fare, err := utils.ParseMoney(parts[5])
	if err != nil {
		return Bus{}, fmt.Errorf("bus record %s: fare: %w", parts[0], err)
	}
	b := Bus{
		ID:             strings.TrimSpace(parts[0]),
		Source:         strings.TrimSpace(parts[1]),
		Destination:    strings.TrimSpace(parts[2]),
		SeatsAvailable: available,
		TotalSeats:     total,
		FarePerSeat:    Money(fare),
	}
	if err := b.Validate(); err != nil {
		return Bus{}, fmt.Errorf("bus record: %w", err)
	}
	return b, nil
}

// Record encodes the booking as
// bookingId,passengerName,passengerAge,passengerGender,passengerPhone,busId,seatNumber,fare,status,createdAt,email.
// The first nine fields are the legacy layout; the last two keep the round
// trip lossless.
func (b Booking) Record() string {
	return strings.Join([]string{
		b.ID,
		b.Passenger.Name,
		strconv.Itoa(b.Passenger.Age),
		b.Passenger.Gender,
		b.Passenger.Phone,
		b.BusID,
		strconv.Itoa(b.SeatNumber),
		b.Fare.String(),
		string(b.Status),
		b.CreatedAt,
		b.Passenger.Email,
	}, ",")
}

// ParseBookingRecord decodes a line written by Booking.Record. Nine-field
// legacy lines load with an empty creation date and email. A creation date,
// when present, must be "YYYY-MM-DD HH:MM:SS".
func ParseBookingRecord(line string) (Booking, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != bookingRecordFields && len(parts) != bookingRecordExtended {
		return Booking{}, fmt.Errorf("booking record: want %d or %d fields, got %d",
			bookingRecordFields, bookingRecordExtended, len(parts))
	}
	age, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return Booking{}, fmt.Errorf("booking record %s: age: %w", parts[0], err)
	}
	seat, err := strconv.Atoi(strings.TrimSpace(parts[6]))
	if err != nil {
		return Booking{}, fmt.Errorf("booking record %s: seat number: %w", parts[0], err)
	}
	fare, err := utils.ParseMoney(parts[7])
	if err != nil {
		return Booking{}, fmt.Errorf("booking record %s: fare: %w", parts[0], err)
	}
	status, err := ParseBookingStatus(parts[8])
	if err != nil {
		return Booking{}, fmt.Errorf("booking record %s: %w", parts[0], err)
	}

	b := Booking{
		ID: strings.TrimSpace(parts[0]),
		Passenger: Passenger{
			Name:   parts[1],
			Age:    age,
			Gender: parts[3],
			Phone:  parts[4],
		},
		BusID:      strings.TrimSpace(parts[5]),
		SeatNumber: seat,
		Fare:       Money(fare),
		Status:     status,
	}
	if len(parts) == bookingRecordExtended {
		if created := strings.TrimSpace(parts[9]); created != "" {
			if _, err := utils.ParseDateTime(created); err != nil {
				return Booking{}, fmt.Errorf("booking record %s: created at: %w", parts[0], err)
			}
			b.CreatedAt = created
		}
		b.Passenger.Email = parts[10]
	}
	return b, nil
}
