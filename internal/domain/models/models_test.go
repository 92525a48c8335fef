package models

import (
	"encoding/json"
	"testing"

	"busreservation/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusSeatInventoryStaysInRange(t *testing.T) {
	b := NewBus("R1", "Delhi", "Mumbai", 2, 10000)

	require.True(t, b.BookSeat())
	require.True(t, b.BookSeat())
	assert.False(t, b.BookSeat())
	assert.Equal(t, 0, b.SeatsAvailable)
	assert.Equal(t, 2, b.BookedSeats())

	b.ReleaseSeat()
	b.ReleaseSeat()
	b.ReleaseSeat()
	assert.Equal(t, 2, b.SeatsAvailable)
}

func TestBookingCancelIsOneWay(t *testing.T) {
	b := Booking{ID: "BK1", Status: StatusConfirmed}
	require.True(t, b.Cancel())
	assert.Equal(t, StatusCancelled, b.Status)
	assert.False(t, b.Cancel())
	assert.Equal(t, StatusCancelled, b.Status)
}

func TestParseBookingStatus(t *testing.T) {
	s, err := ParseBookingStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, s)

	_, err = ParseBookingStatus("PENDING")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestBusRecordRoundTrip(t *testing.T) {
	in := Bus{ID: "BUS101", Source: "Delhi", Destination: "Mumbai", TotalSeats: 40, SeatsAvailable: 37, FarePerSeat: 120000}
	line := in.Record()
	assert.Equal(t, "BUS101,Delhi,Mumbai,37,40,1200.00", line)

	out, err := ParseBusRecord(line)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParseBusRecordRejectsBadInventory(t *testing.T) {
	for _, line := range []string{
		"BUS1,A,B,41,40,10.00",
		"BUS1,A,B,-1,40,10.00",
		"BUS1,A,B,0,0,10.00",
		"BUS1,A,B,x,40,10.00",
		"BUS1,A,B,1,40",
	} {
		_, err := ParseBusRecord(line)
		assert.Error(t, err, line)
	}
}

func TestBookingRecordRoundTrip(t *testing.T) {
	in := Booking{
		ID:         "BK1700000000000123",
		Passenger:  Passenger{Name: "Asha Rao", Age: 31, Gender: "F", Phone: "9800000000", Email: "asha@example.com"},
		BusID:      "BUS101",
		SeatNumber: 4,
		CreatedAt:  "2026-10-15 09:30:00",
		Fare:       120000,
		Status:     StatusCancelled,
	}
	line := in.Record()
	assert.Equal(t,
		"BK1700000000000123,Asha Rao,31,F,9800000000,BUS101,4,1200.00,CANCELLED,2026-10-15 09:30:00,asha@example.com",
		line)

	out, err := ParseBookingRecord(line)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParseBookingRecordLegacyNineFields(t *testing.T) {
	out, err := ParseBookingRecord("BK1,Ravi,40,M,9811111111,BUS103,2,800.00,CONFIRMED")
	require.NoError(t, err)
	assert.Equal(t, "BK1", out.ID)
	assert.Equal(t, "Ravi", out.Passenger.Name)
	assert.Equal(t, 2, out.SeatNumber)
	assert.Equal(t, Money(80000), out.Fare)
	assert.Equal(t, StatusConfirmed, out.Status)
	assert.Empty(t, out.CreatedAt)
	assert.Empty(t, out.Passenger.Email)
}

func TestParseBookingRecordErrors(t *testing.T) {
	for _, line := range []string{
		"BK1,Ravi,forty,M,981,BUS103,2,800.00,CONFIRMED",
		"BK1,Ravi,40,M,981,BUS103,two,800.00,CONFIRMED",
		"BK1,Ravi,40,M,981,BUS103,2,2026-01-01 10:00:00,CONFIRMED",
		"BK1,Ravi,40,M,981,BUS103,2,800.00,BOOKED",
		"BK1,Ravi,40,M,981,BUS103,2,800.00,CONFIRMED,2026-01-01 10:00:00",
		"BK1,Ravi,40,M,981,BUS103,2,--8,CONFIRMED",
		"BK1,Ravi,40,M,981,BUS103,2,800.-5,CONFIRMED",
		"BK1,Ravi,40,M,981,BUS103,2,800.00,CONFIRMED,01/01/2026,ravi@example.com",
	} {
		_, err := ParseBookingRecord(line)
		assert.Error(t, err, line)
	}
}

func TestPassengerValidate(t *testing.T) {
	ok := Passenger{Name: "Asha", Age: 30, Gender: "F", Phone: "98"}
	require.NoError(t, ok.Validate())

	cases := []Passenger{
		{Name: " ", Age: 30, Phone: "98"},
		{Name: "Asha", Age: 0, Phone: "98"},
		{Name: "Asha", Age: 30, Phone: ""},
		{Name: "Asha, R", Age: 30, Phone: "98"},
		{Name: "Asha", Age: 30, Phone: "98", Email: "a,b@example.com"},
	}
	for _, p := range cases {
		err := p.Validate()
		require.Error(t, err, "%+v", p)
		assert.True(t, domain.IsValidation(err))
	}
}

func TestMoneyJSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		Fare Money `json:"fare"`
	}{Fare: 95050})
	require.NoError(t, err)
	assert.JSONEq(t, `{"fare":950.50}`, string(raw))

	var out struct {
		Fare Money `json:"fare"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"fare":12.5}`), &out))
	assert.Equal(t, Money(1250), out.Fare)
}

func TestParseBookingRecordAllowsEmptyCreatedAt(t *testing.T) {
	out, err := ParseBookingRecord("BK1,Ravi,40,M,981,BUS103,2,800.00,CONFIRMED,,ravi@example.com")
	require.NoError(t, err)
	assert.Empty(t, out.CreatedAt)
	assert.Equal(t, "ravi@example.com", out.Passenger.Email)
}
