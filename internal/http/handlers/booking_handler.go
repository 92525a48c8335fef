package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"busreservation/internal/domain"
	"busreservation/internal/domain/models"
	"busreservation/internal/utils"

	"github.com/gin-gonic/gin"
)

type passengerPayload struct {
	Name   Stringish `json:"name"`
	Age    Stringish `json:"age"`
	Gender Stringish `json:"gender"`
	Phone  Stringish `json:"phone"`
	Email  Stringish `json:"email"`
}

type createBookingRequest struct {
	BusID     Stringish        `json:"bus_id"`
	Passenger passengerPayload `json:"passenger"`
}

// toPassenger converts and validates user input; ages arrive as numbers or strings.
func (p passengerPayload) toPassenger() (models.Passenger, error) {
	age, err := strconv.Atoi(p.Age.String())
	if err != nil {
		return models.Passenger{}, domain.ValidationError{Field: "age", Msg: "must be a number", Err: err}
	}
	out := models.Passenger{
		Name:   utils.NormalizeSpace(p.Name.String()),
		Age:    age,
		Gender: p.Gender.String(),
		Phone:  p.Phone.String(),
		Email:  p.Email.String(),
	}
	if err := out.Validate(); err != nil {
		return models.Passenger{}, err
	}
	return out, nil
}

// POST /api/bookings
func (h *Handlers) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	busID := strings.ToUpper(req.BusID.String())
	if busID == "" {
		RespondDomainError(c, domain.ValidationError{Field: "bus_id", Msg: "is required"})
		return
	}
	passenger, err := req.Passenger.toPassenger()
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	booking, err := h.Ledger.BookSeat(c.Request.Context(), busID, passenger)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GET /api/bookings, ?status=CONFIRMED lists active bookings only.
func (h *Handlers) ListBookings(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("status"))
	if raw == "" {
		c.JSON(http.StatusOK, gin.H{"bookings": h.Ledger.ListBookings()})
		return
	}
	status, err := models.ParseBookingStatus(raw)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if status == models.StatusConfirmed {
		c.JSON(http.StatusOK, gin.H{"bookings": h.Ledger.ActiveBookings()})
		return
	}
	out := []models.Booking{}
	for _, b := range h.Ledger.ListBookings() {
		if b.Status == status {
			out = append(out, b)
		}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

// GET /api/bookings/:id
func (h *Handlers) GetBooking(c *gin.Context) {
	booking, err := h.Ledger.GetBooking(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// POST /api/bookings/:id/cancel
func (h *Handlers) CancelBooking(c *gin.Context) {
	booking, err := h.Ledger.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking": booking,
		"refund":  booking.Fare,
	})
}
