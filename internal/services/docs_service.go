package services

import (
	"bytes"
	"fmt"
	"strings"

	"busreservation/internal/domain/models"
	"busreservation/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// TicketSource resolves a booking and the bus it belongs to.
type TicketSource interface {
	GetBooking(bookingID string) (models.Booking, error)
	GetBus(busID string) (models.Bus, error)
}

// DocsService renders tickets for a booking.
type DocsService struct {
	Ledger    TicketSource
	RequestID string
}

type ticketData struct {
	Booking models.Booking
	Bus     models.Bus
	HasBus  bool
}

func (s DocsService) load(bookingID string) (ticketData, error) {
	b, err := s.Ledger.GetBooking(bookingID)
	if err != nil {
		return ticketData{}, err
	}
	out := ticketData{Booking: b}
	if bus, err := s.Ledger.GetBus(b.BusID); err == nil {
		out.Bus = bus
		out.HasBus = true
	}
	return out, nil
}

func (d ticketData) route() string {
	if !d.HasBus {
		return "-"
	}
	return fmt.Sprintf("%s -> %s", d.Bus.Source, d.Bus.Destination)
}

func (d ticketData) lines() []string {
	b := d.Booking
	return []string{
		fmt.Sprintf("Booking ID    : %s", b.ID),
		fmt.Sprintf("Passenger Name: %s", utils.Safe(b.Passenger.Name, "-")),
		fmt.Sprintf("Age           : %d", b.Passenger.Age),
		fmt.Sprintf("Gender        : %s", utils.Safe(b.Passenger.Gender, "-")),
		fmt.Sprintf("Phone         : %s", utils.Safe(b.Passenger.Phone, "-")),
		fmt.Sprintf("Bus Number    : %s", b.BusID),
		fmt.Sprintf("Route         : %s", d.route()),
		fmt.Sprintf("Seat Number   : %d", b.SeatNumber),
		fmt.Sprintf("Fare          : %s", utils.FormatRupee(int64(b.Fare))),
		fmt.Sprintf("Booking Date  : %s", utils.Safe(b.CreatedAt, "-")),
		fmt.Sprintf("Status        : %s", b.Status),
	}
}

// TicketText renders the ticket the CLI prints after booking or lookup.
func (s DocsService) TicketText(bookingID string) (string, error) {
	d, err := s.load(bookingID)
	if err != nil {
		return "", err
	}
	rule := strings.Repeat("=", 60)
	var sb strings.Builder
	sb.WriteString(rule + "\n")
	sb.WriteString("                    BUS TICKET\n")
	sb.WriteString(rule + "\n")
	for i, line := range d.lines() {
		if i == 5 {
			sb.WriteString(strings.Repeat("-", 60) + "\n")
		}
		sb.WriteString("  " + line + "\n")
	}
	sb.WriteString(rule + "\n")
	sb.WriteString("        Thank you for choosing our service!\n")
	sb.WriteString(rule + "\n")
	return sb.String(), nil
}

// GenerateETicket renders a one-page PDF ticket and a file name for it.
func (s DocsService) GenerateETicket(bookingID string) ([]byte, string, error) {
	d, err := s.load(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", "booking_id="+d.Booking.ID)
	return buildETicketPDF(d)
}

func buildETicketPDF(d ticketData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUS E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Courier", "", 11)
	for _, line := range d.lines() {
		// Core fonts are cp1252; keep the ticket ASCII.
		pdf.Cell(0, 7, strings.ReplaceAll(line, "₹", "Rs. "))
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	note := "This e-ticket is valid for one passenger and one seat. Please show it at boarding."
	if d.Booking.Status == models.StatusCancelled {
		note = "This booking has been cancelled and is not valid for travel."
	}
	pdf.MultiCell(0, 6, note, "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%s_%s.pdf", safeFilenamePart(d.Booking.ID), safeFilenamePart(d.Booking.Passenger.Name))
	return buf.Bytes(), filename, nil
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if r := []rune(s); len(r) > 40 {
		s = string(r[:40])
	}
	return s
}
