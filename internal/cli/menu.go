// Package cli is the interactive text menu over the reservation ledger.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"busreservation/internal/domain"
	"busreservation/internal/domain/models"
	"busreservation/internal/services"
	"busreservation/internal/utils"
)

// Menu reads choices from in and writes every screen to out.
type Menu struct {
	Ledger  *services.Ledger
	Reports services.ReportsService
	Docs    services.DocsService

	in  *bufio.Scanner
	out io.Writer
}

// NewMenu wires the report and ticket services over ledger.
func NewMenu(ledger *services.Ledger, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		Ledger:  ledger,
		Reports: services.ReportsService{Ledger: ledger},
		Docs:    services.DocsService{Ledger: ledger},
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run loops until the user picks Exit or input ends. Operation errors are
// printed and the loop continues.
func (m *Menu) Run(ctx context.Context) error {
	m.println("")
	m.println("==============================================")
	m.println("     WELCOME TO BUS RESERVATION SYSTEM")
	m.println("==============================================")

	for {
		m.showMenu()
		choice, err := m.readInt("Enter your choice: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			m.viewAllBuses()
		case 2:
			err = m.searchBuses()
		case 3:
			err = m.bookTicket(ctx)
		case 4:
			err = m.cancelTicket(ctx)
		case 5:
			err = m.viewBooking()
		case 6:
			m.viewAllBookings()
		case 7:
			m.viewRevenueReport()
		case 8:
			m.println("\nThank you for using Bus Reservation System!")
			return nil
		default:
			m.println("Invalid choice! Please try again.")
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) showMenu() {
	m.println("")
	m.println("+-----------------------------------------+")
	m.println("|              MAIN MENU                  |")
	m.println("+-----------------------------------------+")
	m.println("|  1. View All Buses                      |")
	m.println("|  2. Search Buses                        |")
	m.println("|  3. Book Ticket                         |")
	m.println("|  4. Cancel Ticket                       |")
	m.println("|  5. View Booking Details                |")
	m.println("|  6. View All Bookings                   |")
	m.println("|  7. View Revenue Report                 |")
	m.println("|  8. Exit                                |")
	m.println("+-----------------------------------------+")
}

func (m *Menu) viewAllBuses() {
	m.printBuses(m.Ledger.ListBuses())
}

func (m *Menu) searchBuses() error {
	source, err := m.readLine("\nEnter source city: ")
	if err != nil {
		return err
	}
	destination, err := m.readLine("Enter destination city: ")
	if err != nil {
		return err
	}
	buses := m.Ledger.SearchBuses(source, destination)
	if len(buses) == 0 {
		m.println("\nNo buses found for this route.")
		return nil
	}
	m.printBuses(buses)
	return nil
}

func (m *Menu) bookTicket(ctx context.Context) error {
	m.println("\n--- BOOK A TICKET ---")

	var p models.Passenger
	var err error
	if p.Name, err = m.readLine("Enter passenger name: "); err != nil {
		return err
	}
	if p.Age, err = m.readInt("Enter age: "); err != nil {
		return err
	}
	if p.Gender, err = m.readLine("Enter gender (M/F/Other): "); err != nil {
		return err
	}
	if p.Phone, err = m.readLine("Enter phone number: "); err != nil {
		return err
	}
	if p.Email, err = m.readLine("Enter email (optional): "); err != nil {
		return err
	}

	m.viewAllBuses()
	busID, err := m.readLine("Enter bus number: ")
	if err != nil {
		return err
	}

	if err := p.Validate(); err != nil {
		m.printf("\nBooking failed: %s\n", describe(err))
		return nil
	}
	booking, err := m.Ledger.BookSeat(ctx, strings.ToUpper(busID), p)
	if err != nil {
		m.printf("\nBooking failed: %s\n", describe(err))
		return nil
	}

	m.println("\nBooking successful!")
	m.printTicket(booking.ID)
	return nil
}

func (m *Menu) cancelTicket(ctx context.Context) error {
	id, err := m.readLine("\nEnter booking ID to cancel: ")
	if err != nil {
		return err
	}
	booking, err := m.Ledger.GetBooking(id)
	if err != nil {
		m.printf("\nCancellation failed: %s\n", describe(err))
		return nil
	}
	if !booking.IsConfirmed() {
		m.println("\nThis booking is already cancelled.")
		return nil
	}

	confirm, err := m.readLine("Are you sure you want to cancel? (Y/N): ")
	if err != nil {
		return err
	}
	if !strings.EqualFold(confirm, "Y") {
		m.println("\nCancellation aborted.")
		return nil
	}

	cancelled, err := m.Ledger.CancelBooking(ctx, id)
	if err != nil {
		m.printf("\nCancellation failed: %s\n", describe(err))
		return nil
	}
	m.println("\nBooking cancelled successfully!")
	m.printf("Refund amount: %s\n", utils.FormatRupee(int64(cancelled.Fare)))
	return nil
}

func (m *Menu) viewBooking() error {
	id, err := m.readLine("\nEnter booking ID: ")
	if err != nil {
		return err
	}
	m.printTicket(id)
	return nil
}

func (m *Menu) viewAllBookings() {
	bookings := m.Ledger.ListBookings()
	if len(bookings) == 0 {
		m.println("No bookings found.")
		return
	}
	m.println("\n" + strings.Repeat("=", 90))
	m.println("                              ALL BOOKINGS")
	m.println(strings.Repeat("=", 90))
	m.printf("%-18s %-20s %-10s %-8s %-12s %-12s\n", "Booking ID", "Passenger", "Bus No", "Seat", "Fare", "Status")
	m.println(strings.Repeat("-", 90))
	for _, b := range bookings {
		m.printf("%-18s %-20s %-10s %-8d %-12s %-12s\n",
			b.ID, b.Passenger.Name, b.BusID, b.SeatNumber, utils.FormatRupee(int64(b.Fare)), b.Status)
	}
	m.println(strings.Repeat("=", 90))
}

func (m *Menu) viewRevenueReport() {
	rev := m.Reports.Revenue()
	m.println("\n" + strings.Repeat("=", 50))
	m.println("              REVENUE REPORT")
	m.println(strings.Repeat("=", 50))
	m.printf("  Total Bookings     : %d\n", rev.Total)
	m.printf("  Confirmed Bookings : %d\n", rev.Confirmed)
	m.printf("  Cancelled Bookings : %d\n", rev.Cancelled)
	m.printf("  Total Revenue      : %s\n", utils.FormatRupee(int64(rev.TotalRevenue)))
	m.println(strings.Repeat("=", 50))

	occ := m.Reports.Occupancy()
	m.println("              OCCUPANCY")
	m.println(strings.Repeat("-", 50))
	for _, b := range occ.Buses {
		m.printf("  %-8s %3d/%-3d seats booked\n", b.BusID, b.Booked, b.TotalSeats)
	}
	m.printf("  Overall            : %d/%d (%.2f%%)\n", occ.Booked, occ.Capacity, occ.Rate)
	m.println(strings.Repeat("=", 50))
}

func (m *Menu) printBuses(buses []models.Bus) {
	if len(buses) == 0 {
		m.println("No buses available.")
		return
	}
	m.println("\n" + strings.Repeat("=", 80))
	m.println("                         AVAILABLE BUSES")
	m.println(strings.Repeat("=", 80))
	m.printf("%-10s %-15s %-15s %-15s %-10s\n", "Bus No", "Source", "Destination", "Seats Available", "Fare")
	m.println(strings.Repeat("-", 80))
	for _, b := range buses {
		m.printf("%-10s %-15s %-15s %-15s %-10s\n",
			b.ID, b.Source, b.Destination,
			fmt.Sprintf("%d/%d", b.SeatsAvailable, b.TotalSeats),
			utils.FormatRupee(int64(b.FarePerSeat)))
	}
	m.println(strings.Repeat("=", 80))
}

func (m *Menu) printTicket(bookingID string) {
	ticket, err := m.Docs.TicketText(bookingID)
	if err != nil {
		m.printf("\n%s\n", describe(err))
		return
	}
	m.println("")
	m.printf("%s", ticket)
}

// readLine returns io.EOF once input is exhausted.
func (m *Menu) readLine(prompt string) (string, error) {
	m.printf("%s", prompt)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

// readInt re-prompts until the line parses as an integer.
func (m *Menu) readInt(prompt string) (int, error) {
	for {
		line, err := m.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		m.println("Invalid input! Please enter a number.")
	}
}

func (m *Menu) println(s string) { fmt.Fprintln(m.out, s) }

func (m *Menu) printf(format string, args ...any) { fmt.Fprintf(m.out, format, args...) }

func describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoSeatsAvailable):
		return "No seats available on this bus."
	case errors.Is(err, domain.ErrAlreadyCancelled):
		return "This booking is already cancelled."
	case domain.IsPersistence(err):
		return "Could not save changes: " + err.Error()
	default:
		return err.Error()
	}
}
