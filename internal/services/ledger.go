package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"busreservation/internal/domain"
	"busreservation/internal/domain/models"
	"busreservation/internal/repositories"
	"busreservation/internal/utils"
)

const bookingIDPrefix = "BK"

// Ledger owns the buses and bookings and is the only place that mutates them.
// Every method holds one mutex for its whole duration, including the save.
type Ledger struct {
	mu       sync.Mutex
	store    repositories.Store
	buses    []models.Bus
	bookings []models.Booking

	now        func() time.Time
	rnd        *rand.Rand
	lastIDTime int64
}

// LedgerOption customises a Ledger built by NewLedger.
type LedgerOption func(*Ledger)

// WithClock replaces time.Now for booking timestamps and ids.
func WithClock(now func() time.Time) LedgerOption {
	return func(l *Ledger) { l.now = now }
}

// WithRand replaces the random source used for booking id suffixes.
func WithRand(r *rand.Rand) LedgerOption {
	return func(l *Ledger) { l.rnd = r }
}

// NewLedger loads both collections from store. Any load failure is a
// PersistenceError.
func NewLedger(ctx context.Context, store repositories.Store, opts ...LedgerOption) (*Ledger, error) {
	l := &Ledger{
		store: store,
		now:   time.Now,
		rnd:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
	}
	for _, opt := range opts {
		opt(l)
	}

	buses, err := store.LoadBuses(ctx)
	if err != nil {
		return nil, domain.PersistenceError{Op: "load buses", Err: err}
	}
	bookings, err := store.LoadBookings(ctx)
	if err != nil {
		return nil, domain.PersistenceError{Op: "load bookings", Err: err}
	}
	if err := checkUniqueIDs(buses, bookings); err != nil {
		return nil, domain.PersistenceError{Op: "load", Err: err}
	}

	l.buses = buses
	l.bookings = bookings
	utils.LogEvent(utils.RequestIDFromContext(ctx), "ledger", "load",
		fmt.Sprintf("buses=%d bookings=%d", len(buses), len(bookings)))
	return l, nil
}

func checkUniqueIDs(buses []models.Bus, bookings []models.Booking) error {
	seenBus := make(map[string]struct{}, len(buses))
	for _, b := range buses {
		key := strings.ToUpper(strings.TrimSpace(b.ID))
		if _, dup := seenBus[key]; dup {
			return fmt.Errorf("duplicate bus id %s", b.ID)
		}
		seenBus[key] = struct{}{}
	}
	seenBooking := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		if _, dup := seenBooking[b.ID]; dup {
			return fmt.Errorf("duplicate booking id %s", b.ID)
		}
		seenBooking[b.ID] = struct{}{}
	}
	return nil
}

// ListBuses returns every bus in load order.
func (l *Ledger) ListBuses() []models.Bus {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Bus{}, l.buses...)
}

// SearchBuses matches source and destination ignoring case and keeps only
// buses with a free seat.
func (l *Ledger) SearchBuses(source, destination string) []models.Bus {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := []models.Bus{}
	for _, b := range l.buses {
		if utils.SameFold(b.Source, source) && utils.SameFold(b.Destination, destination) && b.SeatsAvailable > 0 {
			out = append(out, b)
		}
	}
	return out
}

// GetBus looks a bus up by id, ignoring case.
func (l *Ledger) GetBus(busID string) (models.Bus, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, err := l.busIndex(busID)
	if err != nil {
		return models.Bus{}, err
	}
	return l.buses[i], nil
}

func (l *Ledger) busIndex(busID string) (int, error) {
	for i := range l.buses {
		if utils.SameFold(l.buses[i].ID, busID) {
			return i, nil
		}
	}
	return -1, domain.NotFoundError{Resource: "bus", ID: busID}
}

func (l *Ledger) bookingIndex(bookingID string) (int, error) {
	id := strings.TrimSpace(bookingID)
	for i := range l.bookings {
		if l.bookings[i].ID == id {
			return i, nil
		}
	}
	return -1, domain.NotFoundError{Resource: "booking", ID: bookingID}
}

// BookSeat sells one seat on busID to passenger and persists both collections.
// Passenger validation is left to the caller. If the save fails the
// in-memory change is undone and a PersistenceError is returned.
func (l *Ledger) BookSeat(ctx context.Context, busID string, passenger models.Passenger) (models.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, err := l.busIndex(busID)
	if err != nil {
		return models.Booking{}, err
	}
	bus := &l.buses[i]
	if !bus.BookSeat() {
		return models.Booking{}, domain.ConflictError{
			Resource: "bus " + bus.ID,
			Err:      domain.ErrNoSeatsAvailable,
		}
	}

	now := l.now()
	booking := models.Booking{
		ID:         l.nextBookingID(now),
		Passenger:  passenger,
		BusID:      bus.ID,
		SeatNumber: l.nextSeatNumber(*bus),
		CreatedAt:  utils.FormatDateTime(now),
		Fare:       bus.FarePerSeat,
		Status:     models.StatusConfirmed,
	}
	l.bookings = append(l.bookings, booking)

	if err := l.persist(ctx); err != nil {
		l.bookings = l.bookings[:len(l.bookings)-1]
		l.buses[i].ReleaseSeat()
		l.restoreAfterFailedSave(ctx)
		return models.Booking{}, err
	}

	utils.LogEvent(utils.RequestIDFromContext(ctx), "ledger", "book_seat",
		fmt.Sprintf("booking_id=%s bus_id=%s seat=%d seats_left=%d", booking.ID, booking.BusID, booking.SeatNumber, l.buses[i].SeatsAvailable))
	return booking, nil
}

// CancelBooking cancels a confirmed booking and puts its seat back on the bus.
// Unknown ids are NotFound; a cancelled booking is a Conflict wrapping
// ErrAlreadyCancelled. Neither case changes state.
func (l *Ledger) CancelBooking(ctx context.Context, bookingID string) (models.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	bi, err := l.bookingIndex(bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	booking := &l.bookings[bi]
	if !booking.IsConfirmed() {
		return models.Booking{}, domain.ConflictError{
			Resource: "booking " + booking.ID,
			Err:      domain.ErrAlreadyCancelled,
		}
	}

	busIdx, busErr := l.busIndex(booking.BusID)
	var prevSeats int
	if busErr == nil {
		prevSeats = l.buses[busIdx].SeatsAvailable
	}

	booking.Cancel()
	if busErr == nil {
		l.buses[busIdx].ReleaseSeat()
	} else {
		utils.LogEvent(utils.RequestIDFromContext(ctx), "ledger", "cancel_booking",
			fmt.Sprintf("booking_id=%s bus_id=%s missing, seat not restocked", booking.ID, booking.BusID))
	}

	if err := l.persist(ctx); err != nil {
		l.bookings[bi].Status = models.StatusConfirmed
		if busErr == nil {
			l.buses[busIdx].SeatsAvailable = prevSeats
		}
		l.restoreAfterFailedSave(ctx)
		return models.Booking{}, err
	}

	utils.LogEvent(utils.RequestIDFromContext(ctx), "ledger", "cancel_booking",
		fmt.Sprintf("booking_id=%s bus_id=%s", l.bookings[bi].ID, l.bookings[bi].BusID))
	return l.bookings[bi], nil
}

// GetBooking returns a booking of any status.
func (l *Ledger) GetBooking(bookingID string) (models.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, err := l.bookingIndex(bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	return l.bookings[i], nil
}

// ListBookings returns every booking in creation order.
func (l *Ledger) ListBookings() []models.Booking {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Booking{}, l.bookings...)
}

// ActiveBookings returns the confirmed bookings in creation order.
func (l *Ledger) ActiveBookings() []models.Booking {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := []models.Booking{}
	for _, b := range l.bookings {
		if b.IsConfirmed() {
			out = append(out, b)
		}
	}
	return out
}

// Snapshot returns both collections taken under one lock.
func (l *Ledger) Snapshot() ([]models.Bus, []models.Booking) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Bus{}, l.buses...), append([]models.Booking{}, l.bookings...)
}

// nextSeatNumber picks the lowest seat of bus not held by a confirmed
// booking. It must be called before the new booking is appended.
func (l *Ledger) nextSeatNumber(bus models.Bus) int {
	held := make(map[int]bool)
	for _, b := range l.bookings {
		if b.IsConfirmed() && utils.SameFold(b.BusID, bus.ID) {
			held[b.SeatNumber] = true
		}
	}
	for seat := 1; seat <= bus.TotalSeats; seat++ {
		if !held[seat] {
			return seat
		}
	}
	// Only reachable when stored bookings disagree with the inventory.
	return bus.BookedSeats()
}

// nextBookingID returns BK<unix millis><3 random digits>. The millisecond part
// never repeats within a ledger, and ids already present are skipped.
func (l *Ledger) nextBookingID(now time.Time) string {
	for {
		ms := now.UnixMilli()
		if ms <= l.lastIDTime {
			ms = l.lastIDTime + 1
		}
		l.lastIDTime = ms

		id := fmt.Sprintf("%s%d%03d", bookingIDPrefix, ms, l.rnd.IntN(1000))
		if !l.bookingExists(id) {
			return id
		}
	}
}

func (l *Ledger) bookingExists(id string) bool {
	for _, b := range l.bookings {
		if b.ID == id {
			return true
		}
	}
	return false
}

func (l *Ledger) persist(ctx context.Context) error {
	if err := l.store.SaveBuses(ctx, l.buses); err != nil {
		return domain.PersistenceError{Op: "save buses", Err: err}
	}
	if err := l.store.SaveBookings(ctx, l.bookings); err != nil {
		return domain.PersistenceError{Op: "save bookings", Err: err}
	}
	return nil
}

// restoreAfterFailedSave rewrites the rolled-back state so a bus save that
// succeeded before a failed booking save does not linger on disk.
func (l *Ledger) restoreAfterFailedSave(ctx context.Context) {
	if err := l.persist(ctx); err != nil {
		utils.LogEvent(utils.RequestIDFromContext(ctx), "ledger", "restore",
			fmt.Sprintf("store still diverges from memory: %v", err))
	}
}
