package repositories

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"busreservation/internal/domain/models"
)

const (
	BusesFile    = "buses.csv"
	BookingsFile = "bookings.csv"
)

// FileStore keeps one record per line in buses.csv and bookings.csv under Dir.
type FileStore struct {
	Dir string
}

func (s FileStore) busesPath() string    { return filepath.Join(s.dir(), BusesFile) }
func (s FileStore) bookingsPath() string { return filepath.Join(s.dir(), BookingsFile) }

func (s FileStore) dir() string {
	if strings.TrimSpace(s.Dir) == "" {
		return "."
	}
	return s.Dir
}

// Init creates the data files when missing, seeding buses.csv.
func (s FileStore) Init(ctx context.Context) error {
	if err := os.MkdirAll(s.dir(), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if _, err := os.Stat(s.busesPath()); errors.Is(err, fs.ErrNotExist) {
		if err := s.SaveBuses(ctx, SeedBuses()); err != nil {
			return err
		}
	} else if err != nil {
		return fmt.Errorf("stat %s: %w", s.busesPath(), err)
	}
	if _, err := os.Stat(s.bookingsPath()); errors.Is(err, fs.ErrNotExist) {
		if err := s.SaveBookings(ctx, nil); err != nil {
			return err
		}
	} else if err != nil {
		return fmt.Errorf("stat %s: %w", s.bookingsPath(), err)
	}
	return nil
}

func (s FileStore) LoadBuses(ctx context.Context) ([]models.Bus, error) {
	lines, err := readLines(s.busesPath())
	if err != nil {
		return nil, err
	}
	buses := make([]models.Bus, 0, len(lines))
	for i, line := range lines {
		b, err := models.ParseBusRecord(line)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", BusesFile, i+1, err)
		}
		buses = append(buses, b)
	}
	return buses, nil
}

func (s FileStore) LoadBookings(ctx context.Context) ([]models.Booking, error) {
	lines, err := readLines(s.bookingsPath())
	if err != nil {
		return nil, err
	}
	bookings := make([]models.Booking, 0, len(lines))
	for i, line := range lines {
		b, err := models.ParseBookingRecord(line)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", BookingsFile, i+1, err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (s FileStore) SaveBuses(ctx context.Context, buses []models.Bus) error {
	lines := make([]string, 0, len(buses))
	for _, b := range buses {
		lines = append(lines, b.Record())
	}
	return writeLines(s.busesPath(), lines)
}

func (s FileStore) SaveBookings(ctx context.Context, bookings []models.Booking) error {
	lines := make([]string, 0, len(bookings))
	for _, b := range bookings {
		lines = append(lines, b.Record())
	}
	return writeLines(s.bookingsPath(), lines)
}

// readLines returns the non-blank lines of path; a missing file reads as empty.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

// writeLines replaces path through a temp file and rename so a failed write
// never leaves a truncated file behind.
func writeLines(path string, lines []string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			tmp.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
