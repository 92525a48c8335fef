package repositories

import (
	"context"
	"fmt"

	"busreservation/internal/domain/models"

	"github.com/go-redis/redis/v8"
)

const defaultRedisPrefix = "busres:"

// RedisStore keeps each collection as a list of encoded records.
type RedisStore struct {
	Client *redis.Client
	Prefix string
}

func (s RedisStore) key(name string) string {
	prefix := s.Prefix
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return prefix + name
}

func (s RedisStore) busesKey() string    { return s.key("buses") }
func (s RedisStore) bookingsKey() string { return s.key("bookings") }
func (s RedisStore) seededKey() string   { return s.key("seeded") }

// Init seeds the bus list the first time the store is used. A marker key
// records the seeding, so a bus list later emptied on purpose stays empty.
func (s RedisStore) Init(ctx context.Context) error {
	first, err := s.Client.SetNX(ctx, s.seededKey(), "1", 0).Result()
	if err != nil {
		return fmt.Errorf("mark %s: %w", s.seededKey(), err)
	}
	if !first {
		return nil
	}
	n, err := s.Client.Exists(ctx, s.busesKey()).Result()
	if err != nil {
		return fmt.Errorf("check %s: %w", s.busesKey(), err)
	}
	if n == 0 {
		return s.SaveBuses(ctx, SeedBuses())
	}
	return nil
}

func (s RedisStore) LoadBuses(ctx context.Context) ([]models.Bus, error) {
	lines, err := s.Client.LRange(ctx, s.busesKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.busesKey(), err)
	}
	buses := make([]models.Bus, 0, len(lines))
	for i, line := range lines {
		b, err := models.ParseBusRecord(line)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", s.busesKey(), i, err)
		}
		buses = append(buses, b)
	}
	return buses, nil
}

func (s RedisStore) LoadBookings(ctx context.Context) ([]models.Booking, error) {
	lines, err := s.Client.LRange(ctx, s.bookingsKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.bookingsKey(), err)
	}
	bookings := make([]models.Booking, 0, len(lines))
	for i, line := range lines {
		b, err := models.ParseBookingRecord(line)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", s.bookingsKey(), i, err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (s RedisStore) SaveBuses(ctx context.Context, buses []models.Bus) error {
	records := make([]interface{}, 0, len(buses))
	for _, b := range buses {
		records = append(records, b.Record())
	}
	return s.replaceList(ctx, s.busesKey(), records)
}

func (s RedisStore) SaveBookings(ctx context.Context, bookings []models.Booking) error {
	records := make([]interface{}, 0, len(bookings))
	for _, b := range bookings {
		records = append(records, b.Record())
	}
	return s.replaceList(ctx, s.bookingsKey(), records)
}

// replaceList swaps the list content inside MULTI/EXEC.
func (s RedisStore) replaceList(ctx context.Context, key string, records []interface{}) error {
	_, err := s.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(records) > 0 {
			pipe.RPush(ctx, key, records...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
