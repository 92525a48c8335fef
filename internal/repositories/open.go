package repositories

import (
	"context"
	"fmt"

	"busreservation/internal/config"
	"busreservation/internal/utils"
)

// Open builds and initialises the store selected by env.Store. The returned
// close func releases any connection the store holds.
func Open(ctx context.Context, env config.Env) (Store, func() error, error) {
	noop := func() error { return nil }

	switch env.Store {
	case config.StoreFile, "":
		s := FileStore{Dir: env.DataDir}
		if err := s.Init(ctx); err != nil {
			return nil, noop, err
		}
		utils.LogEvent(utils.RequestIDFromContext(ctx), "store", "open", "file store at "+s.dir())
		return s, noop, nil

	case config.StoreMySQL:
		db, err := config.ConnectDB(ctx, env.MySQLDSN)
		if err != nil {
			return nil, noop, err
		}
		s := MySQLStore{DB: db}
		if err := s.Init(ctx); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		utils.LogEvent(utils.RequestIDFromContext(ctx), "store", "open", "mysql store")
		return s, db.Close, nil

	case config.StoreRedis:
		client, err := config.ConnectRedis(ctx, env.RedisAddr)
		if err != nil {
			return nil, noop, err
		}
		s := RedisStore{Client: client}
		if err := s.Init(ctx); err != nil {
			_ = client.Close()
			return nil, noop, err
		}
		utils.LogEvent(utils.RequestIDFromContext(ctx), "store", "open", "redis store at "+env.RedisAddr)
		return s, client.Close, nil

	case config.StoreMemory:
		return NewMemoryStore(SeedBuses(), nil), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown store %q (want file, mysql, redis or memory)", env.Store)
	}
}
