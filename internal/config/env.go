package config

import (
	"os"
	"strings"
)

// Store types accepted by STORE.
const (
	StoreFile   = "file"
	StoreMySQL  = "mysql"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Env struct {
	AppAddr string
	GinMode string

	Store     string
	DataDir   string
	MySQLDSN  string
	RedisAddr string

	JWTSecret         string
	AdminUsername     string
	AdminPasswordHash string

	CORSAllowedOrigins []string
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	store := strings.ToLower(strings.TrimSpace(os.Getenv("STORE")))
	if store == "" {
		store = StoreFile
	}

	dataDir := strings.TrimSpace(os.Getenv("DATA_DIR"))
	if dataDir == "" {
		dataDir = "."
	}

	dsn := strings.TrimSpace(os.Getenv("MYSQL_DSN"))
	if dsn == "" {
		dsn = "root:@tcp(127.0.0.1:3306)/bus_reservation?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
	}

	redisAddr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}

	// An empty secret is replaced by a random per-process key in the router.
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))

	admin := strings.TrimSpace(os.Getenv("ADMIN_USERNAME"))
	if admin == "" {
		admin = "admin"
	}

	var origins []string
	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173"}
	}

	return Env{
		AppAddr:            appAddr,
		GinMode:            strings.TrimSpace(os.Getenv("GIN_MODE")),
		Store:              store,
		DataDir:            dataDir,
		MySQLDSN:           dsn,
		RedisAddr:          redisAddr,
		JWTSecret:          secret,
		AdminUsername:      admin,
		AdminPasswordHash:  strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH")),
		CORSAllowedOrigins: origins,
	}
}
