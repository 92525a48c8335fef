package config

import "testing"

func TestLoadEnvDefaults(t *testing.T) {
	for _, k := range []string{"APP_ADDR", "STORE", "DATA_DIR", "CORS_ALLOWED_ORIGINS", "ADMIN_USERNAME", "JWT_SECRET"} {
		t.Setenv(k, "")
	}
	env := LoadEnv()
	if env.AppAddr != ":8080" {
		t.Fatalf("AppAddr = %q, want :8080", env.AppAddr)
	}
	if env.Store != StoreFile {
		t.Fatalf("Store = %q, want %q", env.Store, StoreFile)
	}
	if env.DataDir != "." {
		t.Fatalf("DataDir = %q, want .", env.DataDir)
	}
	if env.AdminUsername != "admin" {
		t.Fatalf("AdminUsername = %q, want admin", env.AdminUsername)
	}
	if len(env.CORSAllowedOrigins) == 0 {
		t.Fatalf("expected default CORS origins")
	}
	if env.JWTSecret != "" {
		t.Fatalf("JWTSecret = %q, want empty when unset", env.JWTSecret)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("STORE", " Redis ")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	env := LoadEnv()
	if env.AppAddr != ":9090" {
		t.Fatalf("AppAddr = %q", env.AppAddr)
	}
	if env.Store != StoreRedis {
		t.Fatalf("Store = %q, want %q", env.Store, StoreRedis)
	}
	if len(env.CORSAllowedOrigins) != 2 || env.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", env.CORSAllowedOrigins)
	}
}
