package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	intconfig "busreservation/internal/config"
)

func TestParseFlagsOverridesEnv(t *testing.T) {
	env, err := parseFlags([]string{"--store", "redis", "--redis-addr", "10.0.0.1:6379"}, intconfig.Env{Store: "file", DataDir: "data"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if env.Store != "redis" || env.RedisAddr != "10.0.0.1:6379" {
		t.Fatalf("unexpected env: %+v", env)
	}
	if env.DataDir != "data" {
		t.Fatalf("data dir should keep env value, got %q", env.DataDir)
	}
}

func TestRunUsesFileStoreInDataDir(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	err := run(context.Background(), []string{"--store", "file", "--data-dir", dir}, strings.NewReader("1\n8\n"), &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "BUS105") {
		t.Fatalf("expected seeded buses in output:\n%s", out.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "bookings.csv")); err != nil {
		t.Fatalf("bookings file not created: %v", err)
	}
}

func TestRunRejectsUnknownStore(t *testing.T) {
	err := run(context.Background(), []string{"--store", "postgres"}, strings.NewReader(""), &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error for unknown store")
	}
}
