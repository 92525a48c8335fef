package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "busreservation/internal/config"
	router "busreservation/internal/http"
	"busreservation/internal/repositories"
	"busreservation/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	startCtx, startCancel := context.WithTimeout(context.Background(), 15*time.Second)
	store, closeStore, err := repositories.Open(startCtx, env)
	if err != nil {
		startCancel()
		log.Fatalf("failed to open %s store: %v", env.Store, err)
	}
	defer closeStore()

	ledger, err := services.NewLedger(startCtx, store)
	startCancel()
	if err != nil {
		log.Fatalf("failed to load ledger: %v", err)
	}

	r := router.NewRouter(env, ledger)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on http://localhost%s (store=%s)", env.AppAddr, env.Store)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped cleanly.")
}
