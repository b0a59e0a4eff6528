// Package main runs the interactive console against an in-process ledger.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"minibank/internal/config"
	"minibank/internal/repositories"
	"minibank/internal/services/ledger"
	"minibank/internal/shell"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, err := repositories.NewHistoryStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s history store: %v", cfg.HistoryBackend, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("⚠️ Failed to close history store: %v", err)
		}
	}()

	svc := ledger.NewService(store, ledger.Config{}, &ledger.NoopMetricsCollector{})
	dispatcher := shell.NewDispatcher(svc, cfg.AdminUsername, cfg.AdminPassword)

	if err := dispatcher.Run(ctx, os.Stdin, os.Stdout); err != nil {
		log.Printf("Shell stopped: %v", err)
	}
}
