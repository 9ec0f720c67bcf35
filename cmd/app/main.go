package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
)

//go:generate go run github.com/google/wire/cmd/wire

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := initializeApp()
	if err != nil {
		log.Fatalf("failed to wire booking api: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("booking api stopped with error: %v", err)
	}
}
