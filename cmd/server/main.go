// Command server runs the suggestion review HTTP API.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("run: %v", err)
	}
}
