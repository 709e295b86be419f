package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dalemusser/hrflow/internal/app/bootstrap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	failed, err := bootstrap.Run(ctx, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
	if failed > 0 {
		stop()
		os.Exit(1)
	}
}
