package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aunum/log"

	"github.com/samuelfneumann/gridqn/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt,
		syscall.SIGTERM)
	defer stop()

	if err := cmd.RootCommand().ExecuteContext(ctx); err != nil {
		log.Fatal(err)
	}
}
