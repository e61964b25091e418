package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/ena63/pyshell/cmd/bmacshell/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := cmd.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
