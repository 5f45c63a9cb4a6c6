package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/redspider/medqa/internal/cli"
	logx "github.com/redspider/medqa/pkg/logger"
)

func main() {
	logx.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
