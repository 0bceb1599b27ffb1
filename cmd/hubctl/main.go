package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/hubctl/internal/client/cli"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Ctrl+C отменяет текущий запрос, ресурсы закрываются штатно
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := cli.New(os.Stdin, os.Stdout, os.Stderr, cli.BuildInfo{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
	})
	err := app.Execute(ctx, os.Args[1:])
	stop()
	if err != nil {
		// Execute уже показал ошибку
		os.Exit(1)
	}
}
