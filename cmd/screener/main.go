// Command screener indexes résumés, answers recruiter questions about them
// and books interviews.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driving/cli"
	"github.com/vishwapandiyan/Resume-screener/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// A missing .env is normal; secrets may come from the real environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, os.Getenv("SCREENER_HOME"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer a.Close()

	cli.SetVersion(version)
	cli.SetServices(a.services)

	if err := cli.Execute(ctx); err != nil {
		logger.Debug("command failed: %v", err)
		return 1
	}
	return 0
}
