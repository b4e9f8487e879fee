package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/capsort/capsort/internal/client/api"
	"github.com/capsort/capsort/internal/client/auth"
	"github.com/capsort/capsort/internal/client/cli"
	"github.com/capsort/capsort/internal/client/iocli"
	"github.com/capsort/capsort/internal/client/storage/boltdb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:5000", "Server URL")
	dbPath := flag.String("db", "capsort-client.db", "Path to local session database")
	passwordFile := flag.String("password-file", "", "Path to file containing the password")

	flag.Parse()

	stdio := iocli.NewStdio()

	if *showVersion {
		printVersion()
		return 0
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(stdio)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		return 1
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			slog.Error("failed to close database", slog.String("error", err.Error()))
		}
	}()

	apiClient := api.NewClient(*serverURL)
	authService := auth.NewService(apiClient, boltStorage)

	c := cli.New(stdio, authService, cli.Passwords{FromFile: *passwordFile})

	if err := c.Run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var unknown cli.ErrUnknownCommand
		if errors.As(err, &unknown) {
			cli.PrintUsage(stdio)
		}
		return 1
	}

	return 0
}

func printVersion() {
	fmt.Printf("Capsort Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
