package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/iudanet/bookpos/internal/models"
	"github.com/iudanet/bookpos/internal/pos/api"
	"github.com/iudanet/bookpos/internal/pos/cli"
	"github.com/iudanet/bookpos/internal/pos/committer"
	"github.com/iudanet/bookpos/internal/pos/dispatcher"
	"github.com/iudanet/bookpos/internal/pos/receipt"
	"github.com/iudanet/bookpos/internal/pos/reconciler"
	"github.com/iudanet/bookpos/internal/pos/storage/boltdb"
	"github.com/iudanet/bookpos/internal/pos/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	ledgerURL := flag.String("ledger", "http://localhost:8080", "Remote ledger URL")
	dbPath := flag.String("db", "bookpos.db", "Path to local sales database")
	queuePath := flag.String("queue", "bookpos-queue.db", "Path to local sync queue")
	cashierName := flag.String("cashier", os.Getenv("USER"), "Cashier name")
	roleName := flag.String("role", "attendant", "Cashier role: director or attendant")
	shopName := flag.String("shop", "BookPOS", "Shop name printed on receipts")
	currency := flag.String("currency", "KES", "Currency code printed on receipts")
	location := flag.String("location", "bookpos", "Till location reported to the ledger")
	workers := flag.Int("workers", 0, "Sync dispatcher workers (0 = default)")
	maxAttempts := flag.Int("max-attempts", 0, "Delivery attempts before an event is marked failed (0 = default)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}
	command := args[0]

	role, err := models.ParseRole(*roleName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()

	// Открываем локальное хранилище продаж и каталога
	db, err := sqlite.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	// Открываем очередь синхронизации
	queue, err := boltdb.New(ctx, *queuePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open sync queue: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := queue.Close(); err != nil {
			logger.Error("failed to close sync queue", "error", err)
		}
	}()

	renderer, err := receipt.NewRenderer(*shopName, *currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build receipt renderer: %v\n", err)
		os.Exit(1)
	}

	apiClient := api.NewClient(*ledgerURL, 10*time.Second)

	dispatchCfg := dispatcher.DefaultConfig()
	dispatchCfg.Location = *location
	if *workers > 0 {
		dispatchCfg.Workers = *workers
	}
	if *maxAttempts > 0 {
		dispatchCfg.MaxAttempts = *maxAttempts
	}

	c := cli.New(cli.Deps{
		Catalog:    db,
		Sales:      db,
		Queue:      queue,
		Committer:  committer.New(db, queue, logger, *location),
		Dispatcher: dispatcher.New(queue, db, db, apiClient, logger, dispatchCfg),
		Reconciler: reconciler.New(db, queue, apiClient, logger),
		Renderer:   renderer,
		Client:     apiClient,
		Logger:     logger,
		Cashier:    models.Principal{Username: *cashierName, Role: role},
		Currency:   *currency,
	})

	c.Run(ctx, command, args[1:])
}

func printVersion() {
	fmt.Printf("BookPOS Till\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
