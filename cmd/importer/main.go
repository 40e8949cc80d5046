// cmd/importer/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jibtech/boardbase/internal/config"
	"github.com/jibtech/boardbase/internal/database"
	"github.com/jibtech/boardbase/internal/schema"
	"github.com/jibtech/boardbase/internal/services"
	"github.com/jibtech/boardbase/internal/vocab"
)

func main() {
	filePath := flag.String("file", "", "Path to scrape envelope JSON file (e.g. output/Burton.json)")
	mode := flag.String("mode", "dry-run", "Import mode: analyze, dry-run, or live")
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Load envelope
	env, err := schema.LoadFile(*filePath)
	if err != nil {
		log.Fatal("Failed to load envelope:", err)
	}

	// Cancel between records on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Interrupt received, stopping after current record...")
		cancel()
	}()

	switch *mode {
	case "analyze":
		report := vocab.Analyze(env)
		report.Write(os.Stdout)
		report.WriteSQLSuggestions(os.Stdout)

	case "dry-run":
		report := vocab.Analyze(env)
		report.Write(os.Stdout)
		fmt.Println("\nTip: run with --mode=analyze to see SQL for missing aliases")

		importer := services.NewImportService(nil, cfg.Import)
		summary, err := importer.Run(ctx, env, true)
		if err != nil {
			log.Fatal("Dry run failed:", err)
		}
		summary.Write(os.Stdout)

	case "live":
		db, err := database.Initialize(cfg.Database)
		if err != nil {
			log.Fatal("Failed to initialize database:", err)
		}
		defer database.Close(db)

		if err := database.RunMigrations(db); err != nil {
			log.Fatal("Failed to run migrations:", err)
		}
		if err := database.SeedInitialData(db); err != nil {
			log.Fatal("Failed to seed initial data:", err)
		}

		importer := services.NewImportService(db, cfg.Import)
		summary, err := importer.Run(ctx, env, false)
		if err != nil {
			log.Fatal("Import failed:", err)
		}
		summary.Write(os.Stdout)

	default:
		log.Fatalf("Unknown mode %q (expected analyze, dry-run, or live)", *mode)
	}
}
