package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/crucial707/fleet-pm/internal/config"
	"github.com/crucial707/fleet-pm/internal/db"
	"github.com/crucial707/fleet-pm/internal/notify"
	"github.com/crucial707/fleet-pm/internal/repo"
	"github.com/crucial707/fleet-pm/internal/runner"
	"github.com/crucial707/fleet-pm/internal/scheduler"
)

func main() {
	once := flag.Bool("once", false, "run a single evaluation pass and exit")
	asOf := flag.String("as-of", "", "evaluate as of this date (YYYY-MM-DD, with -once)")
	flag.Parse()

	cfg := config.Load()
	if cfg.LogFormat == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}

	database, err := db.Connect(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	database.SetMaxOpenConns(cfg.DBMaxOpenConns)
	database.SetMaxIdleConns(cfg.DBMaxIdleConns)

	r := &runner.Runner{
		Schedules:  repo.NewScheduleRepo(database),
		Readings:   repo.NewReadingRepo(database),
		WorkOrders: repo.NewWorkOrderRepo(database),
		Ledger:     repo.NewCycleRepo(database),
		Notifier:   notify.LogNotifier{},
	}

	if *once {
		at := time.Now()
		if *asOf != "" {
			at, err = time.Parse("2006-01-02", *asOf)
			if err != nil {
				log.Fatalf("invalid -as-of date %q: %v", *asOf, err)
			}
		}
		sum, err := r.RunPass(context.Background(), at)
		if err != nil {
			log.Fatalf("evaluation pass failed: %v", err)
		}
		json.NewEncoder(os.Stdout).Encode(sum)
		return
	}

	log.Printf("Starting evaluation runner (cron %q)", cfg.PassCronSpec)
	if err := scheduler.Run(cfg.PassCronSpec, r); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
}
