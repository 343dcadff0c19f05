package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"rental-booking/internal/handler/middleware"
	"rental-booking/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
)

// Applies pending migrations from migrations/ with the atlas CLI.
func main() {
	dir := flag.String("dir", "file://migrations", "migration directory URL")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	client, err := atlasexec.NewClient(".", "atlas")
	if err != nil {
		logger.Error("failed to init atlas client", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    cfg.DB.BuildDSN(),
		DirURL: *dir,
	})
	if err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	logger.Info("migrations applied",
		"applied", len(res.Applied),
		"current", res.Current,
		"target", res.Target,
	)
}
