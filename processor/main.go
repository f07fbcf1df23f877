// Command processor imports BOM spreadsheets dropped into a folder. Files
// are read from <dir>/unprocessed and moved to <dir>/processed or
// <dir>/failed once handled.
package main

import (
	"context"
	"flag"
	"os"

	"parttrack/config"
	"parttrack/controllers/idgen"
	"parttrack/database"
	"parttrack/logger"
	"parttrack/migration"
	"parttrack/notify"
	"parttrack/repositories"
	"parttrack/services"
)

func main() {
	dir := flag.String("dir", "bom-drop", "drop folder holding unprocessed/, processed/ and failed/")
	flag.Parse()

	cfg := config.LoadConfig()
	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := idgen.Init(cfg.SnowflakeNode); err != nil {
		log.Fatal("snowflake init failed", "error", err)
	}
	db, err := database.Open(cfg.Database, database.LogLevel(cfg))
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	if err := migration.Migrate(db); err != nil {
		log.Fatal("failed to auto migrate", "error", err)
	}

	svc := services.New(services.Deps{
		Store:    repositories.NewStore(db, cfg.TxMaxAttempts, log),
		Log:      log,
		Notifier: notify.New(cfg.Mail),
	})

	summary, err := ProcessFolder(context.Background(), svc.Boms, *dir, log)
	if err != nil {
		log.Fatal("processing drop folder failed", "dir", *dir, "error", err)
	}
	log.Info("drop folder processed", "dir", *dir, "imported", summary.Imported, "failed", summary.Failed)
	if summary.Failed > 0 {
		os.Exit(1)
	}
}
