package main

import (
	"flag"
	"time"

	"github.com/grazebox/backoffice/internal/config"
	"github.com/grazebox/backoffice/internal/seed"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	dataDir := flag.String("data-dir", cfg.DataDir, "target data directory")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := seed.Write(*dataDir, time.Now().UTC()); err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}
	log.Info("seed data written", zap.String("data_dir", *dataDir))
}
