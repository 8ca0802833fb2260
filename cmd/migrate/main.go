package main

import (
	"flag"
	"os"

	"github.com/hubinova/backend/internal/config"
	"github.com/hubinova/backend/internal/models"
	"github.com/hubinova/backend/pkg/logger"
	"gorm.io/gorm"
)

func main() {
	all := flag.Bool("all", false, "migrate every table, not only access_logs")
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)

	if err := run(&cfg.Database, cfg.Log.Level, *all); err != nil {
		logger.Error().Err(err).Msg("Migration failed")
		os.Exit(1)
	}
}

func run(dbCfg *config.DatabaseConfig, logLevel string, all bool) error {
	db, err := models.Open(dbCfg, logLevel)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	logger.Info().Str("driver", dbCfg.Driver).Bool("all", all).Msg("Connected to database")
	if err := migrate(db, all); err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.AccessLog{}).Count(&count).Error; err != nil {
		return err
	}
	logger.Info().Int64("access_logs", count).Msg("Migration completed")
	return nil
}

func migrate(db *gorm.DB, all bool) error {
	if all {
		return models.AutoMigrate(db)
	}
	return db.AutoMigrate(&models.AccessLog{})
}
