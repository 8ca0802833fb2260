package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hubinova/backend/internal/config"
	"github.com/hubinova/backend/pkg/logger"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Open connects to the configured database without touching the package DB.
func Open(cfg *config.DatabaseConfig, logLevel string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	mode := gormlogger.Warn
	if strings.EqualFold(logLevel, "debug") {
		mode = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(mode),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return db, nil
}

func InitDB(cfg *config.DatabaseConfig, logLevel string) error {
	db, err := Open(cfg, logLevel)
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// AutoMigrate creates or updates every table the API serves.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&User{},
		&Challenge{},
		&SolutionStatus{},
		&Solution{},
		&Event{},
		&News{},
		&GeralSettings{},
		&AccessLog{},
	); err != nil {
		return err
	}
	for _, table := range ContentTables() {
		if err := db.Table(table).AutoMigrate(&ContentSection{}); err != nil {
			return fmt.Errorf("migrate %s: %w", table, err)
		}
	}
	return nil
}

func ContentTables() []string {
	return []string{TableProgramInfo, TableHowToParticipate}
}

// SchemaTables lists every table the readiness check expects.
func SchemaTables() []string {
	return []string{
		"users", "challenges", "solutions", "solution_statuses", "events", "news",
		TableProgramInfo, TableHowToParticipate, "geral", "access_logs",
	}
}

func GetDB() *gorm.DB {
	return DB
}

// SeedAdmin creates the admin account, or promotes an existing user with that
// email. passwordHash must already be hashed.
func SeedAdmin(db *gorm.DB, email, passwordHash string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		if existing.Role == RoleAdmin {
			return nil
		}
		logger.Info().Str("email", email).Msg("promoting seeded account to admin")
		return db.Model(&existing).Update("role", RoleAdmin).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	admin := User{
		Email:    email,
		Password: passwordHash,
		FullName: "Administrator",
		Role:     RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logger.Info().Str("email", email).Msg("admin account created")
	return nil
}
