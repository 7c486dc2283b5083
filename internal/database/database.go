package database

import (
	"fmt"

	"gradebook/internal/config"
	"gradebook/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the configured database and migrates the grade table.
// The dialector follows config.Backend: "sqlite" opens the local file,
// "postgres" builds a DSN from the DB_* settings.
func InitDB() (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch config.Backend {
	case "postgres":
		dsn := "host=" + config.DBHost + " user=" + config.DBUser + " password=" + config.DBPassword + " dbname=" + config.DBName + " port=" + config.DBPort + " sslmode=disable"
		dialector = postgres.Open(dsn)
	default:
		dialector = sqlite.Open(config.SQLitePath)
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := db.AutoMigrate(&model.GradeRecord{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}
