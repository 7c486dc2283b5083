package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Local .env overrides, loaded before the vars below are read.
var _ = godotenv.Load()

var (
	// Backend selects the persistence backend: "json", "sqlite" or
	// "postgres".
	Backend = getenv("GRADEBOOK_BACKEND", "json")

	// DataFile is the backing file for the json backend.
	DataFile = getenv("GRADEBOOK_FILE", "student_grades.json")

	// SQLitePath is the database file for the sqlite backend.
	SQLitePath = getenv("GRADEBOOK_SQLITE", "gradebook.db")

	DBHost     = getenv("DB_HOST", "localhost")
	DBUser     = os.Getenv("DB_USER")
	DBPassword = os.Getenv("DB_PASSWORD")
	DBName     = os.Getenv("DB_NAME")
	DBPort     = getenv("DB_PORT", "5432")
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
