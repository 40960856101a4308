package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	InputCSV      string
	OutputSQL     string
	SchedulesSQL  string
	SkipSchedules bool

	OutputDir  string
	SQLitePath string
	XLSXPath   string

	SQLBatchSize int

	AppEnv   string
	LogLevel string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	outputDir := getEnv("OUTPUT_DIR", "out")

	cfg := Config{
		InputCSV:      getEnv("INPUT_CSV", filepath.Join("clean_data", "final_flight_data.csv")),
		OutputSQL:     getEnv("OUTPUT_SQL", filepath.Join("sql_statements", "generated", "001_seed_bundle.sql")),
		SchedulesSQL:  getEnv("SCHEDULES_SQL", filepath.Join("sql_statements", "011_generate_flight_schedules.sql")),
		SkipSchedules: getEnvBool("SKIP_SCHEDULES", false),

		OutputDir:  outputDir,
		SQLitePath: getEnv("SQLITE_PATH", filepath.Join(outputDir, "seed.db")),
		XLSXPath:   getEnv("XLSX_PATH", filepath.Join(outputDir, "seed.xlsx")),

		SQLBatchSize: getEnvInt("SQL_BATCH_SIZE", 500),

		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if cfg.SQLBatchSize <= 0 {
		return Config{}, fmt.Errorf("SQL_BATCH_SIZE must be positive, got %d", cfg.SQLBatchSize)
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required setting: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
