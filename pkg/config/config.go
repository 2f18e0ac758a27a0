package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config carries everything the process needs from the environment: where
// to listen, which spreadsheet is the system of record, and how to
// authenticate against it.
type Config struct {
	AppURL                 string
	SpreadsheetID          string
	WorksheetName          string
	CredentialsFile        string
	ShutdownTimeoutSeconds int
}

func Load() (*Config, error) {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")

	cfg := &Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		SpreadsheetID:          os.Getenv("SPREADSHEET_ID"),
		WorksheetName:          getEnv("WORKSHEET_NAME", "Production Plan"),
		CredentialsFile:        getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
	}

	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("SPREADSHEET_ID must not be empty")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return defaultVal
		}
		return i
	}
	return defaultVal
}
