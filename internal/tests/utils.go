package tests

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Layr-Labs/slotledger/internal/config"
	"github.com/google/uuid"
)

func getEnv(key string) string {
	return os.Getenv(fmt.Sprintf("%s_%s", config.ENV_PREFIX, strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))))
}

// GetDbConfigFromEnv reads the test database settings from SLOTLEDGER_DATABASE_*.
// Host is empty when no database is available.
func GetDbConfigFromEnv() *config.DatabaseConfig {
	port, err := strconv.Atoi(getEnv(config.DatabasePort))
	if err != nil {
		port = 5432
	}
	return &config.DatabaseConfig{
		Host:     getEnv(config.DatabaseHost),
		Port:     port,
		User:     getEnv(config.DatabaseUser),
		Password: getEnv(config.DatabasePassword),
		DbName:   getEnv(config.DatabaseDbName),
	}
}

// GenerateTestDbName returns a unique database name that postgres accepts
// unquoted.
func GenerateTestDbName() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("slotledger_test_%s", strings.ReplaceAll(id.String(), "-", "")), nil
}
