package postgres

import (
	"database/sql"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/Layr-Labs/slotledger/internal/config"
	"github.com/Layr-Labs/slotledger/internal/tests"
	"github.com/Layr-Labs/slotledger/pkg/postgres/migrations"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultSSLMode = "disable"

var validSSLModes = []string{
	"disable",
	"require",
	"verify-ca",
	"verify-full",
}

var validDbName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

type PostgresConfig struct {
	Host                string
	Port                int
	Username            string
	Password            string
	DbName              string
	CreateDbIfNotExists bool
	SchemaName          string
	SSLMode             string
	SSLCert             string
	SSLKey              string
	SSLRootCert         string
}

type Postgres struct {
	Db *sql.DB
}

func PostgresConfigFromDbConfig(dbCfg *config.DatabaseConfig) *PostgresConfig {
	return &PostgresConfig{
		Host:        dbCfg.Host,
		Port:        dbCfg.Port,
		Username:    dbCfg.User,
		Password:    dbCfg.Password,
		DbName:      dbCfg.DbName,
		SchemaName:  dbCfg.SchemaName,
		SSLMode:     dbCfg.SSLMode,
		SSLCert:     dbCfg.SSLCert,
		SSLKey:      dbCfg.SSLKey,
		SSLRootCert: dbCfg.SSLRootCert,
	}
}

func getPostgresRootConnection(cfg *PostgresConfig) (*sql.DB, error) {
	rootCfg := *cfg
	rootCfg.DbName = "postgres"
	rootCfg.SchemaName = ""
	connStr, err := getPostgresConnectionString(&rootCfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create postgres connection string")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, errors.Wrap(err, "error connecting to postgres database")
	}
	return db, nil
}

func getPostgresConnectionString(cfg *PostgresConfig) (string, error) {
	authString := ""
	sslMode := defaultSSLMode

	if cfg.Username != "" {
		authString = fmt.Sprintf("%s user=%s", authString, cfg.Username)
	}
	if cfg.Password != "" {
		authString = fmt.Sprintf("%s password=%s", authString, cfg.Password)
	}

	if cfg.SSLMode != "" {
		if !slices.Contains(validSSLModes, cfg.SSLMode) {
			return "", fmt.Errorf("invalid ssl mode: %s. Must be one of: %s", cfg.SSLMode, strings.Join(validSSLModes, ", "))
		}
		sslMode = cfg.SSLMode
	}

	connStr := fmt.Sprintf("host=%s %s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		cfg.Host,
		authString,
		cfg.DbName,
		cfg.Port,
		sslMode,
	)

	if sslMode != defaultSSLMode {
		if cfg.SSLCert != "" {
			connStr = fmt.Sprintf("%s sslcert=%s", connStr, cfg.SSLCert)
		}
		if cfg.SSLKey != "" {
			connStr = fmt.Sprintf("%s sslkey=%s", connStr, cfg.SSLKey)
		}
		if cfg.SSLRootCert != "" {
			connStr = fmt.Sprintf("%s sslrootcert=%s", connStr, cfg.SSLRootCert)
		}
	}
	if cfg.SchemaName != "" {
		connStr = fmt.Sprintf("%s search_path=%s", connStr, cfg.SchemaName)
	}
	return connStr, nil
}

func CreateDatabaseIfNotExists(cfg *PostgresConfig) error {
	if !validDbName.MatchString(cfg.DbName) {
		return fmt.Errorf("invalid database name '%s'", cfg.DbName)
	}
	db, err := getPostgresRootConnection(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow(`SELECT EXISTS(SELECT datname FROM pg_catalog.pg_database WHERE datname = $1)`, cfg.DbName).Scan(&exists)
	if err != nil {
		return errors.Wrap(err, "error checking if database exists")
	}
	if !exists {
		if _, err = db.Exec(fmt.Sprintf("CREATE DATABASE %s", cfg.DbName)); err != nil {
			return errors.Wrap(err, "error creating database")
		}
	}
	return nil
}

func DeleteDatabase(cfg *PostgresConfig, dbName string) error {
	if !validDbName.MatchString(dbName) {
		return fmt.Errorf("invalid database name '%s'", dbName)
	}
	db, err := getPostgresRootConnection(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err = db.Exec(fmt.Sprintf("DROP DATABASE %s", dbName)); err != nil {
		return errors.Wrap(err, "error dropping database")
	}
	return nil
}

func NewPostgres(cfg *PostgresConfig) (*Postgres, error) {
	if cfg.CreateDbIfNotExists {
		if err := CreateDatabaseIfNotExists(cfg); err != nil {
			return nil, errors.Wrap(err, "failed to create database if not exists")
		}
	}
	connectString, err := getPostgresConnectionString(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create postgres connection string")
	}

	db, err := sql.Open("postgres", connectString)
	if err != nil {
		return nil, errors.Wrap(err, "failed to setup database")
	}
	return &Postgres{Db: db}, nil
}

func NewGormFromPostgresConnection(pgDb *sql.DB) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn: pgDb,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to setup gorm")
	}
	return db, nil
}

// Open connects to the configured database and brings the schema up to date.
func Open(cfg *config.DatabaseConfig, createIfNotExists bool, l *zap.Logger) (*sql.DB, *gorm.DB, error) {
	pgConfig := PostgresConfigFromDbConfig(cfg)
	pgConfig.CreateDbIfNotExists = createIfNotExists

	pg, err := NewPostgres(pgConfig)
	if err != nil {
		l.Sugar().Errorw("Failed to setup postgres connection", zap.Error(err))
		return nil, nil, err
	}
	grm, err := NewGormFromPostgresConnection(pg.Db)
	if err != nil {
		l.Sugar().Errorw("Failed to create gorm instance", zap.Error(err))
		return nil, nil, err
	}

	migrator := migrations.NewMigrator(pg.Db, grm, l)
	if err := migrator.MigrateAll(); err != nil {
		return nil, nil, err
	}
	return pg.Db, grm, nil
}

// GetTestPostgresDatabase creates and migrates a throwaway database.
func GetTestPostgresDatabase(cfg config.DatabaseConfig, l *zap.Logger) (string, *sql.DB, *gorm.DB, error) {
	testDbName, err := tests.GenerateTestDbName()
	if err != nil {
		return testDbName, nil, nil, err
	}
	cfg.DbName = testDbName

	db, grm, err := Open(&cfg, true, l)
	return testDbName, db, grm, err
}

func TeardownTestDatabase(dbName string, cfg config.DatabaseConfig, db *gorm.DB, l *zap.Logger) {
	rawDb, _ := db.DB()
	_ = rawDb.Close()

	if err := DeleteDatabase(PostgresConfigFromDbConfig(&cfg), dbName); err != nil {
		l.Sugar().Errorw("Failed to delete test database", zap.Error(err))
	}
}
