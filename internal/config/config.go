package config

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const ENV_PREFIX = "SLOTLEDGER"

type StorageBackend string

const (
	StorageBackend_Memory   StorageBackend = "memory"
	StorageBackend_LevelDb  StorageBackend = "leveldb"
	StorageBackend_Postgres StorageBackend = "postgres"
)

type KeyHasherType string

const (
	KeyHasher_Keccak256 KeyHasherType = "keccak256"
	KeyHasher_Sha256    KeyHasherType = "sha256"
)

type LogFormat string

const (
	LogFormat_Json    LogFormat = "json"
	LogFormat_Console LogFormat = "console"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Debug            bool
	LogFormat        LogFormat
	StorageConfig    StorageConfig
	DatabaseConfig   DatabaseConfig
	KeyHasher        KeyHasherType
	DataDogConfig    DataDogConfig
	PrometheusConfig PrometheusConfig
}

type StorageConfig struct {
	Backend     StorageBackend
	LevelDbPath string
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DbName      string
	SchemaName  string
	SSLMode     string
	SSLCert     string
	SSLKey      string
	SSLRootCert string
}

type DataDogConfig struct {
	StatsdConfig StatsdConfig
}

type StatsdConfig struct {
	Enabled    bool
	Url        string
	SampleRate float64
}

type PrometheusConfig struct {
	Enabled bool
	PushUrl string
}

const (
	Debug         = "debug"
	LogFormatName = "log-format"

	StorageBackendType = "storage.backend"
	StorageLevelDbPath = "storage.leveldb-path"

	DatabaseHost        = "database.host"
	DatabasePort        = "database.port"
	DatabaseUser        = "database.user"
	DatabasePassword    = "database.password"
	DatabaseDbName      = "database.db_name"
	DatabaseSchemaName  = "database.schema_name"
	DatabaseSSLMode     = "database.ssl_mode"
	DatabaseSSLCert     = "database.ssl_cert"
	DatabaseSSLKey      = "database.ssl_key"
	DatabaseSSLRootCert = "database.ssl_root_cert"

	KeyHasher = "key-hasher"

	DataDogStatsdEnabled    = "datadog.statsd.enabled"
	DataDogStatsdUrl        = "datadog.statsd.url"
	DataDogStatsdSampleRate = "datadog.statsd.sample_rate"

	PrometheusEnabled = "prometheus.enabled"
	PrometheusPushUrl = "prometheus.push-url"
)

// KebabToSnakeCase maps a flag name to the viper key it is bound under.
func KebabToSnakeCase(str string) string {
	return strings.ReplaceAll(str, "-", "_")
}

func normalizeFlagName(name string) string {
	return KebabToSnakeCase(name)
}

func NewConfig() *Config {
	return &Config{
		Debug:     viper.GetBool(normalizeFlagName(Debug)),
		LogFormat: LogFormat(strings.ToLower(viper.GetString(normalizeFlagName(LogFormatName)))),

		StorageConfig: StorageConfig{
			Backend:     StorageBackend(strings.ToLower(viper.GetString(normalizeFlagName(StorageBackendType)))),
			LevelDbPath: viper.GetString(normalizeFlagName(StorageLevelDbPath)),
		},

		DatabaseConfig: DatabaseConfig{
			Host:        viper.GetString(normalizeFlagName(DatabaseHost)),
			Port:        viper.GetInt(normalizeFlagName(DatabasePort)),
			User:        viper.GetString(normalizeFlagName(DatabaseUser)),
			Password:    viper.GetString(normalizeFlagName(DatabasePassword)),
			DbName:      viper.GetString(normalizeFlagName(DatabaseDbName)),
			SchemaName:  viper.GetString(normalizeFlagName(DatabaseSchemaName)),
			SSLMode:     viper.GetString(normalizeFlagName(DatabaseSSLMode)),
			SSLCert:     viper.GetString(normalizeFlagName(DatabaseSSLCert)),
			SSLKey:      viper.GetString(normalizeFlagName(DatabaseSSLKey)),
			SSLRootCert: viper.GetString(normalizeFlagName(DatabaseSSLRootCert)),
		},

		KeyHasher: KeyHasherType(strings.ToLower(viper.GetString(normalizeFlagName(KeyHasher)))),

		DataDogConfig: DataDogConfig{
			StatsdConfig: StatsdConfig{
				Enabled:    viper.GetBool(normalizeFlagName(DataDogStatsdEnabled)),
				Url:        viper.GetString(normalizeFlagName(DataDogStatsdUrl)),
				SampleRate: viper.GetFloat64(normalizeFlagName(DataDogStatsdSampleRate)),
			},
		},

		PrometheusConfig: PrometheusConfig{
			Enabled: viper.GetBool(normalizeFlagName(PrometheusEnabled)),
			PushUrl: viper.GetString(normalizeFlagName(PrometheusPushUrl)),
		},
	}
}

// Validate fills defaults for unset enums and rejects unknown values.
func (c *Config) Validate() error {
	switch c.StorageConfig.Backend {
	case "":
		c.StorageConfig.Backend = StorageBackend_Memory
	case StorageBackend_Memory, StorageBackend_Postgres:
	case StorageBackend_LevelDb:
		if c.StorageConfig.LevelDbPath == "" {
			return errors.Wrap(ErrInvalidConfig, "leveldb backend requires a path")
		}
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown storage backend '%s'", c.StorageConfig.Backend)
	}

	switch c.LogFormat {
	case "":
		c.LogFormat = LogFormat_Json
	case LogFormat_Json, LogFormat_Console:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown log format '%s'", c.LogFormat)
	}

	switch c.KeyHasher {
	case "":
		c.KeyHasher = KeyHasher_Keccak256
	case KeyHasher_Keccak256, KeyHasher_Sha256:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown key hasher '%s'", c.KeyHasher)
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Debug: %v, Backend: %s, KeyHasher: %s}", c.Debug, c.StorageConfig.Backend, c.KeyHasher)
}
