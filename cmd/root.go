package cmd

import (
	"os"
	"strings"

	"github.com/Layr-Labs/slotledger/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:           "slotledger",
	Short:         "Inspect and edit slot addressed ledger state",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	initConfig(rootCmd)

	rootCmd.PersistentFlags().Bool(config.Debug, false, `"true" or "false"`)
	rootCmd.PersistentFlags().String(config.LogFormatName, string(config.LogFormat_Json), `Log encoding written to stderr (json, console)`)

	rootCmd.PersistentFlags().String(config.StorageBackendType, string(config.StorageBackend_Memory), `Slot storage backend (memory, leveldb, postgres)`)
	rootCmd.PersistentFlags().String(config.StorageLevelDbPath, "", `Directory of the leveldb database`)
	rootCmd.PersistentFlags().String(config.KeyHasher, string(config.KeyHasher_Keccak256), `Hash used to derive keyed map offsets (keccak256, sha256)`)

	rootCmd.PersistentFlags().String(config.DatabaseHost, "localhost", `PostgreSQL host`)
	rootCmd.PersistentFlags().Int(config.DatabasePort, 5432, `PostgreSQL port`)
	rootCmd.PersistentFlags().String(config.DatabaseUser, "slotledger", `PostgreSQL username`)
	rootCmd.PersistentFlags().String(config.DatabasePassword, "", `PostgreSQL password`)
	rootCmd.PersistentFlags().String(config.DatabaseDbName, "slotledger", `PostgreSQL database name`)
	rootCmd.PersistentFlags().String(config.DatabaseSchemaName, "", `PostgreSQL schema name (default "public")`)
	rootCmd.PersistentFlags().String(config.DatabaseSSLMode, "disable", `PostgreSQL sslmode`)

	rootCmd.PersistentFlags().Bool(config.DataDogStatsdEnabled, false, `e.g. "true" or "false"`)
	rootCmd.PersistentFlags().String(config.DataDogStatsdUrl, "", `e.g. "localhost:8125"`)
	rootCmd.PersistentFlags().Float64(config.DataDogStatsdSampleRate, 1.0, `The sample rate to use for statsd metrics`)

	rootCmd.PersistentFlags().Bool(config.PrometheusEnabled, false, `e.g. "true" or "false"`)
	rootCmd.PersistentFlags().String(config.PrometheusPushUrl, "", `Pushgateway url, e.g. "http://localhost:9091"`)

	// setup sub commands
	rootCmd.AddCommand(runVersionCmd)
	rootCmd.AddCommand(slotCmd)
	rootCmd.AddCommand(scalarCmd)
	rootCmd.AddCommand(textCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(stateRootCmd)

	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		key := config.KebabToSnakeCase(f.Name)
		viper.BindPFlag(key, f) //nolint:errcheck
		viper.BindEnv(key)      //nolint:errcheck
	})
}

func initConfig(cmd *cobra.Command) {
	viper.SetEnvPrefix(config.ENV_PREFIX)

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.AutomaticEnv()
}
