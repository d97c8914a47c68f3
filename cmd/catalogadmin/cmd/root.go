package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/nhalm/canonlog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:           "catalogadmin",
	Short:         "Catalog admin API server and product editor",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

// initConfig reads an optional .env file, then lets the environment override it.
func initConfig() {
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("API_BASE_URL", "http://localhost:8080/api/v1")
	viper.SetDefault("STORAGE_DRIVER", "local")
	viper.SetDefault("LOCAL_UPLOAD_DIR", "./storage/uploads")
	viper.SetDefault("LOCAL_UPLOAD_URL_PREFIX", "/uploads")
	viper.SetDefault("MIGRATIONS_PATH", "file://internal/database/migrations")
}

func setupLogger() {
	canonlog.SetupGlobalLogger(viper.GetString("LOG_LEVEL"), viper.GetString("LOG_FORMAT"))
}
