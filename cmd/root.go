package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hagbad-hub/ayuuto-services/db"
	"github.com/hagbad-hub/ayuuto-services/internal/appconfig"
)

var (
	logLevel   string
	host       string
	port       int
	configPath string

	appCfg   *appconfig.Config
	ayuutoDB *db.AyuutoDB
)

var rootCmd = &cobra.Command{
	Use:   "ayuuto-services",
	Short: "Ayuuto Services",
	Long:  `Ayuuto Services runs the rotating-savings group engine: membership, contribution ledger, verification and cycle rotation.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn",
		"sets the log level")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml",
		"path to the config file")
}

// commonSetUp loads config, initialises logging and connects to the database.
func commonSetUp() {
	setLogging(logLevel)

	var err error
	appCfg, err = appconfig.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if err := os.Setenv("DATABASE_URL", appCfg.Database.Source); err != nil {
		fmt.Println("Error setting environment variable:", err)
		os.Exit(1)
	}

	logger := log.Logger
	ayuutoDB, err = db.NewAyuutoDB(&logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize AyuutoDB")
	}
}

func setLogging(level string) {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}
