package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/josephgoksu/dayplan/internal/config"
	"github.com/josephgoksu/dayplan/types"
	"github.com/spf13/viper"
)

const (
	configName = ".dayplan"
	envPrefix  = "DAYPLAN"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single instance of Validate, it caches struct info
var validate = validator.New()

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(cfg *types.AppConfig) error {
	return validate.Struct(cfg)
}

func setDefaults() {
	viper.SetDefault("data.dir", config.GetDataDir())
	viper.SetDefault("data.backend", config.DefaultBackend)
	viper.SetDefault("data.format", config.DefaultFormat)
	viper.SetDefault("log.path", config.DefaultLogPath)
	viper.SetDefault("log.level", config.DefaultLogLevel)
	viper.SetDefault("rollover.pollInterval", config.DefaultPollInterval)
	viper.SetDefault("tracking.tickInterval", config.DefaultTickInterval)
	viper.SetDefault("bridge.enabled", false)
	viper.SetDefault("bridge.dir", config.DefaultBridgeDir)
	viper.SetDefault("bridge.interval", config.DefaultBridgeInterval)
	viper.SetDefault("watch.enabled", true)
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix) // e.g., DAYPLAN_DATA_DIR
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	cfgFileFlag := viper.GetString("config")
	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		// ./.dayplan/.dayplan.yaml wins over $HOME/.dayplan.yaml and ./.dayplan.yaml
		if _, err := os.Stat(configName); err == nil {
			viper.AddConfigPath(configName)
		}
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(configName)
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && cfgFileFlag == "":
			if viper.GetBool("verbose") {
				fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
			}
		case cfgFileFlag != "" && os.IsNotExist(err):
			fmt.Fprintln(os.Stderr, "Error: Specified config file not found:", cfgFileFlag)
		default:
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
		}
	}

	setDefaults()

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling config: %s\n", err)
		os.Exit(1)
	}
	GlobalAppConfig.Data.Dir = config.ExpandHome(GlobalAppConfig.Data.Dir)

	if err := validateAppConfig(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation error: %s\n", err)
		os.Exit(1)
	}
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}
