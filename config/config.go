package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jsphweid/chordsheet/constants"
	"github.com/jsphweid/chordsheet/errors"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Backup   BackupConfig   `mapstructure:"backup"`
	Log      LogConfig      `mapstructure:"log"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// BackupConfig points at the DynamoDB table sheets are mirrored to.
// Endpoint is only set for local DynamoDB.
type BackupConfig struct {
	Table    string `mapstructure:"table"`
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
}

type LogConfig struct {
	JSON    bool `mapstructure:"json"`
	Verbose bool `mapstructure:"verbose"`
}

var viperInstance *viper.Viper

// GetViper returns the shared Viper instance so the CLI can bind flags to it
func GetViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	viperInstance = v
	return v
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", constants.DefaultDBPath)
	v.SetDefault("server.addr", constants.DefaultAddr)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("backup.table", constants.DefaultBackupTable)
	v.SetDefault("backup.region", constants.DefaultBackupRegion)
	v.SetDefault("backup.endpoint", "")
	v.SetDefault("log.json", false)
	v.SetDefault("log.verbose", false)
}

// Load reads configuration from, in increasing precedence: defaults,
// chordsheet.toml (explicit path, working dir or ~/.config/chordsheet),
// CHORDSHEET_* environment variables and bound flags.
func Load(configPath string) (*Config, error) {
	v := GetViper()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(constants.ConfigName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", constants.ConfigName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrapf(err, "read config %s", configPath)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	return &config, nil
}

// Reset drops the shared Viper instance (useful for testing)
func Reset() {
	viperInstance = nil
}
