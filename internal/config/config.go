package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type CORSConfig struct {
	Origins []string `mapstructure:"origins"`
}

// DairyConfig is the business identity printed on bills and statements.
type DairyConfig struct {
	Name    string `mapstructure:"name"`
	Phone   string `mapstructure:"phone"`
	Address string `mapstructure:"address"`
}

// SMSConfig configures the MSG91 gateway. An empty AuthKey disables sending;
// messages are logged instead of sent.
type SMSConfig struct {
	AuthKey            string `mapstructure:"auth_key"`
	SenderID           string `mapstructure:"sender_id"`
	Route              string `mapstructure:"route"`
	BaseURL            string `mapstructure:"base_url"`
	CollectionTemplate string `mapstructure:"collection_template_id"`
	PaymentTemplate    string `mapstructure:"payment_template_id"`
}

// SchedulerConfig controls the end-of-day summary job.
type SchedulerConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	DailySpec  string `mapstructure:"daily_spec"`
	OwnerPhone string `mapstructure:"owner_phone"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Dairy     DairyConfig     `mapstructure:"dairy"`
	SMS       SMSConfig       `mapstructure:"sms"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

var (
	appConfig *Config
	once      sync.Once
)

// Load loads configuration from given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in current working directory.
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		// environment overrides, e.g. ND_SERVER_PORT=9000
		v.SetEnvPrefix("ND")
		v.AutomaticEnv()

		if err = v.ReadInConfig(); err != nil {
			err = fmt.Errorf("read config: %w", err)
			return
		}

		var c Config
		if err = v.Unmarshal(&c); err != nil {
			err = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		appConfig = &c
	})

	if err != nil {
		return nil, err
	}
	return appConfig, nil
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
