package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort       string        `mapstructure:"SERVER_PORT"`
	PostgresURL      string        `mapstructure:"POSTGRES_URL"`
	RedisAddr        string        `mapstructure:"REDIS_ADDR"`
	RedisPassword    string        `mapstructure:"REDIS_PASSWORD"`
	DirectoryURL     string        `mapstructure:"DIRECTORY_URL"`
	DirectoryTimeout time.Duration `mapstructure:"DIRECTORY_TIMEOUT"`
	DirectoryRPS     float64       `mapstructure:"DIRECTORY_RPS"`
	MQTTBrokerURL    string        `mapstructure:"MQTT_BROKER_URL"`
	MQTTClientID     string        `mapstructure:"MQTT_CLIENT_ID"`
	LogLevel         string        `mapstructure:"LOG_LEVEL"`
}

// Load reads an optional .env file and then the process environment.
// Postgres, Redis and MQTT stay disabled unless their address is set.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("SERVER_PORT", ":8080")
	v.SetDefault("POSTGRES_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("DIRECTORY_URL", "https://jbdspower.in/LeafNetServer/api/user")
	v.SetDefault("DIRECTORY_TIMEOUT", 15*time.Second)
	v.SetDefault("DIRECTORY_RPS", 5.0)
	v.SetDefault("MQTT_BROKER_URL", "")
	v.SetDefault("MQTT_CLIENT_ID", "fieldtrack-api")
	v.SetDefault("LOG_LEVEL", "info")

	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}
