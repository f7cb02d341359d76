package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel    string      `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort    string      `yaml:"http-port" env:"HTTP_PORT" env-default:"3000"`
	TLS         TLS         `yaml:"tls"`
	CORS        CORS        `yaml:"cors"`
	Matchmaking Matchmaking `yaml:"matchmaking"`
	Redis       Redis       `yaml:"redis"`
}

// TLS - both files must be set to serve HTTPS.
type TLS struct {
	CertFile string `yaml:"cert-file" env:"TLS_CERT_FILE"`
	KeyFile  string `yaml:"key-file" env:"TLS_KEY_FILE"`
}

type CORS struct {
	AllowOrigin string `yaml:"allow-origin" env:"CORS_ALLOW_ORIGIN" env-default:"*"`
}

type Matchmaking struct {
	Order      string `yaml:"order" env:"MATCHMAKING_ORDER" env-default:"lifo"`
	ShardCount int    `yaml:"shard-count" env:"MATCHMAKING_SHARD_COUNT" env-default:"32"`
}

// Redis - the game mirror is written only when Enabled.
type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Load - reads the config file and applies environment overrides.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *TLS) Enabled() bool {
	return that.CertFile != "" && that.KeyFile != ""
}
