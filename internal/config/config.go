package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"7777"`
	Redis      Redis  `yaml:"redis"`
	Client     Client `yaml:"client"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Client configures the hot-seat binary and its history connection.
type Client struct {
	ServerURL         string        `yaml:"server-url" env:"HISTORY_SERVER_URL" env-default:"ws://localhost:7777/ws"`
	DialTimeout       time.Duration `yaml:"dial-timeout" env-default:"5s"`
	RequestTimeout    time.Duration `yaml:"request-timeout" env-default:"5s"`
	DisconnectTimeout time.Duration `yaml:"disconnect-timeout" env-default:"30s"`
	PlayerOne         string        `yaml:"player-one" env-default:"Player 1"`
	PlayerTwo         string        `yaml:"player-two" env-default:"Player 2"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
