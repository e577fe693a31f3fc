package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	RelayWebSocket = "websocket"
	RelayRedis     = "redis"
)

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPAddr  string    `yaml:"http-addr" env:"HTTP_ADDR" env-default:":8080"`
	Relay     Relay     `yaml:"relay"`
	Computer  Computer  `yaml:"computer"`
	Telemetry Telemetry `yaml:"telemetry"`
}

type Relay struct {
	Kind  string `yaml:"kind" env:"RELAY_KIND" env-default:"websocket"`
	URL   string `yaml:"url" env:"RELAY_URL" env-default:"ws://localhost:3000/ws"`
	Redis Redis  `yaml:"redis"`
}

type Redis struct {
	Addr string `yaml:"addr" env:"RELAY_REDIS_ADDR" env-default:"localhost:6379"`
}

type Computer struct {
	Delay time.Duration `yaml:"delay" env:"COMPUTER_DELAY" env-default:"800ms"`
}

type Telemetry struct {
	Enabled     bool   `yaml:"enabled" env:"TELEMETRY_ENABLED" env-default:"false"`
	Endpoint    string `yaml:"endpoint" env:"TELEMETRY_ENDPOINT" env-default:"otel-collector:4317"`
	ServiceName string `yaml:"service-name" env:"TELEMETRY_SERVICE_NAME" env-default:"tictactoe"`
}

// Load reads the YAML file at path, then environment overrides. An empty
// path reads the environment only.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (that *Config) validate() error {
	switch that.Relay.Kind {
	case RelayWebSocket, RelayRedis:
	default:
		return fmt.Errorf("unknown relay kind %q", that.Relay.Kind)
	}
	if that.Computer.Delay < 0 {
		return fmt.Errorf("computer delay must not be negative, got %s", that.Computer.Delay)
	}
	return nil
}
