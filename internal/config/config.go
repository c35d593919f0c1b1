package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel      string        `yaml:"log-level"      env:"LOG_LEVEL"      env-default:"info"`
	HTTPPort      string        `yaml:"http-port"      env:"HTTP_PORT"      env-default:"9090"`
	Storage       string        `yaml:"storage"        env:"STORAGE"        env-default:"memory"`
	Redis         Redis         `yaml:"redis"`
	SessionTTL    time.Duration `yaml:"session-ttl"    env:"SESSION_TTL"    env-default:"0s"`
	ComputerDelay time.Duration `yaml:"computer-delay" env:"COMPUTER_DELAY" env-default:"300ms"`
	DepthScoring  bool          `yaml:"depth-scoring"  env:"DEPTH_SCORING"  env-default:"false"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
