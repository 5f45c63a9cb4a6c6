package app

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/redspider/medqa/internal/agent/model"
	"github.com/redspider/medqa/internal/core"
	errx "github.com/redspider/medqa/internal/core/error"
	logx "github.com/redspider/medqa/pkg/logger"
	pkgneo4j "github.com/redspider/medqa/pkg/neo4j"
	pkgredis "github.com/redspider/medqa/pkg/redis"
)

// Config defines all configurable parameters of the medqa process,
// sourced from environment variables (loaded from .env for local runs).
type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL"`
	MetricsAddr string `envconfig:"METRICS_ADDR"`

	// Infrastructure
	Neo4j pkgneo4j.Config
	Redis pkgredis.Config

	// Cascade
	Dictionary model.DictionaryConfig
	Graph      model.GraphConfig
	Generator  model.GeneratorConfig
	Prompt     model.PromptConfig
	Cache      model.CacheConfig
}

// LoadConfig reads the optional .env files and then the process environment.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	if err := godotenv.Load(envFiles...); err != nil {
		logx.Debug().Err(err).Msg("no .env file loaded")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, errx.Config("process environment config: %v", err)
	}
	return cfg, nil
}

func (c Config) Env() core.Environment {
	return core.ParseEnvironment(c.Environment)
}

// InitLogger configures the global logger for c.
func (c Config) InitLogger() {
	logx.Init(logx.LoggerOpts{Environment: c.Env(), Level: c.LogLevel})
}
