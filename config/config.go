// Package config loads service settings from defaults, an optional YAML file,
// a .env file and the process environment, in that order.
package config

import (
	"os"
	"strings"
	"time"

	"blogsmith/config/database"
	"blogsmith/internal/apperr"
	"blogsmith/internal/article/repository"
	"blogsmith/internal/generator"
	"blogsmith/pkg/logger"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Generator GeneratorConfig `yaml:"generator"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type StoreConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	DSN    string `yaml:"dsn"`
}

type GeneratorConfig struct {
	Provider string        `yaml:"provider"`
	APIKey   string        `yaml:"api_key"`
	Model    string        `yaml:"model"`
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    90 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Driver: repository.DriverMemory,
			Path:   "data/blogs.db",
		},
		Generator: GeneratorConfig{
			Provider: generator.ProviderGemini,
			Timeout:  generator.DefaultTimeout,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load builds the configuration. An empty path skips the YAML layer; a
// missing .env file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if err := godotenv.Load(); err != nil {
		logger.Sugar.Debugf("No .env file found, using environment variables from OS")
	}
	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("PORT"); ok {
		c.Server.Addr = ":" + strings.TrimPrefix(v, ":")
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := get("STORE_DRIVER"); ok {
		c.Store.Driver = strings.ToLower(v)
	}
	if v, ok := get("STORE_PATH"); ok {
		c.Store.Path = v
	}
	if v, ok := get("DATABASE_URL"); ok {
		c.Store.DSN = v
	}
	if c.Store.Driver == repository.DriverPostgres && c.Store.DSN == "" {
		c.Store.DSN = database.DSNFromEnv()
	}

	if v, ok := get("GENERATOR_PROVIDER"); ok {
		c.Generator.Provider = strings.ToLower(v)
	}
	keyVar := "GEMINI_API_KEY"
	if c.Generator.Provider == generator.ProviderOpenAI {
		keyVar = "OPENAI_API_KEY"
	}
	if v, ok := get(keyVar); ok {
		c.Generator.APIKey = v
	}
	if v, ok := get("GENERATOR_MODEL"); ok {
		c.Generator.Model = v
	}
	if v, ok := get("GENERATOR_BASE_URL"); ok {
		c.Generator.BaseURL = v
	}
	if v, ok := get("GENERATOR_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			c.Generator.Timeout = d
		} else {
			logger.Sugar.Warnf("Ignoring invalid GENERATOR_TIMEOUT %q", v)
		}
	}
}

// Validate reports every invalid field at once. A missing API key is allowed;
// generation requests fail instead.
func (c Config) Validate() error {
	var ve apperr.ValidationErrors

	if strings.TrimSpace(c.Server.Addr) == "" {
		ve.Add("server.addr", "must not be empty")
	}
	if c.Server.ReadTimeout <= 0 {
		ve.Add("server.read_timeout", "must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		ve.Add("server.write_timeout", "must be positive")
	}

	switch c.Store.Driver {
	case repository.DriverMemory:
	case repository.DriverBolt, repository.DriverSQLite:
		if strings.TrimSpace(c.Store.Path) == "" {
			ve.Add("store.path", "must not be empty for driver "+c.Store.Driver)
		}
	case repository.DriverPostgres:
		if strings.TrimSpace(c.Store.DSN) == "" {
			ve.Add("store.dsn", "must not be empty for driver postgres")
		}
	default:
		ve.Add("store.driver", "must be 'memory', 'bolt', 'postgres' or 'sqlite'")
	}

	switch c.Generator.Provider {
	case generator.ProviderGemini, generator.ProviderOpenAI:
	default:
		ve.Add("generator.provider", "must be 'gemini' or 'openai'")
	}
	if c.Generator.Timeout <= 0 {
		ve.Add("generator.timeout", "must be positive")
	}

	if ve.HasAny() {
		return ve
	}
	return nil
}

// StoreOptions converts the store section for repository.Open.
func (c Config) StoreOptions() repository.OpenOptions {
	return repository.OpenOptions{Driver: c.Store.Driver, Path: c.Store.Path, DSN: c.Store.DSN}
}

// GeneratorOptions converts the generator section for generator.New.
func (c Config) GeneratorOptions() generator.Config {
	return generator.Config{
		Provider: c.Generator.Provider,
		APIKey:   c.Generator.APIKey,
		Model:    c.Generator.Model,
		BaseURL:  c.Generator.BaseURL,
		Timeout:  c.Generator.Timeout,
	}
}
