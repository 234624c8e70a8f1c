package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"studymate-service/internal/llm"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Auth struct {
		// JWTSecret signs bearer tokens. Required; supplied via the
		// STUDYMATE_JWT_SECRET environment variable or the YAML file,
		// never compiled in.
		JWTSecret string `yaml:"jwt_secret"`
		TokenTTL  string `yaml:"token_ttl"`
	} `yaml:"auth"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Session struct {
		TTL string `yaml:"ttl"`
	} `yaml:"session"`
	LLM llm.Config `yaml:"llm"`
}

// Load reads YAML config from path and overlays environment variables.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg.fromEnv(), nil
}

func (c Config) fromEnv() Config {
	if s := os.Getenv("STUDYMATE_JWT_SECRET"); s != "" {
		c.Auth.JWTSecret = s
	}
	if u := os.Getenv("DATABASE_URL"); u != "" {
		c.Postgres.URL = u
	}
	if a := os.Getenv("REDIS_ADDR"); a != "" {
		c.Redis.Addr = a
	}
	c.LLM = c.LLM.FromEnv()
	return c
}

// Validate fails fast on configuration the server cannot run without.
func (c Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret (or STUDYMATE_JWT_SECRET) is required")
	}
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	return nil
}

// TTLDuration parses a duration string or returns the fallback if empty or
// malformed.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
