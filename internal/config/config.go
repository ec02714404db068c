package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	App AppConfig `yaml:"app"`
}

// LoadConfig reads config/config.yaml when present and applies
// DATABASE_URL / PORT environment overrides. A missing file leaves
// the defaults in place (in-memory store, port 8080).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.App.Name = "TaskManager"
	cfg.App.Version = "1.0.0"

	if f, err := os.Open("config/config.yaml"); err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			panic("Failed to parse config.yaml: " + err.Error())
		}
	}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.Database.DSN = dsn
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	return cfg
}
