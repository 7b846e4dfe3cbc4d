package internal

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Port     string `koanf:"port"`
	MongoURI string `koanf:"mongo_uri"`
	DBName   string `koanf:"db_name"`
	Store    string `koanf:"store"` // mongo|memory
}

func defaultConfig() *Config {
	return &Config{
		Port:     "3000",
		MongoURI: "mongodb://localhost:27017",
		DBName:   "esportsDB",
		Store:    "mongo",
	}
}

// LoadConfig layers environment variables over built-in defaults:
// PORT, MONGO_URI, DB_NAME, STORE.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
