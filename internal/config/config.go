package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN         string
	ServerPort    string
	SessionSecret string

	// DevMode — явный режим разработки: вместо сессии подставляется
	// админ-личность. Включается только переменной DEV_MODE.
	DevMode bool
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBDSN:         os.Getenv("DB_DSN"),
		ServerPort:    os.Getenv("SERVER_PORT"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		DevMode:       os.Getenv("DEV_MODE") == "1" || os.Getenv("DEV_MODE") == "true",
	}

	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN is not set")
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is not set")
	}

	if cfg.DevMode {
		log.Println("WARNING: DEV_MODE is on, requests run under the default admin identity")
	}

	return cfg
}
