package config

import (
	"os"
	"strconv"
)

func loadDevelopmentConfig(cfg *Config) {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err == nil {
		cfg.ServerPort = port
	}

	cfg.FrontendURL = "http://localhost:3000"
	cfg.PublicDir = "./public"
	cfg.ServerHost = "127.0.0.1"
}
