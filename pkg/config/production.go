package config

import (
	"os"
	"strconv"
)

func loadProductionConfig(cfg *Config) {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err == nil {
		cfg.ServerPort = port
	}

	cfg.FrontendURL = os.Getenv("FRONTEND_URL")
	cfg.PublicDir = os.Getenv("PUBLIC_DIR")
	cfg.ServerHost = "0.0.0.0"
}
