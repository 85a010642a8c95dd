package config

import (
	"os"

	"github.com/pkg/errors"
)

type Config struct {
	AdminKey              string
	Environment           string
	FrontendURL           string
	GoogleCredentialsFile string
	Hostname              string
	MaxUploadBytes        int64
	MaxUploadFiles        int
	PublicDir             string
	RootFolderID          string
	ServerHost            string
	ServerPort            int
	WalkFanout            int
	WalkMaxDepth          int
}

const environmentENV = "ENVIRONMENT"

func New() (*Config, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := &Config{
		AdminKey:              os.Getenv("ADMIN_KEY"),
		GoogleCredentialsFile: os.Getenv("GOOGLE_CREDENTIALS_FILE"),
		Hostname:              hostname,
		MaxUploadBytes:        20 * 1024 * 1024,
		MaxUploadFiles:        50,
		RootFolderID:          os.Getenv("ROOT_FOLDER_ID"),
		ServerPort:            3000,
		WalkFanout:            4,
		WalkMaxDepth:          5,
	}

	switch os.Getenv(environmentENV) {
	case "development", "":
		cfg.Environment = "development"
		loadDevelopmentConfig(cfg)
	case "test":
		cfg.Environment = "test"
		loadTestConfig(cfg)
	case "production":
		cfg.Environment = "production"
		loadProductionConfig(cfg)
	}

	if cfg.Environment != "test" {
		if cfg.AdminKey == "" {
			return nil, errors.New("ADMIN_KEY must be set")
		}
		if cfg.RootFolderID == "" {
			return nil, errors.New("ROOT_FOLDER_ID must be set")
		}
		if cfg.GoogleCredentialsFile == "" {
			return nil, errors.New("GOOGLE_CREDENTIALS_FILE must be set")
		}
	}

	return cfg, nil
}
