package main

import (
	"context"
	"net"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/signals"
	"golang.org/x/oauth2/google"

	"github.com/eventlens/eventlens/pkg/config"
	"github.com/eventlens/eventlens/pkg/drive"
	"github.com/eventlens/eventlens/pkg/server"
	"github.com/eventlens/eventlens/pkg/version"
)

// driveScope grants full folder/file access; creation, upload, rename, and
// delete all need it.
const driveScope = "https://www.googleapis.com/auth/drive"

func main() {
	ctx := context.Background()
	log := logger.New()

	// .env is a local-development convenience; deployed environments set
	// real variables.
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, using system environment")
	}

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	log.Info("starting eventlens", logger.Data{
		"version":     version.Version,
		"environment": cfg.Environment,
		"hostname":    cfg.Hostname,
	})

	client, err := newDriveClient(ctx, cfg)
	if err != nil {
		log.Err(err).Fatal("drive client error")
	}

	srv, err := server.New(cfg, client)
	if err != nil {
		log.Err(err).Fatal("server error")
	}

	graceful := signals.Setup()

	go func() {
		lc := net.ListenConfig{}
		listener, err := lc.Listen(ctx, "tcp", srv.Addr)
		if err != nil {
			log.Err(err).Fatal("failed to bind port")
		}

		actualPort := listener.Addr().(*net.TCPAddr).Port
		log.Info("server started", logger.Data{"port": actualPort})

		err = srv.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Err(err).Fatal("server stopped")
		}
		log.Info("server stopped")
	}()

	<-graceful
	log.Info("starting graceful shutdown")

	err = srv.Shutdown(ctx)
	if err != nil {
		log.Err(err).Error("server shutdown error")
	}
	log.Info("server shutdown")
}

// newDriveClient builds the Drive client from a service-account key file.
// The oauth2 client refreshes access tokens on its own; nothing else in the
// process touches credentials.
func newDriveClient(ctx context.Context, cfg *config.Config) (*drive.Client, error) {
	creds, err := os.ReadFile(cfg.GoogleCredentialsFile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read credentials file: %s", cfg.GoogleCredentialsFile)
	}

	jwtConfig, err := google.JWTConfigFromJSON(creds, driveScope)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse service account credentials")
	}

	return drive.NewClient(jwtConfig.Client(ctx)), nil
}
