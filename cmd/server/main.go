package main

import (
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/emashae/payment-gateway-api/internal/config"
	httpd "github.com/emashae/payment-gateway-api/internal/delivery/http"
	"github.com/emashae/payment-gateway-api/internal/repository"
	"github.com/emashae/payment-gateway-api/internal/usecase"
)

func main() {
	cfg := config.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(lvl)
	}

	repo, err := repository.NewSQLiteRepo(cfg.SQLiteDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("open db")
	}
	defer repo.Close()

	uc := usecase.NewTransactionUsecase(repo)
	h := httpd.NewHandler(uc, repo, log)

	r := h.Routes(httpd.SigConfig{
		Secret:        cfg.HMACSecret,
		MaxAgeSeconds: cfg.SigMaxAgeSeconds,
	})

	addr := ":" + cfg.AppPort
	log.Info().Str("addr", addr).Msg("server listening")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
