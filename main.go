package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/crodriguezm/sgsst/app"
	"github.com/crodriguezm/sgsst/classify"
	"github.com/crodriguezm/sgsst/config"
	"github.com/crodriguezm/sgsst/database"
	"github.com/crodriguezm/sgsst/httpx"
	"github.com/crodriguezm/sgsst/log"
	"github.com/crodriguezm/sgsst/routes"
	"github.com/crodriguezm/sgsst/store"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	bearerServer := httpx.NewBearerServer(db, cfg)

	var classifier *classify.Service
	if cfg.GeminiAPIKey != "" {
		classifier, err = classify.New(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			log.Fatal("main.classify:", err)
		}
	} else {
		log.Warn("no Gemini API key configured, finding suggestions disabled")
	}

	app := app.App{
		BearerServer: bearerServer,
		Config:       cfg,
		Store:        store.New(db),
		Classifier:   classifier,
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
