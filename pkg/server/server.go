package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	handlers "github.com/joshpickett/EdgeTaxAI-sub001/pkg/handlers/wizard"
	taxmiddleware "github.com/joshpickett/EdgeTaxAI-sub001/pkg/server/middleware"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/services/wizard"
)

type Dependencies struct {
	Wizard wizard.Controller
	Logger zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

// ConfigureRouter builds the API router the external UI layer talks to.
func ConfigureRouter(config Config) *chi.Mux {
	h := handlers.NewHandler(config.Dependencies.Wizard)

	router := chi.NewRouter()
	router.Use(taxmiddleware.Logger(&config.Dependencies.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/sessions", h.CreateSession)
		r.Route("/sessions/{session}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Get("/questions", h.ListQuestions)
			r.Put("/answers/{question}", h.SetAnswer)
			r.Get("/documents", h.GetRequirements)
			r.Post("/documents/ack", h.AcknowledgeRequirements)
			r.Post("/documents/{document}/upload", h.RegisterUpload)
			r.Put("/schedules/{schedule}", h.UpdateSchedule)
			r.Get("/schedules/{schedule}/totals", h.GetTotals)
			r.Get("/schedules/{schedule}/sections/{section}/validation", h.ValidateSection)
			r.Get("/return", h.GetReturn)
			r.Post("/next", h.Next)
			r.Post("/back", h.Back)
			r.Post("/save", h.Save)
		})
	})

	return router
}

type WebAPI struct {
	logger *zerolog.Logger
	server *http.Server
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	config.Dependencies.Logger = logger
	return &WebAPI{
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: ConfigureRouter(config),
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
