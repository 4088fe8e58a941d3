package server

import (
	"net/http"
	"time"

	"github.com/gimlet-io/rocketchat-notifier/cmd/notifierd/config"
	"github.com/gimlet-io/rocketchat-notifier/pkg/notifications"
	"github.com/gimlet-io/rocketchat-notifier/pkg/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func SetupRouter(
	config *config.Config,
	store *store.Store,
	publisher *notifications.Publisher,
	metrics *Metrics,
) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(middleware.WithValue("store", store))
	r.Use(middleware.WithValue("publisher", publisher))
	r.Use(middleware.WithValue("settings", settings(config)))
	r.Use(middleware.WithValue("metrics", metrics))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8888", config.Host},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/api/builds", buildEvent)
	r.Get("/api/builds", getBuilds)
	r.Get("/api/builds/{id}", getBuild)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

func settings(config *config.Config) notifications.Settings {
	return notifications.Settings{
		WebhookURL:             config.RocketChat.WebhookURL,
		Channel:                config.RocketChat.Channel,
		NotifyBackToNormalOnly: config.RocketChat.NotifyBackToNormalOnly,
		ShowTestSummary:        config.RocketChat.ShowTestSummary,
	}
}
