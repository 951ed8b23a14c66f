package main

import (
	"encoding/json"
	"net/http"

	"braincheck/internal/channel"
	"braincheck/internal/config"
	"braincheck/internal/infrastructure"
	"braincheck/pkg/middleware"
	"braincheck/pkg/module"
	"braincheck/pkg/routes"
)

func mountModules(
	router *module.Router,
	cfg *config.Config,
	infra *infrastructure.Infrastructure,
	hub *channel.Hub,
) {
	mux := http.NewServeMux()
	routes.Register(mux, hub.Routes())

	channelModule := module.New(cfg.Channel.BasePath, mux)
	channelModule.Use(middleware.Logger(infra.Logger))

	router.Mount(channelModule)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	return router
}
