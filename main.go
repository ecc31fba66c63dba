package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()

	proxy, err := newBackendProxy(cfg.BackendURL)
	if err != nil {
		log.Fatal(err)
	}

	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(metricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/api/v2/*", proxy)

	// Everything else is the PWA shell; the wasm client routes internally.
	r.Handle("/*", &app.Handler{
		Name:        "PureBite",
		ShortName:   "PureBite",
		Description: "Parent-led food testing community: vote, fund and read real lab results.",
		Styles:      []string{"/web/app.css"},
	})

	log.Printf("PureBite web running on %s (backend %s)", cfg.Addr, cfg.BackendURL)
	log.Fatal(http.ListenAndServe(cfg.Addr, r))
}
