package handlers

import (
	"github.com/Tokebay/shortener/internal/logger"
	"github.com/go-chi/chi"
)

// ReservedCodes первые сегменты путей, занятые маршрутами ниже
var ReservedCodes = []string{"api", "ping"}

// NewRouter маршрутизатор приложения. /{code} перехватывает всё, что не совпало с остальными маршрутами.
func NewRouter(us *URLShortener) chi.Router {
	r := chi.NewRouter()
	r.Use(logger.LoggerMiddleware)
	r.Use(logger.RecoveryMiddleware)

	r.Get("/", us.HomeHandler)
	r.Get("/ping", us.CheckStorage)

	r.Route("/api", func(r chi.Router) {
		// middleware проверяет поддержку сжатия gzip
		r.Use(GzipMiddleware)
		r.Post("/shorten", us.BatchShortenURLHandler)
		r.Get("/links", us.LinksHandler)
		r.Get("/links/{code}", us.LinkHandler)
		r.Get("/logs", us.LogsHandler)
	})

	r.Get("/{code}", us.RedirectURLHandler)
	return r
}
