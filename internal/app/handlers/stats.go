package handlers

import (
	"net/http"

	"github.com/Tokebay/shortener/internal/logger"
	"github.com/Tokebay/shortener/internal/models"
	"github.com/go-chi/chi"
	"go.uber.org/zap"
)

func (us *URLShortener) linkStats(link models.LinkRecord) models.LinkStats {
	return models.LinkStats{
		LinkRecord:  link,
		ShortURL:    us.shortURL(link.Code),
		TotalClicks: len(link.Clicks),
	}
}

// LinksHandler GET /api/links, все ссылки с историей кликов
func (us *URLShortener) LinksHandler(w http.ResponseWriter, r *http.Request) {
	links, err := us.links.Load(r.Context())
	if err != nil {
		logger.Log.Error("Error loading links", zap.Error(err))
		http.Error(w, "Error loading links", http.StatusInternalServerError)
		return
	}

	stats := make([]models.LinkStats, 0, len(links))
	for _, l := range links {
		stats = append(stats, us.linkStats(l))
	}
	writeJSON(w, http.StatusOK, stats)
}

// LinkHandler GET /api/links/{code}
func (us *URLShortener) LinkHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	links, err := us.links.Load(r.Context())
	if err != nil {
		logger.Log.Error("Error loading links", zap.Error(err))
		http.Error(w, "Error loading links", http.StatusInternalServerError)
		return
	}
	for _, l := range links {
		if l.Code == code {
			writeJSON(w, http.StatusOK, us.linkStats(l))
			return
		}
	}
	http.Error(w, "URL not found", http.StatusNotFound)
}

// LogsHandler GET /api/logs
func (us *URLShortener) LogsHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := us.logs.Load(r.Context())
	if err != nil {
		logger.Log.Error("Error loading logs", zap.Error(err))
		http.Error(w, "Error loading logs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
