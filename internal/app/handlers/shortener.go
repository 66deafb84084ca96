package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Tokebay/shortener/config"
	"github.com/Tokebay/shortener/internal/app"
	"github.com/Tokebay/shortener/internal/app/storage"
	"github.com/Tokebay/shortener/internal/logger"
	"github.com/Tokebay/shortener/internal/models"
	"github.com/go-chi/chi"
	"go.uber.org/zap"
)

type URLShortener struct {
	config  *config.Config
	service *app.Service
	links   *storage.LinkStore
	logs    *storage.LogSink
	kv      storage.KVStorage
}

// NewURLShortener собирает сервис и обработчики поверх одного хранилища
func NewURLShortener(cfg *config.Config, kv storage.KVStorage) *URLShortener {
	links := storage.NewLinkStore(kv)
	logs := storage.NewLogSink(kv)
	service := app.NewService(links, logs)
	service.SetMaxGenerateAttempts(cfg.MaxGenerateAttempts)
	service.SetReservedCodes(ReservedCodes...)

	return &URLShortener{
		config:  cfg,
		service: service,
		links:   links,
		logs:    logs,
		kv:      kv,
	}
}

func (us *URLShortener) Service() *app.Service {
	return us.service
}

func (us *URLShortener) shortURL(code string) string {
	return us.config.BaseURL + "/" + code
}

// BatchShortenURLHandler POST /api/shorten, до MaxBatchRows строк за раз
func (us *URLShortener) BatchShortenURLHandler(w http.ResponseWriter, r *http.Request) {
	var req models.BatchShortenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Error decoding JSON", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if len(req) == 0 {
		http.Error(w, "empty batch", http.StatusBadRequest)
		return
	}
	if len(req) > us.config.MaxBatchRows {
		http.Error(w, "too many rows in batch", http.StatusBadRequest)
		return
	}

	allocation, err := us.service.Allocate(r.Context(), req)
	if err != nil {
		logger.Log.Error("Error allocating short URLs", zap.Error(err))
		http.Error(w, "Error saving URL", http.StatusInternalServerError)
		return
	}

	resp := models.BatchShortenResponse{
		Results:  make([]models.ShortenResult, 0, len(allocation.Created)),
		Rejected: allocation.Rejected,
	}
	for _, link := range allocation.Created {
		resp.Results = append(resp.Results, models.ShortenResult{
			URL:       link.URL,
			Code:      link.Code,
			ShortURL:  us.shortURL(link.Code),
			CreatedAt: link.CreatedAt,
			ExpiresAt: link.ExpiresAt,
		})
	}

	httpStatusCode := http.StatusCreated
	if len(resp.Results) == 0 {
		httpStatusCode = http.StatusBadRequest
	}
	writeJSON(w, httpStatusCode, resp)
}

// RedirectURLHandler GET /{code}. При любой неудаче отправляет на главную.
func (us *URLShortener) RedirectURLHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	target, err := us.service.Resolve(r.Context(), code, models.Visitor{
		Referrer: r.Referer(),
		Geo:      clientGeo(r),
	})
	switch {
	case errors.Is(err, app.ErrShortcodeNotFound), errors.Is(err, app.ErrLinkExpired):
		http.Redirect(w, r, "/", http.StatusFound)
		return
	case err != nil:
		logger.Log.Error("Error resolving short URL", zap.String("code", code), zap.Error(err))
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	// Выполняем перенаправление на оригинальный URL
	w.Header().Set("Location", target)
	w.WriteHeader(http.StatusTemporaryRedirect)
}

func (us *URLShortener) HomeHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service":      "shortener",
		"shorten":      "POST /api/shorten",
		"maxBatchRows": us.config.MaxBatchRows,
	})
}

type pinger interface {
	Ping(ctx context.Context) error
}

// CheckStorage GET /ping
func (us *URLShortener) CheckStorage(w http.ResponseWriter, r *http.Request) {
	var err error
	if p, ok := us.kv.(pinger); ok {
		err = p.Ping(r.Context())
	} else {
		_, _, err = us.kv.Get(r.Context(), storage.LinksKey)
	}
	if err != nil {
		logger.Log.Error("Error checking storage", zap.Error(err))
		http.Error(w, "storage unavailable", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "error creating JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		logger.Log.Error("Error writing response", zap.Error(err))
	}
}
