package app

import (
	"context"
	"sync"
	"time"

	"github.com/Tokebay/shortener/internal/models"
)

const (
	DefaultValidityMinutes     = 30
	DefaultMaxGenerateAttempts = 10
)

// LinkStore полная загрузка и полная перезапись коллекции ссылок
type LinkStore interface {
	Load(ctx context.Context) ([]models.LinkRecord, error)
	Save(ctx context.Context, links []models.LinkRecord) error
}

// Recorder журнал событий сервиса
type Recorder interface {
	Record(ctx context.Context, level models.Level, message string, data map[string]any)
}

// Service выделяет короткие коды и разрешает переходы.
// Каждый цикл load-modify-save выполняется под mu.
type Service struct {
	links          LinkStore
	logs           Recorder
	mu             sync.Mutex
	now            func() time.Time
	generateIDFunc func() string
	maxAttempts    int
	reservedCodes  map[string]struct{}
}

func NewService(links LinkStore, logs Recorder) *Service {
	return &Service{
		links:       links,
		logs:        logs,
		now:         time.Now,
		maxAttempts: DefaultMaxGenerateAttempts,
	}
}

// Метод для установки функции генерации идентификатора
func (s *Service) SetGenerateIDFunc(fn func() string) {
	s.generateIDFunc = fn
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) SetMaxGenerateAttempts(n int) {
	if n > 0 {
		s.maxAttempts = n
	}
}

// SetReservedCodes коды, совпадающие с маршрутами приложения; такие ссылки никогда бы не открылись
func (s *Service) SetReservedCodes(codes ...string) {
	s.reservedCodes = make(map[string]struct{}, len(codes))
	for _, c := range codes {
		s.reservedCodes[c] = struct{}{}
	}
}

func (s *Service) reserved(code string) bool {
	_, ok := s.reservedCodes[code]
	return ok
}
