package app

import (
	"context"

	"github.com/Tokebay/shortener/internal/models"
)

// DirectSource источник перехода без реферера
const DirectSource = "direct"

// Resolve находит ссылку по коду, записывает клик и возвращает адрес для редиректа.
// Для неизвестного или истёкшего кода хранилище не меняется.
func (s *Service) Resolve(ctx context.Context, code string, visitor models.Visitor) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	links, err := s.links.Load(ctx)
	if err != nil {
		return "", err
	}

	idx := -1
	for i := range links {
		if links[i].Code == code {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.logs.Record(ctx, models.LevelError, "Shortcode not found", map[string]any{"code": code})
		return "", ErrShortcodeNotFound
	}

	now := s.now()
	link := &links[idx]
	if link.Expired(now) {
		s.logs.Record(ctx, models.LevelError, "Link expired", map[string]any{"code": code})
		return "", ErrLinkExpired
	}

	source := visitor.Referrer
	if source == "" {
		source = DirectSource
	}
	link.Clicks = append(link.Clicks, models.ClickEvent{
		Timestamp: now.UnixMilli(),
		Source:    source,
		Geo:       visitor.Geo,
	})
	if err := s.links.Save(ctx, links); err != nil {
		return "", err
	}

	s.logs.Record(ctx, models.LevelInfo, "Redirected", map[string]any{"code": code, "url": link.URL})
	return link.URL, nil
}
