package app

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/Tokebay/shortener/internal/models"
)

// Allocation итог пакетного сокращения
type Allocation struct {
	Created  []models.LinkRecord
	Rejected []models.Rejection
}

// Allocate обрабатывает строки по порядку. Отклонённые строки пишутся в журнал и пропускаются,
// ошибка возвращается только при сбое хранилища.
func (s *Service) Allocate(ctx context.Context, rows []models.ShortenRow) (*Allocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	links, err := s.links.Load(ctx)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]struct{}, len(links)+len(rows))
	for _, l := range links {
		taken[l.Code] = struct{}{}
	}

	result := &Allocation{
		Created:  []models.LinkRecord{},
		Rejected: []models.Rejection{},
	}
	for i, row := range rows {
		code, err := s.assignCode(ctx, row, taken)
		if err != nil {
			result.Rejected = append(result.Rejected, models.Rejection{
				Index:  i,
				URL:    row.URL,
				Code:   row.Code,
				Reason: err.Error(),
			})
			continue
		}

		createdAt := s.now().UnixMilli()
		entry := models.LinkRecord{
			URL:       row.URL,
			Code:      code,
			CreatedAt: createdAt,
			ExpiresAt: createdAt + int64(parseValidity(row.Validity))*60000,
			Clicks:    []models.ClickEvent{},
		}
		taken[code] = struct{}{}
		links = append(links, entry)
		result.Created = append(result.Created, entry)
		s.logs.Record(ctx, models.LevelInfo, "Short URL created", map[string]any{
			"url":       entry.URL,
			"code":      entry.Code,
			"createdAt": entry.CreatedAt,
			"expiresAt": entry.ExpiresAt,
		})
	}

	if len(result.Created) > 0 {
		if err := s.links.Save(ctx, links); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *Service) assignCode(ctx context.Context, row models.ShortenRow, taken map[string]struct{}) (string, error) {
	if !ValidURL(row.URL) {
		s.logs.Record(ctx, models.LevelError, "Invalid URL", map[string]any{"url": row.URL})
		return "", ErrInvalidURL
	}

	if row.Code != "" {
		if !ValidCode(row.Code) {
			s.logs.Record(ctx, models.LevelError, "Invalid shortcode format", map[string]any{"code": row.Code})
			return "", ErrInvalidCodeFormat
		}
		if s.reserved(row.Code) {
			s.logs.Record(ctx, models.LevelError, "Reserved shortcode", map[string]any{"code": row.Code})
			return "", ErrInvalidCodeFormat
		}
		if _, ok := taken[row.Code]; ok {
			s.logs.Record(ctx, models.LevelError, "Shortcode collision", map[string]any{"code": row.Code})
			return "", ErrCodeCollision
		}
		return row.Code, nil
	}

	code, err := s.generateFree(taken)
	if errors.Is(err, ErrCodeSpaceExhausted) {
		s.logs.Record(ctx, models.LevelError, "Shortcode space exhausted", map[string]any{
			"url":      row.URL,
			"attempts": s.maxAttempts,
		})
	}
	return code, err
}

// generateFree генерирует код, пока не найдётся свободный, не больше maxAttempts раз
func (s *Service) generateFree(taken map[string]struct{}) (string, error) {
	for i := 0; i < s.maxAttempts; i++ {
		code := s.GenerateID()
		if code == "" {
			continue
		}
		if _, ok := taken[code]; !ok && !s.reserved(code) {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}

// ValidURL принимает только абсолютные URL со схемой и хостом (или opaque-частью, как mailto:)
func ValidURL(raw string) bool {
	if strings.TrimSpace(raw) != raw || raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return false
	}
	return u.Host != "" || u.Opaque != ""
}

// parseValidity срок жизни в минутах: знак и ведущие цифры, остальное отбрасывается ("10.0" -> 10, "5min" -> 5).
// Нет цифр, ноль или отрицательное значение означают 30.
func parseValidity(raw string) int {
	s := strings.TrimSpace(raw)
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	minutes, err := strconv.Atoi(s[:end])
	if err != nil || negative || minutes <= 0 {
		return DefaultValidityMinutes
	}
	return minutes
}
