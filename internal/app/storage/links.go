package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Tokebay/shortener/internal/logger"
	"github.com/Tokebay/shortener/internal/models"
	"go.uber.org/zap"
)

// LinkStore коллекция ссылок под ключом "links". Только чтение и запись целиком.
type LinkStore struct {
	kv KVStorage
}

func NewLinkStore(kv KVStorage) *LinkStore {
	return &LinkStore{kv: kv}
}

// Load возвращает пустую коллекцию, если ключа нет или JSON битый.
func (s *LinkStore) Load(ctx context.Context) ([]models.LinkRecord, error) {
	raw, found, err := s.kv.Get(ctx, LinksKey)
	if err != nil {
		return nil, fmt.Errorf("load links: %w", err)
	}
	links := []models.LinkRecord{}
	if !found {
		return links, nil
	}
	if err := json.Unmarshal([]byte(raw), &links); err != nil {
		logger.Log.Warn("Corrupt links collection, starting empty", zap.Error(err))
		return []models.LinkRecord{}, nil
	}
	for i := range links {
		if links[i].Clicks == nil {
			links[i].Clicks = []models.ClickEvent{}
		}
	}
	return links, nil
}

func (s *LinkStore) Save(ctx context.Context, links []models.LinkRecord) error {
	data, err := json.Marshal(links)
	if err != nil {
		return fmt.Errorf("encode links: %w", err)
	}
	if err := s.kv.Set(ctx, LinksKey, string(data)); err != nil {
		return fmt.Errorf("save links: %w", err)
	}
	return nil
}
