package app

import (
	"context"
	"testing"
	"time"

	"github.com/Tokebay/shortener/internal/app/storage"
	"github.com/Tokebay/shortener/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) create(t *testing.T, row models.ShortenRow) models.LinkRecord {
	t.Helper()
	res, err := f.service.Allocate(context.Background(), []models.ShortenRow{row})
	require.NoError(t, err)
	require.Len(t, res.Created, 1)
	return res.Created[0]
}

func (f *fixture) rawLinks(t *testing.T) string {
	t.Helper()
	raw, _, err := f.kv.Get(context.Background(), storage.LinksKey)
	require.NoError(t, err)
	return raw
}

func TestResolve_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	link := f.create(t, models.ShortenRow{URL: "https://example.com/landing", Code: "promo"})

	f.now = f.now.Add(time.Minute)
	target, err := f.service.Resolve(ctx, "promo", models.Visitor{Geo: "Europe/Paris | fr-FR"})
	require.NoError(t, err)
	assert.Equal(t, link.URL, target)

	links := f.storedLinks(t)
	require.Len(t, links, 1)
	require.Len(t, links[0].Clicks, 1)
	assert.Equal(t, models.ClickEvent{
		Timestamp: f.now.UnixMilli(),
		Source:    DirectSource,
		Geo:       "Europe/Paris | fr-FR",
	}, links[0].Clicks[0])

	entries := f.storedLogs(t)
	last := entries[len(entries)-1]
	assert.Equal(t, models.LevelInfo, last.Level)
	assert.Equal(t, "Redirected", last.Message)
	assert.Equal(t, "promo", last.Data["code"])
}

func TestResolve_AppendsOneClickPerCall(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, models.ShortenRow{URL: "https://example.com", Code: "multi"})

	for i := 1; i <= 3; i++ {
		_, err := f.service.Resolve(ctx, "multi", models.Visitor{Referrer: "https://news.example/"})
		require.NoError(t, err)
		assert.Len(t, f.storedLinks(t)[0].Clicks, i)
	}
	assert.Equal(t, "https://news.example/", f.storedLinks(t)[0].Clicks[2].Source)
}

func TestResolve_NotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, models.ShortenRow{URL: "https://example.com", Code: "known"})
	before := f.rawLinks(t)

	_, err := f.service.Resolve(ctx, "unknown", models.Visitor{})
	assert.ErrorIs(t, err, ErrShortcodeNotFound)
	assert.Equal(t, before, f.rawLinks(t))

	entries := f.storedLogs(t)
	last := entries[len(entries)-1]
	assert.Equal(t, models.LevelError, last.Level)
	assert.Equal(t, "Shortcode not found", last.Message)
}

func TestResolve_EmptyStore(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Resolve(context.Background(), "abc", models.Visitor{})
	assert.ErrorIs(t, err, ErrShortcodeNotFound)
	_, found, err := f.kv.Get(context.Background(), storage.LinksKey)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestResolve_Expired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, models.ShortenRow{URL: "https://example.com", Validity: "30", Code: "old"})

	f.now = f.now.Add(31 * time.Minute)
	_, err := f.service.Resolve(ctx, "old", models.Visitor{})
	assert.ErrorIs(t, err, ErrLinkExpired)
	assert.Empty(t, f.storedLinks(t)[0].Clicks)

	entries := f.storedLogs(t)
	assert.Equal(t, "Link expired", entries[len(entries)-1].Message)
}

func TestResolve_ExactlyAtExpiry(t *testing.T) {
	f := newFixture(t)
	f.create(t, models.ShortenRow{URL: "https://example.com", Validity: "30", Code: "edge"})

	f.now = f.now.Add(30 * time.Minute)
	_, err := f.service.Resolve(context.Background(), "edge", models.Visitor{})
	assert.NoError(t, err)

	f.now = f.now.Add(time.Millisecond)
	_, err = f.service.Resolve(context.Background(), "edge", models.Visitor{})
	assert.ErrorIs(t, err, ErrLinkExpired)
}

func TestResolve_BackendFailure(t *testing.T) {
	service := NewService(failingStore{}, storage.NewLogSink(storage.NewMapStorage()))

	_, err := service.Resolve(context.Background(), "abc", models.Visitor{})
	assert.ErrorIs(t, err, errBackend)
}
