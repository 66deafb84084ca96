package models

// ShortenRow одна строка пакетной формы сокращения
type ShortenRow struct {
	URL      string `json:"url"`
	Validity string `json:"validity"`
	Code     string `json:"code,omitempty"`
}

// BatchShortenRequest тело POST /api/shorten
type BatchShortenRequest []ShortenRow

type ShortenResult struct {
	URL       string `json:"url"`
	Code      string `json:"code"`
	ShortURL  string `json:"shortUrl"`
	CreatedAt int64  `json:"createdAt"`
	ExpiresAt int64  `json:"expiresAt"`
}

type Rejection struct {
	Index  int    `json:"index"`
	URL    string `json:"url"`
	Code   string `json:"code,omitempty"`
	Reason string `json:"reason"`
}

type BatchShortenResponse struct {
	Results  []ShortenResult `json:"results"`
	Rejected []Rejection     `json:"rejected"`
}

type LinkStats struct {
	LinkRecord
	ShortURL    string `json:"shortUrl"`
	TotalClicks int    `json:"totalClicks"`
}
