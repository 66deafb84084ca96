package models

import "time"

// LinkRecord связывает короткий код с исходным URL. Время хранится в миллисекундах Unix.
type LinkRecord struct {
	URL       string       `json:"url"`
	Code      string       `json:"code"`
	CreatedAt int64        `json:"createdAt"`
	ExpiresAt int64        `json:"expiresAt"`
	Clicks    []ClickEvent `json:"clicks"`
}

// Expired сообщает, истекла ли ссылка к моменту now.
func (l LinkRecord) Expired(now time.Time) bool {
	return now.UnixMilli() > l.ExpiresAt
}

type ClickEvent struct {
	Timestamp int64  `json:"timestamp"`
	Source    string `json:"source"`
	Geo       string `json:"geo"`
}

// Visitor то, что известно о переходе по короткой ссылке
type Visitor struct {
	Referrer string
	Geo      string
}
