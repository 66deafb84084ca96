package handlers

import (
	"net/http"
	"strings"
)

const (
	defaultTimezone = "UTC"
	unknownLanguage = "unknown"
)

// clientGeo строка "<часовой пояс> | <язык>" из заголовков клиента.
// Это не геолокация, значение хранится как есть.
func clientGeo(r *http.Request) string {
	if geo := strings.TrimSpace(r.Header.Get("X-Client-Geo")); geo != "" {
		return geo
	}

	tz := strings.TrimSpace(r.Header.Get("X-Timezone"))
	if tz == "" {
		tz = defaultTimezone
	}
	return tz + " | " + primaryLanguage(r.Header.Get("Accept-Language"))
}

// primaryLanguage первый тег из Accept-Language без веса
func primaryLanguage(header string) string {
	first, _, _ := strings.Cut(header, ",")
	tag, _, _ := strings.Cut(first, ";")
	tag = strings.TrimSpace(tag)
	if tag == "" || tag == "*" {
		return unknownLanguage
	}
	return tag
}
