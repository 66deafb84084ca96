package app

import (
	"encoding/binary"
	"regexp"

	"github.com/google/uuid"
)

const (
	base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	// CodeLength длина автоматически сгенерированного кода
	CodeLength = 6
)

var customCodePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,24}$`)

// ValidCode проверяет пользовательский код
func ValidCode(code string) bool {
	return customCodePattern.MatchString(code)
}

// GenerateID случайный код из CodeLength символов base36
func (s *Service) GenerateID() string {
	// для тестов
	if s.generateIDFunc != nil {
		return s.generateIDFunc()
	}
	u, err := uuid.NewRandom()
	if err != nil {
		return ""
	}
	return encodeBase36(binary.BigEndian.Uint64(u[8:]), CodeLength)
}

// encodeBase36 младшие width разрядов n в base36, с ведущими нулями
func encodeBase36(n uint64, width int) string {
	base := uint64(len(base36Alphabet))
	result := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		result[i] = base36Alphabet[n%base]
		n /= base
	}
	return string(result)
}
