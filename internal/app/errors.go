package app

import "errors"

var (
	ErrInvalidURL         = errors.New("invalid URL")
	ErrInvalidCodeFormat  = errors.New("invalid shortcode format")
	ErrCodeCollision      = errors.New("shortcode collision")
	ErrCodeSpaceExhausted = errors.New("shortcode space exhausted")
	ErrShortcodeNotFound  = errors.New("shortcode not found")
	ErrLinkExpired        = errors.New("link expired")
)
