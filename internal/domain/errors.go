package domain

import "errors"

// Validation errors. All of them are detected before any side effect.
var (
	ErrEmptyHTML       = errors.New("html_content must be a non-empty string")
	ErrHTMLTooLarge    = errors.New("html content exceeds the configured size limit")
	ErrNoSlides        = errors.New("no slide HTML data provided")
	ErrSlideNotText    = errors.New("all items in slides_html must be strings")
	ErrTooManySlides   = errors.New("too many slides")
	ErrInvalidFilename = errors.New("filename must be a plain base name")
	ErrInvalidArgument = errors.New("invalid argument")
)

var validationErrors = []error{
	ErrEmptyHTML,
	ErrHTMLTooLarge,
	ErrNoSlides,
	ErrSlideNotText,
	ErrTooManySlides,
	ErrInvalidFilename,
	ErrInvalidArgument,
}

// IsValidation reports whether err is (or wraps) a request validation error.
func IsValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
