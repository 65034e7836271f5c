package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Default base filenames when the caller omits one.
const (
	DefaultPDFName          = "document"
	DefaultPresentationName = "presentation"
)

// Limits bounds request sizes.
type Limits struct {
	MaxHTMLBytes int
	MaxSlides    int
}

// PDFRequest asks for one HTML document rendered to <Filename>.pdf.
type PDFRequest struct {
	HTML     string
	Filename string
}

// PresentationRequest asks for one slide per HTML text, in order, written to
// <Filename>.pptx.
type PresentationRequest struct {
	Slides   []string
	Filename string
}

// Validate checks the request and fills in the default filename.
func (r *PDFRequest) Validate(lim Limits) error {
	if err := CheckHTML(r.HTML, lim); err != nil {
		return err
	}
	name, err := CleanFilename(r.Filename, DefaultPDFName, ".pdf")
	if err != nil {
		return err
	}
	r.Filename = name
	return nil
}

// Validate checks every slide and fills in the default filename.
func (r *PresentationRequest) Validate(lim Limits) error {
	if len(r.Slides) == 0 {
		return ErrNoSlides
	}
	if lim.MaxSlides > 0 && len(r.Slides) > lim.MaxSlides {
		return fmt.Errorf("%w: %d given, at most %d allowed", ErrTooManySlides, len(r.Slides), lim.MaxSlides)
	}
	for i, s := range r.Slides {
		if err := CheckHTML(s, lim); err != nil {
			return fmt.Errorf("slide %d: %w", i+1, err)
		}
	}
	name, err := CleanFilename(r.Filename, DefaultPresentationName, ".pptx")
	if err != nil {
		return err
	}
	r.Filename = name
	return nil
}

// CheckHTML rejects empty, whitespace-only and oversized HTML.
func CheckHTML(html string, lim Limits) error {
	if strings.TrimSpace(html) == "" {
		return ErrEmptyHTML
	}
	if lim.MaxHTMLBytes > 0 && len(html) > lim.MaxHTMLBytes {
		return fmt.Errorf("%w (%d > %d bytes)", ErrHTMLTooLarge, len(html), lim.MaxHTMLBytes)
	}
	return nil
}

// CleanFilename returns the base name to use for an output file. Blank names
// become def, a trailing ext is dropped, and anything that would escape the
// output directory is rejected.
func CleanFilename(name, def, ext string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return def, nil
	}
	if strings.HasSuffix(strings.ToLower(name), ext) {
		name = name[:len(name)-len(ext)]
	}
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) ||
		filepath.Base(name) != name {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	return name, nil
}
