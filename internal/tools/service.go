package tools

import (
	"context"
	"errors"
	"fmt"

	"html2doc/internal/config"
	"html2doc/internal/document"
	"html2doc/internal/domain"
	"html2doc/internal/infra/chrome"
	"html2doc/internal/infra/logging"
)

// Renderer turns HTML into PDF bytes or slide screenshots.
type Renderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
	RenderSlides(ctx context.Context, slides []string) ([][]byte, error)
}

// Publisher places a finished document in the output directory.
type Publisher interface {
	Publish(base, ext string, data []byte) (string, error)
}

var (
	errPublish = errors.New("publish failed")
	errEncode  = errors.New("encode failed")
)

// Service bundles configuration and dependencies shared by both tools.
type Service struct {
	Config    config.Config
	Renderer  Renderer
	Publisher Publisher
}

// NewService creates a Service.
func NewService(cfg config.Config, r Renderer, p Publisher) *Service {
	return &Service{Config: cfg, Renderer: r, Publisher: p}
}

func (svc *Service) limits() domain.Limits {
	return domain.Limits{
		MaxHTMLBytes: svc.Config.Limits.MaxHTMLBytes,
		MaxSlides:    svc.Config.Limits.MaxSlides,
	}
}

// CreatePDF renders req.HTML and publishes <Filename>.pdf.
func (svc *Service) CreatePDF(ctx context.Context, req domain.PDFRequest) (string, error) {
	if err := req.Validate(svc.limits()); err != nil {
		return "", err
	}

	pdf, err := svc.Renderer.RenderPDF(ctx, req.HTML)
	if err != nil {
		return "", err
	}
	if svc.Config.PDF.Verify {
		if err := document.VerifyPDF(pdf); err != nil {
			return "", fmt.Errorf("%w: %w", errEncode, err)
		}
	}

	path, err := svc.Publisher.Publish(req.Filename, ".pdf", pdf)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errPublish, err)
	}
	return path, nil
}

// AssemblePresentation renders every slide and publishes <Filename>.pptx.
func (svc *Service) AssemblePresentation(ctx context.Context, req domain.PresentationRequest) (string, error) {
	if err := req.Validate(svc.limits()); err != nil {
		return "", err
	}

	images, err := svc.Renderer.RenderSlides(ctx, req.Slides)
	if err != nil {
		return "", err
	}

	deck := document.NewPresentation()
	deck.Title = req.Filename
	for _, img := range images {
		if err := deck.AddImageSlide(img); err != nil {
			return "", fmt.Errorf("%w: %w", errEncode, err)
		}
	}
	data, err := deck.Bytes()
	if err != nil {
		return "", fmt.Errorf("%w: %w", errEncode, err)
	}
	logging.Info("Presentation assembled", "slides", deck.SlideCount(), "bytes", len(data))

	path, err := svc.Publisher.Publish(req.Filename, ".pptx", data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errPublish, err)
	}
	return path, nil
}

// describe maps err to the text shown to the caller. Validation messages are
// passed through; everything else collapses to a category.
func describe(err error) string {
	switch {
	case domain.IsValidation(err):
		return err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return "rendering timed out"
	case errors.Is(err, errPublish):
		return "could not write output file"
	case chrome.IsSessionInterrupted(err):
		return "browser session interrupted"
	default:
		return "rendering failed"
	}
}

// logFailure logs err at the level its category deserves.
func logFailure(callID, tool string, err error) {
	switch {
	case domain.IsValidation(err):
		logging.Warn("Rejected tool call", "call_id", callID, "tool", tool, "error", err)
	case errors.Is(err, context.DeadlineExceeded):
		logging.Error("Rendering timeout", "call_id", callID, "tool", tool, "error", err)
	case chrome.IsSessionInterrupted(err):
		logging.Error("Chrome session interrupted", "call_id", callID, "tool", tool, "error", err)
	default:
		logging.Error("Tool call failed", "call_id", callID, "tool", tool, "error", err)
	}
}
