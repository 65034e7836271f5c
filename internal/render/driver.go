// Package render loads staged HTML in headless Chrome and captures PDFs or
// slide screenshots.
package render

import (
	"context"
	"fmt"
	"strings"

	"html2doc/internal/config"
	"html2doc/internal/document"
	"html2doc/internal/domain"
	"html2doc/internal/infra/chrome"
	"html2doc/internal/infra/logging"
	"html2doc/internal/staging"
)

// A4 with 20mm margins, backgrounds printed.
var A4 = chrome.PrintOptions{
	PaperWidth:      8.27,
	PaperHeight:     11.69,
	Margin:          20 / 25.4,
	PrintBackground: true,
}

// Session is the slice of a browser session the driver needs.
type Session interface {
	PrintToPDF(ctx context.Context, url string, opts chrome.PrintOptions) ([]byte, error)
	CaptureViewport(ctx context.Context, url string, width, height int) ([]byte, error)
	CaptureFullPage(ctx context.Context, url string, width int) ([]byte, error)
	Close()
}

// Launcher opens a fresh browser session.
type Launcher func(ctx context.Context) (Session, error)

// ChromeLauncher launches headless Chrome configured by cfg.
func ChromeLauncher(cfg config.Config) Launcher {
	return func(ctx context.Context) (Session, error) {
		s, err := chrome.Launch(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// Driver renders HTML through one browser session per call.
type Driver struct {
	cfg    config.Config
	launch Launcher
}

// NewDriver returns a Driver. A nil launch uses Chrome.
func NewDriver(cfg config.Config, launch Launcher) *Driver {
	if launch == nil {
		launch = ChromeLauncher(cfg)
	}
	return &Driver{cfg: cfg, launch: launch}
}

// RenderPDF renders html to PDF bytes using the configured strategy.
func (d *Driver) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	if strings.TrimSpace(html) == "" {
		return nil, domain.ErrEmptyHTML
	}

	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout())
	defer cancel()

	dir, err := staging.New("mcp_pdf_")
	if err != nil {
		return nil, err
	}
	defer dir.Cleanup()

	htmlPath, err := dir.WriteFile("content.html", []byte(html))
	if err != nil {
		return nil, err
	}
	logging.Info("Saved HTML to temporary file", "path", htmlPath)

	sess, err := d.launch(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	url := dir.URL("content.html")
	if d.cfg.PDF.Strategy == config.StrategyRaster {
		return d.rasterPDF(ctx, sess, dir, url)
	}
	return sess.PrintToPDF(ctx, url, A4)
}

func (d *Driver) rasterPDF(ctx context.Context, sess Session, dir *staging.Dir, url string) ([]byte, error) {
	shot, err := sess.CaptureFullPage(ctx, url, d.cfg.PDF.RasterViewportWidth)
	if err != nil {
		return nil, err
	}
	imgPath, err := dir.WriteFile("screenshot.png", shot)
	if err != nil {
		return nil, err
	}
	logging.Info("Screenshot saved to temporary file", "path", imgPath)

	pdf, err := document.PDFFromImage(shot, d.cfg.PDF.RasterDPI)
	if err != nil {
		return nil, fmt.Errorf("converting screenshot to pdf: %w", err)
	}
	return pdf, nil
}

// RenderSlides captures one viewport-sized PNG per slide, in input order.
// Slides are rendered one after another in a single session.
func (d *Driver) RenderSlides(ctx context.Context, slides []string) ([][]byte, error) {
	if len(slides) == 0 {
		return nil, domain.ErrNoSlides
	}
	for i, s := range slides {
		if strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("slide %d: %w", i+1, domain.ErrEmptyHTML)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout())
	defer cancel()

	dir, err := staging.New("mcp_ppt_")
	if err != nil {
		return nil, err
	}
	defer dir.Cleanup()
	logging.Info("Created temporary directory", "dir", dir.Path())

	sess, err := d.launch(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	w, h := d.cfg.Presentation.ViewportWidth, d.cfg.Presentation.ViewportHeight
	images := make([][]byte, 0, len(slides))
	for i, html := range slides {
		n := i + 1
		htmlName := fmt.Sprintf("slide_%d.html", n)
		if _, err := dir.WriteFile(htmlName, []byte(html)); err != nil {
			return nil, err
		}

		shot, err := sess.CaptureViewport(ctx, dir.URL(htmlName), w, h)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", n, err)
		}
		imgPath, err := dir.WriteFile(fmt.Sprintf("slide_%d.png", n), shot)
		if err != nil {
			return nil, err
		}
		if iw, ih, err := document.ImageSize(shot); err == nil {
			logging.Info("Generated screenshot for slide", "slide", n, "path", imgPath, "width", iw, "height", ih)
		} else {
			logging.Warn("Slide screenshot is not a readable image", "slide", n, "error", err)
		}
		images = append(images, shot)
	}
	return images, nil
}
