package chrome

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"html2doc/internal/config"
	"html2doc/internal/infra/logging"
)

// PrintOptions are the native print-to-PDF parameters. Sizes are in inches.
type PrintOptions struct {
	PaperWidth      float64
	PaperHeight     float64
	Margin          float64
	PrintBackground bool
}

// Session is one headless Chrome process with a single tab. It belongs to
// exactly one request and must be closed by it.
type Session struct {
	profileDir  string
	settleDelay time.Duration

	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// Launch starts Chrome with a throwaway profile and waits until the browser
// is reachable, so launch failures surface here rather than on first use.
func Launch(ctx context.Context, cfg config.Config) (*Session, error) {
	profileDir, err := createProfileDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("cannot create temp profile dir: %w", err)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocatorOptions(cfg, profileDir)...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	s := &Session{
		profileDir:    profileDir,
		settleDelay:   cfg.Browser.SettleDelay,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}

	if err := ctx.Err(); err != nil {
		s.Close()
		return nil, err
	}
	// The first Run allocates the browser; it must not carry a deadline or the
	// process dies with it.
	if err := chromedp.Run(browserCtx); err != nil {
		s.Close()
		return nil, fmt.Errorf("browser launch failed: %w", err)
	}
	logging.Debug("Chrome session started", "profile_dir", profileDir)
	return s, nil
}

func allocatorOptions(cfg config.Config, profileDir string) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserDataDir(profileDir),
		// Force software rendering and avoid Vulkan/ANGLE issues in minimal container environments.
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-gpu-compositing", true),
		chromedp.Flag("disable-features", "Vulkan,UseSkiaRenderer"),
		chromedp.Flag("use-gl", "swiftshader"),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("allow-file-access-from-files", true),
	)
	if cfg.Browser.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.Browser.ChromePath))
	}
	if cfg.Browser.ChromeNoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	return opts
}

// createProfileDir makes a unique user-data dir, under cfg.Browser.UserDataDir
// when set.
func createProfileDir(cfg config.Config) (string, error) {
	base := cfg.Browser.UserDataDir
	if base != "" {
		if err := os.MkdirAll(base, 0o700); err != nil {
			return "", err
		}
	}
	return os.MkdirTemp(base, "chromedata-*")
}

// PrintToPDF loads url and returns Chrome's paginated PDF export.
func (s *Session) PrintToPDF(ctx context.Context, url string, opts PrintOptions) ([]byte, error) {
	var buf []byte
	err := s.run(ctx,
		s.load(url),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(opts.PrintBackground).
				WithPaperWidth(opts.PaperWidth).
				WithPaperHeight(opts.PaperHeight).
				WithMarginTop(opts.Margin).
				WithMarginBottom(opts.Margin).
				WithMarginLeft(opts.Margin).
				WithMarginRight(opts.Margin).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("pdf export of %s: %w", url, err)
	}
	return buf, nil
}

// CaptureViewport loads url in a width x height viewport and returns a PNG of
// exactly that area.
func (s *Session) CaptureViewport(ctx context.Context, url string, width, height int) ([]byte, error) {
	var buf []byte
	err := s.run(ctx,
		chromedp.EmulateViewport(int64(width), int64(height)),
		s.load(url),
		chromedp.CaptureScreenshot(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("screenshot of %s: %w", url, err)
	}
	return buf, nil
}

// CaptureFullPage loads url at the given viewport width and returns a PNG of
// the whole scrollable page.
func (s *Session) CaptureFullPage(ctx context.Context, url string, width int) ([]byte, error) {
	var buf []byte
	err := s.run(ctx,
		chromedp.EmulateViewport(int64(width), int64(width*9/16)),
		s.load(url),
		// quality 100 selects PNG
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("full page screenshot of %s: %w", url, err)
	}
	return buf, nil
}

func (s *Session) load(url string) chromedp.Tasks {
	tasks := chromedp.Tasks{
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if s.settleDelay > 0 {
		tasks = append(tasks, chromedp.Sleep(s.settleDelay))
	}
	return tasks
}

// run executes actions on the session tab, aborting when ctx is done.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return errors.New("chrome session closed")
	}

	runCtx, cancel := context.WithCancel(s.browserCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err != nil && ctx.Err() != nil {
		return errors.Join(ctx.Err(), err)
	}
	return err
}

// Close shuts the browser down and removes its profile. It is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.browserCancel()
	s.allocCancel()
	if err := os.RemoveAll(s.profileDir); err != nil {
		logging.Warn("Failed to remove chrome profile dir", "dir", s.profileDir, "error", err)
	}
}

// IsSessionInterrupted reports whether err means the browser went away or
// the request was cut short, as opposed to a page-level failure.
func IsSessionInterrupted(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, s := range []string{"target closed", "session closed", "websocket", "connection reset", "broken pipe", "chrome failed to start"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
