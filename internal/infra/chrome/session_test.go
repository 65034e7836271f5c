package chrome

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chromedp/chromedp"

	"html2doc/internal/config"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Browser.UserDataDir = filepath.Join(os.TempDir(), "html2doc-chrome-tests")
	cfg.Browser.TimeoutSecs = 1
	return cfg
}

func TestCreateProfileDir_DefaultAndCustomBase(t *testing.T) {
	cfg := testConfig()
	cfg.Browser.UserDataDir = ""
	dir1, err := createProfileDir(cfg)
	if err != nil {
		t.Fatalf("createProfileDir default base failed: %v", err)
	}
	defer os.RemoveAll(dir1)
	if _, err := os.Stat(dir1); err != nil {
		t.Fatalf("expected created dir to exist: %v", err)
	}

	customBase := filepath.Join(t.TempDir(), "nested")
	cfg.Browser.UserDataDir = customBase
	dir2, err := createProfileDir(cfg)
	if err != nil {
		t.Fatalf("createProfileDir custom base failed: %v", err)
	}
	if filepath.Dir(dir2) != customBase {
		t.Fatalf("expected profile dir under custom base %q, got %q", customBase, dir2)
	}
}

func TestCreateProfileDir_InvalidBase(t *testing.T) {
	var cfg config.Config
	cfg.Browser.UserDataDir = "/dev/null/x"
	if _, err := createProfileDir(cfg); err == nil {
		t.Fatalf("expected error for invalid base dir")
	}
}

func TestAllocatorOptions_OptionalFlags(t *testing.T) {
	cfg := testConfig()
	base := len(allocatorOptions(cfg, "/tmp/p"))

	cfg.Browser.ChromePath = "/usr/bin/chromium"
	cfg.Browser.ChromeNoSandbox = true
	if got := len(allocatorOptions(cfg, "/tmp/p")); got != base+2 {
		t.Fatalf("expected exec path and no-sandbox options, got %d want %d", got, base+2)
	}
	if base <= len(chromedp.DefaultExecAllocatorOptions) {
		t.Fatalf("expected extra flags on top of chromedp defaults")
	}
}

func TestLaunch_FailsWithBogusBinaryAndCleansProfile(t *testing.T) {
	cfg := testConfig()
	cfg.Browser.UserDataDir = t.TempDir()
	cfg.Browser.ChromePath = "/bin/true"

	s, err := Launch(context.Background(), cfg)
	if err == nil {
		s.Close()
		t.Fatalf("expected launch failure with a non-browser binary")
	}

	entries, rerr := os.ReadDir(cfg.Browser.UserDataDir)
	if rerr != nil {
		t.Fatalf("read profile base: %v", rerr)
	}
	if len(entries) != 0 {
		t.Fatalf("expected profile dir removed after failed launch, found %d entries", len(entries))
	}
}

func TestLaunch_CanceledContext(t *testing.T) {
	cfg := testConfig()
	cfg.Browser.UserDataDir = t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Launch(ctx, cfg); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}

func TestSessionCloseIsIdempotentAndBlocksUse(t *testing.T) {
	profile := t.TempDir()
	s := &Session{
		profileDir:    profile,
		allocCancel:   func() {},
		browserCtx:    context.Background(),
		browserCancel: func() {},
	}
	s.Close()
	s.Close()

	if _, err := os.Stat(profile); !os.IsNotExist(err) {
		t.Fatalf("expected profile dir removed, stat err=%v", err)
	}
	if _, err := s.PrintToPDF(context.Background(), "file:///x.html", PrintOptions{}); err == nil {
		t.Fatalf("expected error on closed session")
	}
	if _, err := s.CaptureViewport(context.Background(), "file:///x.html", 10, 10); err == nil {
		t.Fatalf("expected error on closed session")
	}
}

func TestIsSessionInterrupted(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "context canceled", err: context.Canceled, want: true},
		{name: "deadline", err: context.DeadlineExceeded, want: true},
		{name: "wrapped deadline", err: errors.Join(errors.New("screenshot"), context.DeadlineExceeded), want: true},
		{name: "target closed", err: errors.New("target closed"), want: true},
		{name: "launch", err: errors.New("chrome failed to start:\n"), want: true},
		{name: "normal error", err: errors.New("page load error net::ERR_FILE_NOT_FOUND"), want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsSessionInterrupted(tc.err); got != tc.want {
				t.Fatalf("IsSessionInterrupted(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
