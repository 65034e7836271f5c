package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when neither --config nor CONFIG_PATH is given.
const DefaultPath = "config.yaml"

// PDF export strategies.
const (
	StrategyPrint  = "print"
	StrategyRaster = "raster"
)

// Config is the full runtime configuration shared by both tool servers.
type Config struct {
	Logger struct {
		File       string `yaml:"file"`
		Level      string `yaml:"level"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
		Compress   bool   `yaml:"compress"`
	} `yaml:"logger"`

	Output struct {
		// Dir overrides the default ~/Downloads target.
		Dir string `yaml:"dir"`
	} `yaml:"output"`

	Browser struct {
		ChromePath      string        `yaml:"chrome_path"`
		ChromeNoSandbox bool          `yaml:"chrome_no_sandbox"`
		UserDataDir     string        `yaml:"user_data_dir"`
		TimeoutSecs     int           `yaml:"timeout_secs"`
		SettleDelay     time.Duration `yaml:"settle_delay"`
	} `yaml:"browser"`

	PDF struct {
		Strategy            string  `yaml:"strategy"`
		RasterDPI           float64 `yaml:"raster_dpi"`
		RasterViewportWidth int     `yaml:"raster_viewport_width"`
		Verify              bool    `yaml:"verify"`
	} `yaml:"pdf"`

	Presentation struct {
		ViewportWidth  int `yaml:"viewport_width"`
		ViewportHeight int `yaml:"viewport_height"`
	} `yaml:"presentation"`

	Limits struct {
		MaxHTMLBytes int `yaml:"max_html_bytes"`
		MaxSlides    int `yaml:"max_slides"`
	} `yaml:"limits"`
}

// Timeout is the per-request browser budget.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.Browser.TimeoutSecs) * time.Second
}

// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	cfg.Logger.Level = "info"
	cfg.Logger.MaxSizeMB = 10
	cfg.Logger.MaxBackups = 3
	cfg.Logger.MaxAgeDays = 7
	cfg.Browser.TimeoutSecs = 60
	cfg.Browser.SettleDelay = 200 * time.Millisecond
	cfg.PDF.Strategy = StrategyPrint
	cfg.PDF.RasterDPI = 100
	cfg.PDF.RasterViewportWidth = 1280
	cfg.PDF.Verify = true
	cfg.Presentation.ViewportWidth = 1920
	cfg.Presentation.ViewportHeight = 1080
	cfg.Limits.MaxHTMLBytes = 10 << 20
	cfg.Limits.MaxSlides = 200
	return cfg
}

// Load reads .env, then the file named by CONFIG_PATH (or DefaultPath when it
// exists), then applies env overrides. Invalid values panic.
func Load() Config {
	// A missing .env is normal.
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		if _, err := os.Stat(DefaultPath); err != nil {
			cfg := Default()
			applyEnv(&cfg)
			mustValidate(cfg)
			return cfg
		}
		path = DefaultPath
	}
	return LoadFrom(path)
}

// LoadFrom reads the YAML file at path over the defaults and applies env
// overrides. It panics if the file cannot be read or the result is invalid.
func LoadFrom(path string) Config {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			panic(fmt.Sprintf("config file %s not found", path))
		}
		panic(fmt.Sprintf("cannot read config %s: %v", path, err))
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		panic(fmt.Sprintf("cannot parse config %s: %v", path, err))
	}
	applyEnv(&cfg)
	mustValidate(cfg)
	return cfg
}

func applyEnv(cfg *Config) {
	// Allow common container env var to override chrome_path.
	if cfg.Browser.ChromePath == "" {
		if v := os.Getenv("CHROME_BIN"); v != "" {
			cfg.Browser.ChromePath = v
		}
	}
	if v := os.Getenv("HTML2DOC_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
}

func mustValidate(cfg Config) {
	if err := cfg.Validate(); err != nil {
		panic(err.Error())
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Browser.TimeoutSecs <= 0:
		return errors.New("browser.timeout_secs must be positive")
	case c.Browser.SettleDelay < 0:
		return errors.New("browser.settle_delay must not be negative")
	case c.PDF.Strategy != StrategyPrint && c.PDF.Strategy != StrategyRaster:
		return fmt.Errorf("pdf.strategy must be %q or %q", StrategyPrint, StrategyRaster)
	case c.PDF.RasterDPI <= 0:
		return errors.New("pdf.raster_dpi must be positive")
	case c.PDF.RasterViewportWidth <= 0:
		return errors.New("pdf.raster_viewport_width must be positive")
	case c.Presentation.ViewportWidth <= 0 || c.Presentation.ViewportHeight <= 0:
		return errors.New("presentation viewport must be positive")
	case c.Limits.MaxHTMLBytes <= 0:
		return errors.New("limits.max_html_bytes must be positive")
	case c.Limits.MaxSlides <= 0:
		return errors.New("limits.max_slides must be positive")
	}
	return nil
}
