package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"html2doc/internal/config"
	"html2doc/internal/infra/logging"
	"html2doc/internal/output"
	"html2doc/internal/render"
	"html2doc/internal/tools"
)

// Flags are the command-line options shared by both binaries.
type Flags struct {
	ConfigPath string
	LogLevel   string
	OutputDir  string
}

// ParseFlags parses args (without the program name).
func ParseFlags(name string, args []string) (Flags, error) {
	var f Flags
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "path to YAML config (default $CONFIG_PATH or ./config.yaml)")
	fs.StringVar(&f.LogLevel, "log-level", "", "override logger.level (debug, info, warn, error)")
	fs.StringVarP(&f.OutputDir, "output-dir", "o", "", "directory for generated files (default ~/Downloads)")
	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}
	return f, nil
}

// LoadConfig resolves the configuration and applies flag overrides. Like the
// loaders it wraps, it panics on an invalid file.
func LoadConfig(f Flags) config.Config {
	var cfg config.Config
	if f.ConfigPath != "" {
		cfg = config.LoadFrom(f.ConfigPath)
	} else {
		cfg = config.Load()
	}
	if f.LogLevel != "" {
		cfg.Logger.Level = f.LogLevel
	}
	if f.OutputDir != "" {
		cfg.Output.Dir = f.OutputDir
	}
	return cfg
}

// InitLogging configures the process logger from cfg.
func InitLogging(cfg config.Config) error {
	if err := ensureLogDir(cfg.Logger.File); err != nil {
		return err
	}
	logging.InitLogger(
		cfg.Logger.File,
		cfg.Logger.MaxSizeMB,
		cfg.Logger.MaxBackups,
		cfg.Logger.MaxAgeDays,
		cfg.Logger.Compress,
		cfg.Logger.Level,
	)
	logging.SetLogLevel(cfg.Logger.Level)
	return nil
}

// NewService wires the Chrome renderer and the output publisher.
func NewService(cfg config.Config) (*tools.Service, error) {
	pub, err := output.NewPublisher(cfg.Output.Dir)
	if err != nil {
		return nil, err
	}
	logging.Info("Output directory resolved", "dir", pub.Dir(), "pdf_strategy", cfg.PDF.Strategy)
	return tools.NewService(cfg, render.NewDriver(cfg, nil), pub), nil
}

func ensureLogDir(file string) error {
	if file == "" {
		return nil
	}
	dir := filepath.Dir(file)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create log directory %s: %w", dir, err)
	}
	return nil
}
