package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"html2doc/internal/app"
	"html2doc/internal/infra/logging"
	"html2doc/internal/tools"
)

const (
	serverName = "presentation-creator"
	version    = "1.0.0"
)

const instructionsFmt = `Use assemble_presentation with one complete HTML document per slide, in order. Design every slide for a %dx%d viewport; each is captured as an image and placed full-bleed on its own 16:9 slide.
Use create_pdf_from_html for a single HTML document that should become an A4 PDF.
Both tools save into the user's Downloads folder and return the absolute path.`

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		logging.Error("presentation-creator exited with error", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	flags, err := app.ParseFlags(serverName, args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	cfg := app.LoadConfig(flags)
	if err := app.InitLogging(cfg); err != nil {
		return err
	}

	svc, err := app.NewService(cfg)
	if err != nil {
		return err
	}
	instructions := fmt.Sprintf(instructionsFmt, cfg.Presentation.ViewportWidth, cfg.Presentation.ViewportHeight)
	srv := app.NewServer(serverName, version, instructions,
		tools.PresentationServerTool(svc),
		tools.PDFServerTool(svc),
	)
	return app.Serve(context.Background(), srv, stdin, stdout)
}
