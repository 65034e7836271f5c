package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/pflag"

	"html2doc/internal/app"
	"html2doc/internal/infra/logging"
	"html2doc/internal/tools"
)

const (
	serverName   = "pdf-creator"
	version      = "1.0.0"
	instructions = "Use create_pdf_from_html to turn a complete HTML document into an A4 PDF saved in the user's Downloads folder. The result is the absolute path of the file."
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		logging.Error("pdf-creator exited with error", "error", err)
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
	srv := app.NewServer(serverName, version, instructions, tools.PDFServerTool(svc))
	return app.Serve(context.Background(), srv, stdin, stdout)
}
