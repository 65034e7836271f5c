// Package tools exposes the document services as MCP tools.
package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/xid"

	"html2doc/internal/domain"
	"html2doc/internal/infra/logging"
)

// Tool names.
const (
	CreatePDFName            = "create_pdf_from_html"
	AssemblePresentationName = "assemble_presentation"
)

// Caller-visible error prefixes.
const (
	pdfErrorPrefix          = "Error creating PDF: "
	presentationErrorPrefix = "Error assembling presentation: "
)

// CreatePDFTool describes create_pdf_from_html.
func CreatePDFTool() mcp.Tool {
	return mcp.NewTool(CreatePDFName,
		mcp.WithDescription("Render an HTML document to a PDF file (A4, 20mm margins) in the Downloads folder and return its absolute path."),
		mcp.WithString("html_content",
			mcp.Required(),
			mcp.Description("Complete HTML document to render"),
		),
		mcp.WithString("filename",
			mcp.Description("Output file name without extension (default: document)"),
			mcp.DefaultString(domain.DefaultPDFName),
		),
	)
}

// AssemblePresentationTool describes assemble_presentation.
func AssemblePresentationTool() mcp.Tool {
	return mcp.NewTool(AssemblePresentationName,
		mcp.WithDescription("Render each HTML slide to a 16:9 image and assemble them, in order, into a .pptx file in the Downloads folder. Returns the absolute path."),
		mcp.WithArray("slides_html",
			mcp.Required(),
			mcp.Description("One complete HTML document per slide, in presentation order"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("filename",
			mcp.Description("Output file name without extension (default: presentation)"),
			mcp.DefaultString(domain.DefaultPresentationName),
		),
	)
}

// PDFServerTool pairs the create_pdf_from_html schema with its handler.
func PDFServerTool(svc *Service) server.ServerTool {
	return server.ServerTool{Tool: CreatePDFTool(), Handler: svc.HandleCreatePDF}
}

// PresentationServerTool pairs the assemble_presentation schema with its handler.
func PresentationServerTool(svc *Service) server.ServerTool {
	return server.ServerTool{Tool: AssemblePresentationTool(), Handler: svc.HandleAssemblePresentation}
}

// HandleCreatePDF serves create_pdf_from_html. Failures are reported as
// error results, never as protocol errors.
func (svc *Service) HandleCreatePDF(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	callID := xid.New().String()
	start := time.Now()
	logging.Info("Tool call received", "call_id", callID, "tool", CreatePDFName)

	path, err := svc.createPDF(ctx, req.GetArguments())
	if err != nil {
		logFailure(callID, CreatePDFName, err)
		return mcp.NewToolResultError(pdfErrorPrefix + describe(err)), nil
	}

	logging.Info("PDF generated", "call_id", callID, "path", path, "duration_ms", time.Since(start).Milliseconds())
	return mcp.NewToolResultText(path), nil
}

func (svc *Service) createPDF(ctx context.Context, args map[string]any) (string, error) {
	html, err := stringArg(args, "html_content")
	if err != nil {
		return "", err
	}
	if html == "" {
		return "", domain.ErrEmptyHTML
	}
	name, err := stringArg(args, "filename")
	if err != nil {
		return "", err
	}
	return svc.CreatePDF(ctx, domain.PDFRequest{HTML: html, Filename: name})
}

// HandleAssemblePresentation serves assemble_presentation.
func (svc *Service) HandleAssemblePresentation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	callID := xid.New().String()
	start := time.Now()
	logging.Info("Tool call received", "call_id", callID, "tool", AssemblePresentationName)

	path, err := svc.assemblePresentation(ctx, req.GetArguments())
	if err != nil {
		logFailure(callID, AssemblePresentationName, err)
		return mcp.NewToolResultError(presentationErrorPrefix + describe(err)), nil
	}

	logging.Info("Presentation generated", "call_id", callID, "path", path, "duration_ms", time.Since(start).Milliseconds())
	return mcp.NewToolResultText(path), nil
}

func (svc *Service) assemblePresentation(ctx context.Context, args map[string]any) (string, error) {
	slides, err := slidesArg(args, "slides_html")
	if err != nil {
		return "", err
	}
	name, err := stringArg(args, "filename")
	if err != nil {
		return "", err
	}
	return svc.AssemblePresentation(ctx, domain.PresentationRequest{Slides: slides, Filename: name})
}

// stringArg returns args[key] as a string. Absent and null read as "".
func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", domain.ErrInvalidArgument, key, v)
	}
	return s, nil
}

// slidesArg returns args[key] as a list of strings.
func slidesArg(args map[string]any, key string) ([]string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, domain.ErrNoSlides
	}
	var items []any
	switch list := v.(type) {
	case []any:
		items = list
	case []string:
		return list, nil
	default:
		return nil, fmt.Errorf("%w: %s must be a list of strings, got %T", domain.ErrInvalidArgument, key, v)
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("slide %d: %w", i+1, domain.ErrSlideNotText)
		}
		out = append(out, s)
	}
	return out, nil
}
