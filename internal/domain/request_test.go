package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLimits = Limits{MaxHTMLBytes: 64, MaxSlides: 3}

func TestPDFRequestValidate(t *testing.T) {
	tests := []struct {
		name     string
		req      PDFRequest
		wantErr  error
		wantName string
	}{
		{name: "default filename", req: PDFRequest{HTML: "<p>x</p>"}, wantName: "document"},
		{name: "custom filename", req: PDFRequest{HTML: "<p>x</p>", Filename: "report"}, wantName: "report"},
		{name: "extension stripped", req: PDFRequest{HTML: "<p>x</p>", Filename: "report.PDF"}, wantName: "report"},
		{name: "spaces kept", req: PDFRequest{HTML: "<p>x</p>", Filename: " q3 summary "}, wantName: "q3 summary"},
		{name: "empty html", req: PDFRequest{HTML: ""}, wantErr: ErrEmptyHTML},
		{name: "whitespace html", req: PDFRequest{HTML: " \n\t "}, wantErr: ErrEmptyHTML},
		{name: "oversized html", req: PDFRequest{HTML: strings.Repeat("x", 65)}, wantErr: ErrHTMLTooLarge},
		{name: "path traversal", req: PDFRequest{HTML: "<p>x</p>", Filename: "../etc/passwd"}, wantErr: ErrInvalidFilename},
		{name: "backslash", req: PDFRequest{HTML: "<p>x</p>", Filename: `a\b`}, wantErr: ErrInvalidFilename},
		{name: "dot dot", req: PDFRequest{HTML: "<p>x</p>", Filename: ".."}, wantErr: ErrInvalidFilename},
		{name: "only extension", req: PDFRequest{HTML: "<p>x</p>", Filename: ".pdf"}, wantErr: ErrInvalidFilename},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.req
			err := req.Validate(testLimits)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.True(t, IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantName, req.Filename)
		})
	}
}

func TestPresentationRequestValidate(t *testing.T) {
	req := PresentationRequest{Slides: []string{"<h1>1</h1>", "<h1>2</h1>"}}
	require.NoError(t, req.Validate(testLimits))
	assert.Equal(t, "presentation", req.Filename)
	assert.Equal(t, []string{"<h1>1</h1>", "<h1>2</h1>"}, req.Slides)

	req = PresentationRequest{Slides: []string{"a", "b"}, Filename: "deck.pptx"}
	require.NoError(t, req.Validate(testLimits))
	assert.Equal(t, "deck", req.Filename)
}

func TestPresentationRequestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     PresentationRequest
		wantErr error
		msg     string
	}{
		{name: "nil slides", req: PresentationRequest{}, wantErr: ErrNoSlides},
		{name: "empty slides", req: PresentationRequest{Slides: []string{}}, wantErr: ErrNoSlides},
		{name: "too many", req: PresentationRequest{Slides: []string{"a", "b", "c", "d"}}, wantErr: ErrTooManySlides},
		{name: "blank slide", req: PresentationRequest{Slides: []string{"a", "  "}}, wantErr: ErrEmptyHTML, msg: "slide 2"},
		{name: "bad filename", req: PresentationRequest{Slides: []string{"a"}, Filename: "x/y"}, wantErr: ErrInvalidFilename},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.req
			err := req.Validate(testLimits)
			require.ErrorIs(t, err, tc.wantErr)
			if tc.msg != "" {
				assert.Contains(t, err.Error(), tc.msg)
			}
		})
	}
}

func TestZeroLimitsDisableChecks(t *testing.T) {
	req := PresentationRequest{Slides: []string{strings.Repeat("x", 1000), "b", "c", "d"}}
	assert.NoError(t, req.Validate(Limits{}))
}

func TestValidationErrorsAreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, err := range validationErrors {
		require.NotEmpty(t, err.Error())
		assert.False(t, seen[err.Error()], "duplicate message %q", err.Error())
		seen[err.Error()] = true
	}
	assert.False(t, IsValidation(errors.New("target closed")))
	assert.False(t, IsValidation(nil))
}
