package staging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"html2doc/internal/infra/logging"
)

func TestNewWriteAndCleanup(t *testing.T) {
	d, err := New("mcp_pdf_")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(d.Path()), "mcp_pdf_"))

	p, err := d.WriteFile("content.html", []byte("<p>hi</p>"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(d.Path(), "content.html"), p)

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", string(data))

	d.Cleanup()
	_, err = os.Stat(d.Path())
	assert.True(t, os.IsNotExist(err), "staging dir should be gone")

	// second call is a no-op
	d.Cleanup()
}

func TestDirsAreUnique(t *testing.T) {
	a, err := New("mcp_ppt_")
	require.NoError(t, err)
	defer a.Cleanup()
	b, err := New("mcp_ppt_")
	require.NoError(t, err)
	defer b.Cleanup()

	assert.NotEqual(t, a.Path(), b.Path())
}

func TestURL(t *testing.T) {
	d := &Dir{path: "/tmp/mcp_pdf_1"}
	assert.Equal(t, "file:///tmp/mcp_pdf_1/slide_1.html", d.URL("slide_1.html"))

	d = &Dir{path: "/tmp/with space"}
	assert.Equal(t, "file:///tmp/with%20space/content.html", d.URL("content.html"))
}

func TestWriteFileIntoRemovedDirFails(t *testing.T) {
	d, err := New("mcp_pdf_")
	require.NoError(t, err)
	d.Cleanup()

	_, err = d.WriteFile("content.html", []byte("x"))
	assert.Error(t, err)
}

func TestCleanupLogs(t *testing.T) {
	var buf bytes.Buffer
	logging.SetLoggerForTest(zerolog.New(&buf))

	d, err := New("mcp_pdf_")
	require.NoError(t, err)
	d.Cleanup()

	assert.Contains(t, buf.String(), "Cleaned up staging directory")

	var nilDir *Dir
	assert.NotPanics(t, nilDir.Cleanup)
}
