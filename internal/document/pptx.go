package document

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"text/template"
	"time"
)

// Slide geometry in EMU (914400 per inch): 10in x 5.625in, 16:9.
const (
	EMUPerInch  = 914400
	SlideWidth  = 10 * EMUPerInch
	SlideHeight = 5625 * EMUPerInch / 1000
)

// Presentation accumulates full-bleed image slides in insertion order.
type Presentation struct {
	Title   string
	Created time.Time

	images [][]byte
}

// NewPresentation returns an empty 16:9 deck.
func NewPresentation() *Presentation {
	return &Presentation{Created: time.Now().UTC()}
}

// AddImageSlide appends a slide showing img stretched to the full slide.
// Only PNG is accepted since that is what the renderer captures.
func (p *Presentation) AddImageSlide(img []byte) error {
	if _, err := png.DecodeConfig(bytes.NewReader(img)); err != nil {
		return fmt.Errorf("slide %d: not a png image: %w", len(p.images)+1, err)
	}
	p.images = append(p.images, img)
	return nil
}

// SlideCount returns the number of slides added so far.
func (p *Presentation) SlideCount() int { return len(p.images) }

// WriteTo writes the .pptx package to w.
func (p *Presentation) WriteTo(w io.Writer) (int64, error) {
	if len(p.images) == 0 {
		return 0, errors.New("presentation has no slides")
	}

	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)

	data := p.partData()
	for _, part := range staticParts {
		if err := p.writeTemplate(zw, part.name, part.tmpl, data); err != nil {
			return cw.n, err
		}
	}
	for i, img := range p.images {
		n := i + 1
		slide := slideData{N: n, Width: SlideWidth, Height: SlideHeight}
		if err := p.writeTemplate(zw, fmt.Sprintf("ppt/slides/slide%d.xml", n), slideTmpl, slide); err != nil {
			return cw.n, err
		}
		if err := p.writeTemplate(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), slideRelsTmpl, slide); err != nil {
			return cw.n, err
		}
		if err := p.writeRaw(zw, fmt.Sprintf("ppt/media/image%d.png", n), img, zip.Store); err != nil {
			return cw.n, err
		}
	}

	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("cannot finish pptx archive: %w", err)
	}
	return cw.n, nil
}

// Bytes renders the package into memory.
func (p *Presentation) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type slideData struct {
	N      int
	Width  int
	Height int
}

type partData struct {
	Title    string
	Created  string
	Width    int
	Height   int
	Slides   []slideData
	NumSlide int
}

func (p *Presentation) partData() partData {
	d := partData{
		Title:    p.Title,
		Created:  p.Created.Format(time.RFC3339),
		Width:    SlideWidth,
		Height:   SlideHeight,
		NumSlide: len(p.images),
	}
	for i := range p.images {
		d.Slides = append(d.Slides, slideData{N: i + 1, Width: SlideWidth, Height: SlideHeight})
	}
	return d
}

func (p *Presentation) writeTemplate(zw *zip.Writer, name string, t *template.Template, data any) error {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("cannot render %s: %w", name, err)
	}
	return p.writeRaw(zw, name, buf.Bytes(), zip.Deflate)
}

func (p *Presentation) writeRaw(zw *zip.Writer, name string, data []byte, method uint16) error {
	hdr := &zip.FileHeader{Name: name, Method: method, Modified: p.Created}
	f, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("cannot add %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("cannot write %s: %w", name, err)
	}
	return nil
}

// ImageSize reports the pixel dimensions of a PNG.
func ImageSize(img []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
