package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Page geometry in PDF user space (points, origin bottom-left).
const (
	PageWidth    = 595.0
	PageHeight   = 842.0
	PageMargin   = 40.0
	ContentWidth = PageWidth - 2*PageMargin
)

// Font is one of the two faces the report uses.
type Font int

const (
	FontRegular Font = iota
	FontBold
)

// Image is an image embedded in a canvas, with its pixel size.
type Image struct {
	Name   string
	Width  float64
	Height float64
}

// Canvas is the drawing surface the layout passes run against.
// Coordinates are PDF user space: y grows upwards, rectangles and images are
// anchored at their bottom-left corner and text at its baseline.
type Canvas interface {
	AddPage()
	DrawRect(x, y, w, h float64)
	DrawText(text string, x, y float64, font Font, size float64)
	DrawImage(img *Image, x, y, w, h float64)
	TextWidth(text string, font Font, size float64) float64
	EmbedImage(name string, data []byte) (*Image, error)
}

const (
	fontFamily    = "Times"
	borderWidth   = 0.5
	documentTitle = "Projector Preventive Maintenance Report"
)

// pdfCanvas draws onto a gofpdf document. gofpdf measures from the top edge, so
// every y is flipped on the way in.
type pdfCanvas struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func newPDFCanvas(creator string, created time.Time) *pdfCanvas {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: PageWidth, Ht: PageHeight},
	})
	pdf.SetMargins(PageMargin, PageMargin, PageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetLineWidth(borderWidth)
	pdf.SetTitle(documentTitle, true)
	pdf.SetCreator(creator, true)
	pdf.SetCreationDate(created)
	pdf.SetFont(fontFamily, "", 8)

	return &pdfCanvas{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (c *pdfCanvas) AddPage() {
	c.pdf.AddPage()
	c.pdf.SetLineWidth(borderWidth)
}

func (c *pdfCanvas) DrawRect(x, y, w, h float64) {
	c.pdf.Rect(x, PageHeight-y-h, w, h, "D")
}

func (c *pdfCanvas) DrawText(text string, x, y float64, font Font, size float64) {
	if text == "" {
		return
	}
	c.setFont(font, size)
	c.pdf.Text(x, PageHeight-y, c.tr(text))
}

func (c *pdfCanvas) DrawImage(img *Image, x, y, w, h float64) {
	if img == nil {
		return
	}
	c.pdf.ImageOptions(img.Name, x, PageHeight-y-h, w, h, false, gofpdf.ImageOptions{ReadDpi: false}, 0, "")
}

func (c *pdfCanvas) TextWidth(text string, font Font, size float64) float64 {
	c.setFont(font, size)
	return c.pdf.GetStringWidth(c.tr(text))
}

func (c *pdfCanvas) EmbedImage(name string, data []byte) (*Image, error) {
	decoded, err := decodeImage(data)
	if err != nil {
		return nil, err
	}
	info := c.pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: decoded.format}, bytes.NewReader(data))
	if err := c.pdf.Error(); err != nil {
		// gofpdf errors are sticky; the document must stay usable without the image
		c.pdf.ClearError()
		return nil, fmt.Errorf("register %s image %q: %w", decoded.format, name, err)
	}
	if info == nil {
		return nil, fmt.Errorf("register %s image %q: no image info", decoded.format, name)
	}
	return &Image{Name: name, Width: float64(decoded.width), Height: float64(decoded.height)}, nil
}

// Output serializes the document.
func (c *pdfCanvas) Output(w io.Writer) error {
	return c.pdf.Output(w)
}

func (c *pdfCanvas) setFont(font Font, size float64) {
	style := ""
	if font == FontBold {
		style = "B"
	}
	c.pdf.SetFont(fontFamily, style, size)
}
