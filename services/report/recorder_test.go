package report

import (
	"strings"
	"unicode/utf8"
)

type recordedRect struct {
	page       int
	x, y, w, h float64
}

type recordedText struct {
	page int
	text string
	x, y float64
	font Font
	size float64
}

type recordedImage struct {
	page       int
	name       string
	x, y, w, h float64
}

// recorder is a Canvas that keeps every primitive it is asked to draw.
// Every rune is size/2 wide regardless of the font.
type recorder struct {
	page     int
	rects    []recordedRect
	texts    []recordedText
	images   []recordedImage
	embedded []string
}

func (r *recorder) AddPage() { r.page++ }

func (r *recorder) DrawRect(x, y, w, h float64) {
	r.rects = append(r.rects, recordedRect{r.page, x, y, w, h})
}

func (r *recorder) DrawText(text string, x, y float64, font Font, size float64) {
	r.texts = append(r.texts, recordedText{r.page, text, x, y, font, size})
}

func (r *recorder) DrawImage(img *Image, x, y, w, h float64) {
	r.images = append(r.images, recordedImage{r.page, img.Name, x, y, w, h})
}

func (r *recorder) TextWidth(text string, _ Font, size float64) float64 {
	return float64(utf8.RuneCountInString(text)) * size / 2
}

func (r *recorder) EmbedImage(name string, data []byte) (*Image, error) {
	decoded, err := decodeImage(data)
	if err != nil {
		return nil, err
	}
	r.embedded = append(r.embedded, name)
	return &Image{Name: name, Width: float64(decoded.width), Height: float64(decoded.height)}, nil
}

func (r *recorder) textsOnPage(page int) []string {
	var out []string
	for _, t := range r.texts {
		if t.page == page {
			out = append(out, t.text)
		}
	}
	return out
}

func (r *recorder) findText(text string) (recordedText, bool) {
	for _, t := range r.texts {
		if t.text == text {
			return t, true
		}
	}
	return recordedText{}, false
}

func (r *recorder) hasTextPrefix(prefix string) bool {
	for _, t := range r.texts {
		if strings.HasPrefix(t.text, prefix) {
			return true
		}
	}
	return false
}

// fixedWidth measures one unit per rune.
func fixedWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s))
}
