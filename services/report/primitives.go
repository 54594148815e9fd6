package report

const (
	textSize       = 8.0
	sectionRowSize = 7.0
	cellInset      = 3.0
	rowHeight      = 20.0
	sectionRow     = 15.0
)

// Cursor is the layout cursor: the top edge of the next thing to draw.
// Drawing moves Y down by the height it used.
type Cursor struct {
	X float64
	Y float64
}

// NewCursor starts at the top-left of the content box of a page.
func NewCursor() *Cursor {
	return &Cursor{X: PageMargin, Y: PageHeight - PageMargin}
}

// Take reserves h points below the cursor and returns the bottom of the reserved band.
func (c *Cursor) Take(h float64) float64 {
	c.Y -= h
	return c.Y
}

// Cell is one bordered table cell.
type Cell struct {
	Text     string
	Width    float64
	Emphasis Font
}

// Label is a bold cell.
func Label(text string, width float64) Cell {
	return Cell{Text: text, Width: width, Emphasis: FontBold}
}

// Value is a regular cell.
func Value(text string, width float64) Cell {
	return Cell{Text: text, Width: width, Emphasis: FontRegular}
}

// LabelValues zips widths with texts, alternating label and value cells
// starting with a label.
func LabelValues(widths []float64, texts ...string) []Cell {
	cells := make([]Cell, len(widths))
	for i, w := range widths {
		text := ""
		if i < len(texts) {
			text = texts[i]
		}
		if i%2 == 0 {
			cells[i] = Label(text, w)
		} else {
			cells[i] = Value(text, w)
		}
	}
	return cells
}

// Labels makes a bold cell for each width.
func Labels(widths []float64, texts ...string) []Cell {
	cells := make([]Cell, len(widths))
	for i, w := range widths {
		text := ""
		if i < len(texts) {
			text = texts[i]
		}
		cells[i] = Label(text, w)
	}
	return cells
}

// RowWidth is the sum of the cell widths.
func RowWidth(cells []Cell) float64 {
	total := 0.0
	for _, c := range cells {
		total += c.Width
	}
	return total
}

// DrawRow draws one row of bordered cells of the given height and moves the cursor below it.
func DrawRow(canvas Canvas, cur *Cursor, cells []Cell, height float64) {
	bottom := cur.Take(height)
	x := cur.X
	for _, cell := range cells {
		canvas.DrawRect(x, bottom, cell.Width, height)
		drawCellText(canvas, cell.Text, x, bottom, cell.Width, height, cell.Emphasis, textSize)
		x += cell.Width
	}
}

// SectionItem is one line of a checklist section.
type SectionItem struct {
	Description string
	Item        StatusItem
}

// SectionColumns are the widths of the label, description, status and flag columns.
type SectionColumns struct {
	Label       float64
	Description float64
	Status      float64
	Flag        float64
}

// Total width of the four columns.
func (s SectionColumns) Total() float64 {
	return s.Label + s.Description + s.Status + s.Flag
}

// SectionHeight is the height of a section with n items.
func SectionHeight(n int) float64 {
	return float64(n) * sectionRow
}

// DrawSection draws a label cell as tall as all of its items, and one row per item beside it.
func DrawSection(canvas Canvas, cur *Cursor, cols SectionColumns, label string, items []SectionItem) {
	height := SectionHeight(len(items))
	top := cur.Y
	bottom := cur.Take(height)

	canvas.DrawRect(cur.X, bottom, cols.Label, height)
	drawCellText(canvas, label, cur.X, bottom, cols.Label, height, FontBold, sectionRowSize)

	x := cur.X + cols.Label
	for i, it := range items {
		rowBottom := top - float64(i+1)*sectionRow
		sub := []Cell{
			Value(it.Description, cols.Description),
			Value(it.Item.Status, cols.Status),
			Value(NormalizeYesNo(it.Item.YesNo), cols.Flag),
		}
		cx := x
		for _, c := range sub {
			canvas.DrawRect(cx, rowBottom, c.Width, sectionRow)
			drawCellText(canvas, c.Text, cx, rowBottom, c.Width, sectionRow, c.Emphasis, sectionRowSize)
			cx += c.Width
		}
	}
}

// drawCellText writes single-line text left-aligned and vertically centered,
// clipped to the cell width minus its insets.
func drawCellText(canvas Canvas, text string, x, bottom, width, height float64, font Font, size float64) {
	if text == "" {
		return
	}
	measure := func(s string) float64 { return canvas.TextWidth(s, font, size) }
	clipped := clipText(text, width-2*cellInset, measure)
	if clipped == "" {
		return
	}
	canvas.DrawText(clipped, x+cellInset, baseline(bottom, height, size), font, size)
}

// drawCellLines writes lines from the top of a cell, lineHeight apart.
func drawCellLines(canvas Canvas, lines []string, x, top, width float64, font Font, size, lineHeight, topPad float64) {
	measure := func(s string) float64 { return canvas.TextWidth(s, font, size) }
	for i, line := range lines {
		y := top - topPad - float64(i)*lineHeight - size
		canvas.DrawText(clipText(line, width-2*cellInset, measure), x+cellInset, y, font, size)
	}
}

// baseline centers the cap height of size-point text in a band.
func baseline(bottom, height, size float64) float64 {
	return bottom + (height-size*0.7)/2
}

// Values makes a regular cell for each width.
func Values(widths []float64, texts ...string) []Cell {
	cells := make([]Cell, len(widths))
	for i, w := range widths {
		text := ""
		if i < len(texts) {
			text = texts[i]
		}
		cells[i] = Value(text, w)
	}
	return cells
}
