// Package pdfgeneratorservice renders the visit schedule sheet of a site with maroto.
package pdfgeneratorservice

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"projectorcare/internal/handlers"
)

// ScheduledVisit is one row of the schedule sheet.
type ScheduledVisit struct {
	Date      string
	Projector string
	Serial    string
	Visit     string
	Engineer  string
	Status    string
}

// ScheduleData represents the schedule sheet contents
type ScheduleData struct {
	Title  string
	Logo   []byte
	Header string
	Visits []ScheduledVisit
	Footer string
}

var columnTitles = []string{"DATE", "PROJECTOR", "SERIAL NO.", "VISIT", "ENGINEER", "STATUS"}

// GenerateScheduleBytes generate the schedule sheet and returns []byte.
func GenerateScheduleBytes(data ScheduleData) ([]byte, error) {
	m, err := buildSchedule(data)
	if err != nil {
		return nil, err
	}

	document, err := m.Generate()
	if err != nil {
		handlers.LogError(err, "Failed Maroto generate schedule sheet", "title", data.Title)
		return nil, err
	}
	return document.GetBytes(), nil
}

func buildSchedule(data ScheduleData) (core.Maroto, error) {
	cfg := config.NewBuilder().
		WithPageNumber().
		WithLeftMargin(10).
		WithTopMargin(15).
		WithRightMargin(10).
		Build()

	m := maroto.NewMetricsDecorator(maroto.New(cfg))

	if err := m.RegisterHeader(getPageHeader(data.Logo, data.Header)); err != nil {
		handlers.LogError(err, "Failed RegisterHeader schedule sheet")
		return nil, err
	}
	if err := m.RegisterFooter(getPageFooter(data.Footer)); err != nil {
		handlers.LogError(err, "Failed RegisterFooter schedule sheet")
		return nil, err
	}

	// Title band
	m.AddRow(7,
		text.NewCol(12, strings.ToUpper(data.Title), props.Text{
			Top:   1.5,
			Size:  9,
			Left:  2,
			Style: fontstyle.Bold,
			Align: align.Left,
			Color: &props.WhiteColor,
		}),
	).WithStyle(&props.Cell{BackgroundColor: getDarkGrayColor()})

	m.AddRows(getColumnTitles())
	m.AddRows(getVisitRows(data.Visits)...)
	return m, nil
}

func getPageHeader(logoBytes []byte, content string) core.Row {
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")

	height := 36.0
	if len(lines) >= 4 {
		height = float64(len(lines) * 8)
	}

	headerRow := row.New(height)
	if ext, ok := logoExtension(logoBytes); ok {
		headerRow.Add(
			image.NewFromBytesCol(3, logoBytes, ext, props.Rect{Percent: 80}),
			col.New(3),
		)
	} else {
		if len(logoBytes) > 0 {
			handlers.LogWarn("Schedule sheet logo skipped", "mime", mimetype.Detect(logoBytes).String())
		}
		headerRow.Add(col.New(6))
	}
	headerRow.Add(col.New(6).Add(buildTextComponents(lines)...))
	return headerRow
}

func logoExtension(b []byte) (extension.Type, bool) {
	if len(b) == 0 {
		return "", false
	}
	switch mimetype.Detect(b).String() {
	case "image/png":
		return extension.Png, true
	case "image/jpeg":
		return extension.Jpg, true
	}
	return "", false
}

func getColumnTitles() core.Row {
	r := row.New(6)
	for _, title := range columnTitles {
		r.Add(text.NewCol(2, title, props.Text{
			Top:   1.5,
			Size:  7,
			Left:  2,
			Style: fontstyle.Bold,
			Align: align.Left,
		}))
	}
	return r.WithStyle(&props.Cell{BorderType: border.Bottom})
}

func getVisitRows(visits []ScheduledVisit) []core.Row {
	if len(visits) == 0 {
		return []core.Row{
			row.New(6).Add(text.NewCol(12, "No visits scheduled", props.Text{
				Top:   1.5,
				Size:  8,
				Left:  2,
				Style: fontstyle.Italic,
				Align: align.Left,
				Color: getDarkGrayColor(),
			})),
		}
	}

	rows := make([]core.Row, 0, len(visits))
	for i, v := range visits {
		r := row.New(6)
		for _, value := range []string{v.Date, v.Projector, v.Serial, v.Visit, v.Engineer, v.Status} {
			r.Add(text.NewCol(2, value, props.Text{
				Top:   1.5,
				Size:  8,
				Left:  2,
				Align: align.Left,
			}))
		}
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: getLightGrayColor()})
		}
		rows = append(rows, r)
	}
	return rows
}

func getPageFooter(content string) core.Row {
	return row.New(20).Add(
		col.New(12).Add(
			text.New(content, props.Text{
				Size:  8,
				Align: align.Right,
				Style: fontstyle.Normal,
				Color: getDarkGrayColor(),
			}),
		),
	)
}

// Helpers
func buildTextComponents(lines []string) []core.Component {
	var comps []core.Component
	for i, line := range lines {
		comps = append(comps, text.New(line, props.Text{
			Top:   float64(4 * i),
			Size:  8,
			Align: align.Right,
			Style: fontstyle.Normal,
			Color: getDarkGrayColor(),
		}))
	}
	return comps
}

func getDarkGrayColor() *props.Color {
	return &props.Color{Red: 55, Green: 55, Blue: 55}
}

func getLightGrayColor() *props.Color {
	return &props.Color{Red: 235, Green: 235, Blue: 235}
}

// SheetFileName is the download name of a site's schedule sheet.
func SheetFileName(siteName string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return '-'
	}, strings.TrimSpace(siteName))
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "site"
	}
	return fmt.Sprintf("schedule-%s.pdf", slug)
}
