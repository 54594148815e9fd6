// Package report lays out the two-page projector maintenance report PDF.
package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"projectorcare/internal/handlers"
)

// ErrNoReportData is returned when Generate is called without a report model.
var ErrNoReportData = errors.New("report: no report data")

const defaultAssetTimeout = 10 * time.Second

// DefaultRightLogoLabel is drawn when no right header logo is available.
const DefaultRightLogoLabel = "PREVENTIVE MAINTENANCE"

// Logo is a header image source and the text drawn when it cannot be loaded.
type Logo struct {
	Source        string
	FallbackLabel string
}

// Generator renders MaintenanceReportData into PDF bytes. It holds no per-report
// state and may be shared.
type Generator struct {
	loader     AssetLoader
	letterhead Letterhead
	leftLogo   Logo
	rightLogo  Logo
	creator    string
	now        func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithLoader sets the loader used for logos and signatures.
func WithLoader(l AssetLoader) Option {
	return func(g *Generator) {
		if l != nil {
			g.loader = l
		}
	}
}

// WithLetterhead sets the contact box contents.
func WithLetterhead(lh Letterhead) Option {
	return func(g *Generator) {
		g.letterhead = lh
	}
}

// WithLogos sets the left and right header images.
func WithLogos(left, right Logo) Option {
	return func(g *Generator) {
		g.leftLogo = left
		g.rightLogo = right
	}
}

// WithClock sets the time source stamped into the document metadata.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGenerator returns a generator with the default letterhead, text labels in
// place of both logos and a SourceLoader with a 10s timeout.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		loader:     NewSourceLoader(defaultAssetTimeout),
		letterhead: DefaultLetterhead,
		leftLogo:   Logo{FallbackLabel: DefaultLetterhead.Name},
		rightLogo:  Logo{FallbackLabel: DefaultRightLogoLabel},
		creator:    "projectorcare",
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateMaintenanceReport renders data with the default generator.
func GenerateMaintenanceReport(data *MaintenanceReportData) ([]byte, error) {
	return NewGenerator().Generate(context.Background(), data)
}

// Generate fetches the report images, draws both pages and returns the PDF.
// Missing fields and unavailable images never fail the report.
func (g *Generator) Generate(ctx context.Context, data *MaintenanceReportData) ([]byte, error) {
	if data == nil {
		return nil, ErrNoReportData
	}

	canvas := newPDFCanvas(g.creator, g.now())
	if err := g.render(ctx, canvas, data); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := canvas.Output(&buf); err != nil {
		handlers.LogError(err, "Failed to serialize maintenance report", "cinema", data.CinemaName)
		return nil, fmt.Errorf("write report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// render runs both layout passes on any canvas.
func (g *Generator) render(ctx context.Context, canvas Canvas, data *MaintenanceReportData) error {
	head := logos{
		left:       loadImage(ctx, canvas, g.loader, "logo-left", g.leftLogo.Source),
		right:      loadImage(ctx, canvas, g.loader, "logo-right", g.rightLogo.Source),
		leftLabel:  g.leftLogo.FallbackLabel,
		rightLabel: g.rightLogo.FallbackLabel,
	}
	sig := signatures{
		engineer: loadSignature(ctx, canvas, g.loader, "signature-engineer", data.EngineerSignatureURL),
		site:     loadSignature(ctx, canvas, g.loader, "signature-site", data.SiteSignatureURL),
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("load report assets: %w", err)
	}

	canvas.AddPage()
	page1 := drawInspectionPage(canvas, data, head, g.letterhead)
	warnOverflow(1, page1.Y, PageMargin, data)

	canvas.AddPage()
	page2 := drawMeasurementsPage(canvas, data, sig)
	warnOverflow(2, page2, footerTop, data)

	return nil
}

// warnOverflow logs content that runs past the bottom limit of a page. The
// layout is left as is: there is no pagination.
func warnOverflow(page int, lowest, limit float64, data *MaintenanceReportData) {
	if lowest >= limit {
		return
	}
	handlers.LogWarn("Maintenance report content overflows page",
		"page", page,
		"overflow", limit-lowest,
		"cinema", data.CinemaName,
		"serialNumber", data.SerialNumber,
	)
}
