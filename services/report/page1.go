package report

import "strings"

const (
	headerBandHeight = 60.0
	logoHeight       = 40.0
	titleSize        = 14.0
	logoLabelSize    = 10.0
	contactBoxHeight = 30.0
	envLineHeight    = 12.0
	envMinHeight     = 20.0
)

// Letterhead is the fixed contact block printed under the header band.
type Letterhead struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// DefaultLetterhead is used when the generator is not given one.
var DefaultLetterhead = Letterhead{
	Name:    "Projector Care Services",
	Address: "Service Centre, Unit 4, Industrial Estate",
	Phone:   "+00 000 000 0000",
	Email:   "service@projectorcare.example",
}

// Column widths of the page 1 rows. Every table sums to ContentWidth.
var (
	identityWidths  = []float64{100, 200, 80, 135}
	addressWidths   = []float64{100, 415}
	projectorWidths = []float64{50, 90, 50, 85, 45, 60, 75, 60}
	timingWidths    = []float64{100, 157.5, 100, 157.5}
	checklist       = SectionColumns{Label: 110, Description: 165, Status: 160, Flag: 80}
	environmentCols = []float64{110, 405}
)

type checklistSection struct {
	label string
	items []SectionItem
}

func checklistSections(d *MaintenanceReportData) []checklistSection {
	return []checklistSection{
		{"OPTICALS", []SectionItem{
			{"Reflector", d.Reflector},
			{"UV Filter", d.UVFilter},
			{"Integrator Rod", d.IntegratorRod},
			{"Cold Mirror", d.ColdMirror},
			{"Fold Mirror", d.FoldMirror},
		}},
		{"ELECTRONICS", []SectionItem{
			{"Touch Panel", d.TouchPanel},
			{"EVB Board", d.EVBBoard},
			{"IMCB Board/s", d.IMCBBoard},
			{"PIB Board", d.PIBBoard},
			{"ICP Board", d.ICPBoard},
			{"IMB/S Board", d.IMB2Board},
		}},
		{"SERIAL NUMBER VERIFIED", []SectionItem{
			{"Chassis label vs Touch Panel", d.SerialNumberVerified},
		}},
		{"COOLANT", []SectionItem{
			{"Level and Color", d.CoolantLevelColor},
		}},
		{"DISPOSABLE CONSUMABLES", []SectionItem{
			{"Air Intake, LAD and RAD", d.AirIntakeLADRAD},
		}},
		{"LIGHT ENGINE TEST PATTERN", []SectionItem{
			{"White", d.WhiteTest},
			{"Red", d.RedTest},
			{"Green", d.GreenTest},
			{"Blue", d.BlueTest},
			{"Black", d.BlackTest},
		}},
		{"MECHANICAL", []SectionItem{
			{"AC Blower and Vane Switch", d.ACBlowerVane},
			{"Extractor Vane Switch", d.ExtractorVane},
			{"Exhaust CFM", d.ExhaustCFM},
			{"Light Engine 4 fans with LAD fan", d.LightEngineFans},
			{"Card Cage Top and Bottom fans", d.CardCageFans},
			{"Radiator fan and Pump", d.RadiatorFanPump},
			{"Connector and hose for the Pump", d.ConnectorHosePump},
			{"Security and lamp house lock switch", d.SecurityLampHouseLock},
		}},
		{"LAMP LOC MECHANISM", []SectionItem{
			{"X, Y and Z movement", d.LampLOCMechanism},
		}},
	}
}

// logos are the two header images; either may be nil.
type logos struct {
	left, right           *Image
	leftLabel, rightLabel string
}

// drawInspectionPage lays out page 1 and returns the final cursor.
func drawInspectionPage(canvas Canvas, d *MaintenanceReportData, head logos, letterhead Letterhead) *Cursor {
	cur := NewCursor()

	drawHeaderBand(canvas, cur, head)
	drawContactBox(canvas, cur, letterhead)

	DrawRow(canvas, cur, LabelValues(identityWidths, "CINEMA NAME:", d.CinemaName, "DATE:", d.Date), rowHeight)
	DrawRow(canvas, cur, LabelValues(addressWidths, "ADDRESS:", d.Address), rowHeight)
	DrawRow(canvas, cur, LabelValues(identityWidths, "CONTACT DETAILS:", d.ContactDetails, "LOCATION:", d.Location), rowHeight)
	DrawRow(canvas, cur, LabelValues(identityWidths, "SCREEN NO:", d.ScreenNumber, "SERVICE VISIT:", OrdinalVisit(string(d.ServiceVisit))), rowHeight)
	DrawRow(canvas, cur, LabelValues(projectorWidths,
		"MODEL:", d.ProjectorModel,
		"SERIAL:", d.SerialNumber,
		"HOURS:", d.RunningHours,
		"REPLACEMENT:", NormalizeYesNo(d.ReplacementRequired),
	), rowHeight)
	if d.StartTime != "" || d.EndTime != "" {
		DrawRow(canvas, cur, LabelValues(timingWidths, "SERVICE START:", d.StartTime, "SERVICE END:", d.EndTime), rowHeight)
	}

	DrawRow(canvas, cur, Labels(
		[]float64{checklist.Label, checklist.Description, checklist.Status, checklist.Flag},
		"SECTIONS", "DESCRIPTION", "STATUS", "YES/NO-OK",
	), rowHeight)

	for _, s := range checklistSections(d) {
		DrawSection(canvas, cur, checklist, s.label, s.items)
	}

	if strings.TrimSpace(d.Environment) != "" {
		drawEnvironmentRow(canvas, cur, d.Environment)
	}
	return cur
}

func drawHeaderBand(canvas Canvas, cur *Cursor, head logos) {
	top := cur.Y
	bottom := cur.Take(headerBandHeight)
	logoY := bottom + (headerBandHeight-logoHeight)/2
	right := cur.X + ContentWidth
	// fallback labels sit in the top of the logo box, clear of the title line
	labelY := logoY + logoHeight - logoLabelSize

	if head.left != nil {
		w := scaledWidth(head.left, logoHeight)
		canvas.DrawImage(head.left, cur.X, logoY, w, logoHeight)
	} else if head.leftLabel != "" {
		canvas.DrawText(head.leftLabel, cur.X, labelY, FontBold, logoLabelSize)
	}

	if head.right != nil {
		w := scaledWidth(head.right, logoHeight)
		canvas.DrawImage(head.right, right-w, logoY, w, logoHeight)
	} else if head.rightLabel != "" {
		w := canvas.TextWidth(head.rightLabel, FontBold, logoLabelSize)
		canvas.DrawText(head.rightLabel, right-w, labelY, FontBold, logoLabelSize)
	}

	title := strings.ToUpper(documentTitle)
	tw := canvas.TextWidth(title, FontBold, titleSize)
	canvas.DrawText(title, cur.X+(ContentWidth-tw)/2, top-headerBandHeight/2-titleSize/3, FontBold, titleSize)
}

func drawContactBox(canvas Canvas, cur *Cursor, lh Letterhead) {
	top := cur.Y
	bottom := cur.Take(contactBoxHeight)
	canvas.DrawRect(cur.X, bottom, ContentWidth, contactBoxHeight)

	canvas.DrawText(lh.Name, cur.X+cellInset, top-11, FontBold, 9)
	contact := lh.Address
	if lh.Phone != "" {
		contact += "  |  Tel: " + lh.Phone
	}
	if lh.Email != "" {
		contact += "  |  " + lh.Email
	}
	measure := func(s string) float64 { return canvas.TextWidth(s, FontRegular, textSize) }
	canvas.DrawText(clipText(contact, ContentWidth-2*cellInset, measure), cur.X+cellInset, top-23, FontRegular, textSize)
}

// drawEnvironmentRow prints the free-text site environment notes, wrapped to the value column.
func drawEnvironmentRow(canvas Canvas, cur *Cursor, text string) {
	labelW, valueW := environmentCols[0], environmentCols[1]
	measure := func(s string) float64 { return canvas.TextWidth(s, FontRegular, textSize) }
	lines := WrapText(text, valueW-2*cellInset, measure)

	height := envMinHeight
	if h := float64(len(lines))*envLineHeight + remarksPadding; h > height {
		height = h
	}
	top := cur.Y
	bottom := cur.Take(height)

	canvas.DrawRect(cur.X, bottom, labelW, height)
	drawCellText(canvas, "ENVIRONMENT:", cur.X, top-rowHeight, labelW, rowHeight, FontBold, textSize)
	canvas.DrawRect(cur.X+labelW, bottom, valueW, height)
	drawCellLines(canvas, lines, cur.X+labelW, top, valueW, FontRegular, textSize, envLineHeight, 4)
}

// scaledWidth keeps the aspect ratio of img at the given height.
func scaledWidth(img *Image, height float64) float64 {
	if img.Height <= 0 {
		return 0
	}
	return img.Width * height / img.Height
}
