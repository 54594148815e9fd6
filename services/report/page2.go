package report

const (
	columnWidth   = 250.0
	columnGutter  = ContentWidth - 2*columnWidth
	blockGap      = 10.0
	partRowHeight = 20.0
	partTextSize  = 7.0
	partLineGap   = 8.0

	remarksTextSize = 8.0
	remarksTextPad  = 4.0

	signatureScale     = 0.5
	signatureMaxWidth  = 120.0
	signatureMaxHeight = 50.0
	signatureImageY    = 70.0
	signatureLabelY    = 130.0
	signatureNameY     = 58.0
	engineerSignatureX = PageMargin
	siteSignatureX     = 330.0

	// footerTop is the highest point the signature block reaches.
	footerTop = signatureLabelY + 10
)

// Column widths of the page 2 rows. Full-width tables sum to ContentWidth,
// column tables to columnWidth.
var (
	lampWidths       = []float64{90, 170, 110, 145}
	lampHoursWidths  = []float64{130, 127.5, 130, 127.5}
	voltageWidths    = []float64{80, 91, 80, 91, 80, 93}
	flWidths         = []float64{170, 87, 170, 88}
	softwareWidths   = []float64{150, 100}
	gridWidths       = []float64{70, 60, 60, 60}
	imageEvalWidths  = []float64{190, 60}
	partsWidths      = []float64{90, 160}
	airWidths        = []float64{55, 55, 55, 55, 55, 55, 55, 55, 75}
	remarksWidths    = []float64{70, 265, 70, 110}
	fullWidth        = []float64{ContentWidth}
	columnTitleWidth = []float64{columnWidth}
)

// signatures are the two sign-off images; either may be nil.
type signatures struct {
	engineer, site *Image
}

// drawMeasurementsPage lays out page 2 and returns the lowest point any table reached.
func drawMeasurementsPage(canvas Canvas, d *MaintenanceReportData, sig signatures) float64 {
	cur := NewCursor()

	DrawRow(canvas, cur, LabelValues(lampWidths, "LAMP MODEL:", d.LampModel, "LAMP TOTAL HOURS:", d.LampTotalRunningHours), rowHeight)
	DrawRow(canvas, cur, LabelValues(lampHoursWidths, "LAMP CURRENT HOURS:", d.LampCurrentRunningHours, "PROJECTOR HOURS:", d.RunningHours), rowHeight)
	DrawRow(canvas, cur, LabelValues(voltageWidths, "PV VS N:", d.PVVsN, "PV VS E:", d.PVVsE, "NV VS E:", d.NVVsE), rowHeight)
	DrawRow(canvas, cur, LabelValues(flWidths, "fL BEFORE PM (100%):", d.FLBeforePM, "fL AFTER PM (100%):", d.FLAfterPM), rowHeight)
	cur.Take(blockGap)

	left := &Cursor{X: PageMargin, Y: cur.Y}
	right := &Cursor{X: PageMargin + columnWidth + columnGutter, Y: cur.Y}

	drawSoftwareAndScreen(canvas, left, d)
	left.Take(blockGap)
	drawImageEvaluation(canvas, left, d.ImageEvaluation)

	drawMCGD(canvas, right, d.MCGD)
	right.Take(blockGap)
	drawCIE(canvas, right, d.CIEXYZ2K, d.CIEXYZ4K)
	right.Take(blockGap)
	drawRecommendedParts(canvas, right, d.RecommendedParts)

	// the left column decides where the full-width tables resume
	cur.Y = left.Y - blockGap
	drawAirPollution(canvas, cur, d.AirPollution)
	cur.Take(blockGap)
	drawRemarks(canvas, cur, d.Remarks, d.LightEngineSerialNumber)

	drawSignatures(canvas, d, sig)

	return min(cur.Y, right.Y)
}

func drawSoftwareAndScreen(canvas Canvas, cur *Cursor, d *MaintenanceReportData) {
	DrawRow(canvas, cur, LabelValues(softwareWidths, "SOFTWARE VERSION:", d.SoftwareVersion), rowHeight)
	DrawRow(canvas, cur, LabelValues(softwareWidths, "CONTENT PLAYER MODEL:", d.ContentPlayerModel), rowHeight)
	DrawRow(canvas, cur, LabelValues(softwareWidths, "AC STATUS:", d.ACStatus), rowHeight)
	DrawRow(canvas, cur, LabelValues(softwareWidths, "LE STATUS DURING PM:", d.LEStatusDuringPM), rowHeight)
	cur.Take(blockGap)

	s := d.ScreenInfo
	DrawRow(canvas, cur, Labels(columnTitleWidth, "SCREEN INFORMATION"), rowHeight)
	DrawRow(canvas, cur, Labels(gridWidths, "", "HEIGHT", "WIDTH", "GAIN"), rowHeight)
	DrawRow(canvas, cur, gridRow("SCOPE", s.Scope.Height, s.Scope.Width, s.Scope.Gain), rowHeight)
	DrawRow(canvas, cur, gridRow("FLAT", s.Flat.Height, s.Flat.Width, s.Flat.Gain), rowHeight)
	DrawRow(canvas, cur, LabelValues(gridWidths, "MAKE:", s.ScreenMake, "THROW:", s.ThrowDistance), rowHeight)
}

func drawImageEvaluation(canvas Canvas, cur *Cursor, ev ImageEvaluation) {
	DrawRow(canvas, cur, Labels(columnTitleWidth, "IMAGE EVALUATION"), rowHeight)
	checks := []struct{ label, value string }{
		{"Focus/boresight", ev.Focus},
		{"Integrator Position", ev.IntegratorPosition},
		{"Any Spot on the Screen after PPM", ev.ScreenSpots},
		{"Check Screen Cropping - FLAT and SCOPE", ev.ScreenCropping},
		{"Convergence Checked", ev.Convergence},
		{"Channels Checked - Scope, Flat, Alternative", ev.ChannelsChecked},
		{"Pixel defects", ev.PixelDefects},
		{"Excessive image vibration", ev.ImageVibration},
		{"LiteLOC", ev.LiteLOC},
	}
	for _, c := range checks {
		DrawRow(canvas, cur, Values(imageEvalWidths, c.label, NormalizeYesNo(c.value)), sectionRow)
	}
}

func drawMCGD(canvas Canvas, cur *Cursor, m MCGDData) {
	DrawRow(canvas, cur, Labels(columnTitleWidth, "MCGD"), rowHeight)
	DrawRow(canvas, cur, Labels(gridWidths, "", "fL", "x", "y"), rowHeight)
	channels := []struct {
		label   string
		reading ColorReading
	}{
		{"WHITE 2K", m.White2K},
		{"WHITE 4K", m.White4K},
		{"RED 2K", m.Red2K},
		{"RED 4K", m.Red4K},
		{"GREEN 2K", m.Green2K},
		{"GREEN 4K", m.Green4K},
		{"BLUE 2K", m.Blue2K},
		{"BLUE 4K", m.Blue4K},
	}
	for _, ch := range channels {
		DrawRow(canvas, cur, gridRow(ch.label, ch.reading.FL, ch.reading.X, ch.reading.Y), sectionRow)
	}
}

func drawCIE(canvas Canvas, cur *Cursor, c2k, c4k CIEXYZ) {
	DrawRow(canvas, cur, Labels(columnTitleWidth, "CIE XYZ COLOR ACCURACY"), rowHeight)
	DrawRow(canvas, cur, Labels(gridWidths, "", "x", "y", "fL"), rowHeight)
	DrawRow(canvas, cur, gridRow("2K", c2k.X, c2k.Y, c2k.FL), sectionRow)
	DrawRow(canvas, cur, gridRow("4K", c4k.X, c4k.Y, c4k.FL), sectionRow)
}

// drawRecommendedParts prints one row per part. Descriptions are cut at 30 runes
// onto at most two lines. An empty list still gets one blank row.
func drawRecommendedParts(canvas Canvas, cur *Cursor, parts []RecommendedPart) {
	DrawRow(canvas, cur, Labels(columnTitleWidth, "RECOMMENDED PARTS TO CHANGE"), rowHeight)
	DrawRow(canvas, cur, Labels(partsWidths, "PART NUMBER", "DESCRIPTION"), rowHeight)

	if len(parts) == 0 {
		DrawRow(canvas, cur, Values(partsWidths), partRowHeight)
		return
	}

	numberW, descW := partsWidths[0], partsWidths[1]
	for _, p := range parts {
		top := cur.Y
		bottom := cur.Take(partRowHeight)
		canvas.DrawRect(cur.X, bottom, numberW, partRowHeight)
		drawCellText(canvas, p.PartNumber, cur.X, bottom, numberW, partRowHeight, FontRegular, partTextSize)

		descX := cur.X + numberW
		canvas.DrawRect(descX, bottom, descW, partRowHeight)
		lines := SplitPartDescription(p.Description)
		if len(lines) == 1 {
			drawCellText(canvas, lines[0], descX, bottom, descW, partRowHeight, FontRegular, partTextSize)
			continue
		}
		drawCellLines(canvas, lines, descX, top, descW, FontRegular, partTextSize, partLineGap, 2)
	}
}

func drawAirPollution(canvas Canvas, cur *Cursor, a AirPollution) {
	DrawRow(canvas, cur, Labels(fullWidth, "AIR POLLUTION LEVEL"), rowHeight)
	DrawRow(canvas, cur, Labels(airWidths, "HCHO", "TVOC", "PM 1.0", "PM 2.5", "PM 10", "TEMP °C", "HUMIDITY %", "CO2", "LEVEL"), rowHeight)
	DrawRow(canvas, cur, Values(airWidths, a.HCHO, a.TVOC, a.PM1, a.PM25, a.PM10, a.Temperature, a.Humidity, a.CO2, a.Level), rowHeight)
}

// remarksLayout is the wrapped remarks text and the height of its row.
type remarksLayout struct {
	lines  []string
	height float64
}

func layoutRemarks(canvas Canvas, remarks string) remarksLayout {
	maxWidth := remarksWidths[1] - 2*cellInset - 4
	measure := func(s string) float64 { return canvas.TextWidth(s, FontRegular, remarksTextSize) }
	lines := WrapText(remarks, maxWidth, measure)
	return remarksLayout{lines: lines, height: RemarksRowHeight(len(lines))}
}

// drawRemarks draws label, remarks, second label and its value as four cells sharing
// the height the wrapped remarks need.
func drawRemarks(canvas Canvas, cur *Cursor, remarks, leSerial string) {
	layout := layoutRemarks(canvas, remarks)
	top := cur.Y
	bottom := cur.Take(layout.height)

	x := cur.X
	for i, w := range remarksWidths {
		canvas.DrawRect(x, bottom, w, layout.height)
		switch i {
		case 0:
			drawCellText(canvas, "REMARKS:", x, top-rowHeight, w, rowHeight, FontBold, textSize)
		case 1:
			drawCellLines(canvas, layout.lines, x, top, w, FontRegular, remarksTextSize, remarksLineHeight, remarksTextPad)
		case 2:
			drawCellText(canvas, "LE S. NO.:", x, top-rowHeight, w, rowHeight, FontBold, textSize)
		case 3:
			drawCellText(canvas, leSerial, x, top-rowHeight, w, rowHeight, FontRegular, textSize)
		}
		x += w
	}
}

func drawSignatures(canvas Canvas, d *MaintenanceReportData, sig signatures) {
	blocks := []struct {
		x     float64
		label string
		name  string
		img   *Image
	}{
		{engineerSignatureX, "ENGINEER'S SIGNATURE", d.EngineerName, sig.engineer},
		{siteSignatureX, "SITE IN-CHARGE SIGNATURE", d.SiteInChargeName, sig.site},
	}
	for _, b := range blocks {
		canvas.DrawText(b.label, b.x, signatureLabelY, FontBold, textSize)
		if b.img != nil {
			w, h := SignatureSize(b.img)
			canvas.DrawImage(b.img, b.x, signatureImageY, w, h)
		}
		if b.name != "" {
			canvas.DrawText(b.name, b.x, signatureNameY, FontRegular, textSize)
		}
	}
}

// SignatureSize scales the image by a fixed factor and then shrinks it, keeping the
// aspect ratio, until it fits the 120x50 signature box.
func SignatureSize(img *Image) (float64, float64) {
	w, h := img.Width*signatureScale, img.Height*signatureScale
	if w > signatureMaxWidth {
		h *= signatureMaxWidth / w
		w = signatureMaxWidth
	}
	if h > signatureMaxHeight {
		w *= signatureMaxHeight / h
		h = signatureMaxHeight
	}
	return w, h
}

func gridRow(label string, values ...string) []Cell {
	cells := []Cell{Label(label, gridWidths[0])}
	for i, w := range gridWidths[1:] {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		cells = append(cells, Value(v, w))
	}
	return cells
}
