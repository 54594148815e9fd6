package servicerecords

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cast"

	"projectorcare/internal/handlers"
	"projectorcare/services/report"
)

const (
	collectionName = "service_records"
	dateLayout     = "02-01-2006"
)

// Record is the read side of a PocketBase record that the builder needs.
// *core.Record satisfies it.
type Record interface {
	GetString(key string) string
	Get(key string) any
	UnmarshalJSONField(key string, result any) error
}

// FileURLFunc resolves a stored file name of a service record into a fetchable URL.
type FileURLFunc func(recordID, filename string) string

// FileURL builds PocketBase file URLs under baseURL.
func FileURL(baseURL string) FileURLFunc {
	base := strings.TrimRight(baseURL, "/")
	return func(recordID, filename string) string {
		return fmt.Sprintf("%s/api/files/%s/%s/%s", base, collectionName, url.PathEscape(recordID), url.PathEscape(filename))
	}
}

// BuildReportData maps a service record and its site and projector relations into
// the report model. site and projector may be nil; the record's own columns are
// used instead.
func BuildReportData(record, site, projector Record, files FileURLFunc) *report.MaintenanceReportData {
	if record == nil {
		return nil
	}

	d := &report.MaintenanceReportData{
		CinemaName:          first(field(site, "name"), field(record, "cinemaName")),
		Date:                formatDate(field(record, "date")),
		Address:             first(field(site, "address"), field(record, "address")),
		ContactDetails:      first(field(site, "contactDetails"), field(record, "contactDetails")),
		Location:            first(field(site, "location"), field(record, "location")),
		ScreenNumber:        first(field(projector, "screenNumber"), field(record, "screenNumber")),
		ServiceVisit:        report.VisitLabel(cast.ToString(record.Get("serviceVisit"))),
		ProjectorModel:      first(field(projector, "model"), field(record, "projectorModel")),
		SerialNumber:        first(field(projector, "serialNumber"), field(record, "serialNumber")),
		RunningHours:        first(field(record, "runningHours"), field(projector, "runningHours")),
		ReplacementRequired: field(record, "replacementRequired"),
		RecommendedParts:    []report.RecommendedPart{},
	}

	for key, dst := range scalarColumns(d) {
		*dst = field(record, key)
	}
	for key, dst := range statusColumns(d) {
		*dst = report.StatusItem{
			Status: field(record, key+"Note"),
			YesNo:  field(record, key),
		}
	}
	for key, dst := range jsonColumns(d) {
		unmarshalOptional(record, key, dst)
	}
	if d.RecommendedParts == nil {
		d.RecommendedParts = []report.RecommendedPart{}
	}

	id := record.GetString("id")
	d.EngineerSignatureURL = signatureSource(files, id, field(record, "engineerSignature"))
	d.SiteSignatureURL = signatureSource(files, id, field(record, "siteSignature"))
	return d
}

func scalarColumns(d *report.MaintenanceReportData) map[string]*string {
	return map[string]*string{
		"environment":             &d.Environment,
		"startTime":               &d.StartTime,
		"endTime":                 &d.EndTime,
		"lampModel":               &d.LampModel,
		"lampTotalRunningHours":   &d.LampTotalRunningHours,
		"lampCurrentRunningHours": &d.LampCurrentRunningHours,
		"pvVsN":                   &d.PVVsN,
		"pvVsE":                   &d.PVVsE,
		"nvVsE":                   &d.NVVsE,
		"flBeforePM":              &d.FLBeforePM,
		"flAfterPM":               &d.FLAfterPM,
		"softwareVersion":         &d.SoftwareVersion,
		"contentPlayerModel":      &d.ContentPlayerModel,
		"acStatus":                &d.ACStatus,
		"leStatusDuringPM":        &d.LEStatusDuringPM,
		"remarks":                 &d.Remarks,
		"lightEngineSerialNumber": &d.LightEngineSerialNumber,
		"engineerName":            &d.EngineerName,
		"siteInChargeName":        &d.SiteInChargeName,
	}
}

// statusColumns lists the checklist columns. Each is stored as a yes/no column
// plus a free-text "<column>Note" companion.
func statusColumns(d *report.MaintenanceReportData) map[string]*report.StatusItem {
	return map[string]*report.StatusItem{
		"reflector":             &d.Reflector,
		"uvFilter":              &d.UVFilter,
		"integratorRod":         &d.IntegratorRod,
		"coldMirror":            &d.ColdMirror,
		"foldMirror":            &d.FoldMirror,
		"touchPanel":            &d.TouchPanel,
		"evbBoard":              &d.EVBBoard,
		"imcbBoard":             &d.IMCBBoard,
		"pibBoard":              &d.PIBBoard,
		"icpBoard":              &d.ICPBoard,
		"imb2Board":             &d.IMB2Board,
		"serialNumberVerified":  &d.SerialNumberVerified,
		"coolantLevelColor":     &d.CoolantLevelColor,
		"airIntakeLadRad":       &d.AirIntakeLADRAD,
		"whiteTest":             &d.WhiteTest,
		"redTest":               &d.RedTest,
		"greenTest":             &d.GreenTest,
		"blueTest":              &d.BlueTest,
		"blackTest":             &d.BlackTest,
		"acBlowerVane":          &d.ACBlowerVane,
		"extractorVane":         &d.ExtractorVane,
		"exhaustCfm":            &d.ExhaustCFM,
		"lightEngineFans":       &d.LightEngineFans,
		"cardCageFans":          &d.CardCageFans,
		"radiatorFanPump":       &d.RadiatorFanPump,
		"connectorHosePump":     &d.ConnectorHosePump,
		"securityLampHouseLock": &d.SecurityLampHouseLock,
		"lampLocMechanism":      &d.LampLOCMechanism,
	}
}

func jsonColumns(d *report.MaintenanceReportData) map[string]any {
	return map[string]any{
		"mcgdData":         &d.MCGD,
		"cieXyz2K":         &d.CIEXYZ2K,
		"cieXyz4K":         &d.CIEXYZ4K,
		"screenInfo":       &d.ScreenInfo,
		"imageEvaluation":  &d.ImageEvaluation,
		"airPollution":     &d.AirPollution,
		"recommendedParts": &d.RecommendedParts,
	}
}

// unmarshalOptional leaves dst untouched when the column is empty or malformed.
func unmarshalOptional(record Record, key string, dst any) {
	if raw := strings.TrimSpace(record.GetString(key)); raw == "" || raw == "null" {
		return
	}
	if err := record.UnmarshalJSONField(key, dst); err != nil {
		handlers.LogWarn("Ignoring malformed JSON column", "collection", collectionName, "id", record.GetString("id"), "field", key, "error", err.Error())
	}
}

func field(r Record, key string) string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(cast.ToString(r.Get(key)))
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func formatDate(raw string) string {
	if raw == "" {
		return ""
	}
	t, err := cast.ToTimeE(raw)
	if err != nil || t.IsZero() {
		return raw
	}
	return t.Format(dateLayout)
}

// signatureSource passes URLs and data URIs through and resolves stored file names.
func signatureSource(files FileURLFunc, recordID, value string) string {
	switch {
	case value == "":
		return ""
	case strings.HasPrefix(value, "data:"), strings.HasPrefix(value, "http://"), strings.HasPrefix(value, "https://"):
		return value
	case files == nil || recordID == "":
		return ""
	default:
		return files(recordID, value)
	}
}
