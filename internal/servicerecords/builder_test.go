package servicerecords

import (
	"encoding/json"
	"testing"

	"github.com/spf13/cast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projectorcare/services/report"
)

type fakeRecord map[string]any

func (r fakeRecord) GetString(key string) string { return cast.ToString(r[key]) }

func (r fakeRecord) Get(key string) any { return r[key] }

func (r fakeRecord) UnmarshalJSONField(key string, result any) error {
	return json.Unmarshal([]byte(r.GetString(key)), result)
}

func TestBuildReportDataMapsNotesAndFlags(t *testing.T) {
	rec := fakeRecord{
		"id":               "rec123",
		"reflector":        "yes",
		"reflectorNote":    "Cleaned",
		"uvFilterNote":     "Replaced",
		"exhaustCfm":       "no",
		"lampLocMechanism": "Yes",
	}

	d := BuildReportData(rec, nil, nil, nil)
	require.NotNil(t, d)

	assert.Equal(t, report.StatusItem{Status: "Cleaned", YesNo: "yes"}, d.Reflector)
	assert.Equal(t, report.StatusItem{Status: "Replaced"}, d.UVFilter)
	assert.Equal(t, report.StatusItem{YesNo: "no"}, d.ExhaustCFM)
	assert.Equal(t, report.StatusItem{YesNo: "Yes"}, d.LampLOCMechanism)
	assert.Equal(t, report.StatusItem{}, d.BlackTest)
}

func TestBuildReportDataPrefersRelations(t *testing.T) {
	rec := fakeRecord{
		"id":             "rec1",
		"cinemaName":     "Typed Name",
		"address":        "Typed Address",
		"projectorModel": "Typed Model",
		"runningHours":   41230,
		"serviceVisit":   3,
		"date":           "2025-03-14 00:00:00.000Z",
	}
	site := fakeRecord{"name": "Regal Harbour", "contactDetails": "+61 2 5550 1234", "location": "Level 2"}
	projector := fakeRecord{"model": "CP2220", "serialNumber": "282012345", "screenNumber": "4", "runningHours": "1"}

	d := BuildReportData(rec, site, projector, nil)

	assert.Equal(t, "Regal Harbour", d.CinemaName)
	assert.Equal(t, "Typed Address", d.Address)
	assert.Equal(t, "+61 2 5550 1234", d.ContactDetails)
	assert.Equal(t, "Level 2", d.Location)
	assert.Equal(t, "CP2220", d.ProjectorModel)
	assert.Equal(t, "282012345", d.SerialNumber)
	assert.Equal(t, "4", d.ScreenNumber)
	assert.Equal(t, "41230", d.RunningHours)
	assert.Equal(t, report.VisitLabel("3"), d.ServiceVisit)
	assert.Equal(t, "14-03-2025", d.Date)
}

func TestBuildReportDataSparseRecord(t *testing.T) {
	d := BuildReportData(fakeRecord{}, nil, nil, nil)

	require.NotNil(t, d)
	assert.Equal(t, "", d.CinemaName)
	assert.Equal(t, "", d.Date)
	assert.Equal(t, []report.RecommendedPart{}, d.RecommendedParts)
	assert.Equal(t, "", d.EngineerSignatureURL)
	assert.Nil(t, BuildReportData(nil, nil, nil, nil))
}

func TestBuildReportDataDecodesJSONColumns(t *testing.T) {
	rec := fakeRecord{
		"id":               "rec9",
		"mcgdData":         `{"white2K":{"fl":"14","x":"0.314","y":"0.351"}}`,
		"airPollution":     `{"pm2_5":"12","level":"Good"}`,
		"recommendedParts": `[{"part_number":"000-1","description":"Fan"},{"name":"000-2","description":"Filter"}]`,
		"screenInfo":       "not json",
		"imageEvaluation":  "null",
	}

	d := BuildReportData(rec, nil, nil, nil)

	assert.Equal(t, "0.314", d.MCGD.White2K.X)
	assert.Equal(t, "Good", d.AirPollution.Level)
	assert.Equal(t, []report.RecommendedPart{
		{PartNumber: "000-1", Description: "Fan"},
		{PartNumber: "000-2", Description: "Filter"},
	}, d.RecommendedParts)
	assert.Equal(t, report.ScreenInfo{}, d.ScreenInfo)
	assert.Equal(t, report.ImageEvaluation{}, d.ImageEvaluation)
}

func TestBuildReportDataResolvesSignatures(t *testing.T) {
	rec := fakeRecord{
		"id":                "abc",
		"engineerSignature": "sig_eng_x1.png",
		"siteSignature":     "data:image/png;base64,AAAA",
	}

	d := BuildReportData(rec, nil, nil, FileURL("http://localhost:8090/"))

	assert.Equal(t, "http://localhost:8090/api/files/service_records/abc/sig_eng_x1.png", d.EngineerSignatureURL)
	assert.Equal(t, "data:image/png;base64,AAAA", d.SiteSignatureURL)

	unresolved := BuildReportData(rec, nil, nil, nil)
	assert.Equal(t, "", unresolved.EngineerSignatureURL)
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"2025-03-14", "14-03-2025"},
		{"2025-03-14T08:30:00Z", "14-03-2025"},
		{"14/03/2025", "14/03/2025"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDate(tt.in), tt.in)
	}
}
