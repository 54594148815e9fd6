package report

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cast"
)

// StatusItem pairs the free-text note of one inspected component with its flag.
type StatusItem struct {
	Status string `json:"status"`
	YesNo  string `json:"yesNo,omitempty"`
}

// ColorReading is one MCGD channel measurement.
type ColorReading struct {
	FL string `json:"fl"`
	X  string `json:"x"`
	Y  string `json:"y"`
}

// MCGDData holds the white/red/green/blue readings at 2K and 4K.
type MCGDData struct {
	White2K ColorReading `json:"white2K"`
	White4K ColorReading `json:"white4K"`
	Red2K   ColorReading `json:"red2K"`
	Red4K   ColorReading `json:"red4K"`
	Green2K ColorReading `json:"green2K"`
	Green4K ColorReading `json:"green4K"`
	Blue2K  ColorReading `json:"blue2K"`
	Blue4K  ColorReading `json:"blue4K"`
}

// CIEXYZ is a color accuracy measurement.
type CIEXYZ struct {
	X  string `json:"x"`
	Y  string `json:"y"`
	FL string `json:"fl"`
}

// ScreenDimensions of one aspect (scope or flat).
type ScreenDimensions struct {
	Height string `json:"height"`
	Width  string `json:"width"`
	Gain   string `json:"gain"`
}

// ScreenInfo describes the auditorium screen.
type ScreenInfo struct {
	Scope         ScreenDimensions `json:"scope"`
	Flat          ScreenDimensions `json:"flat"`
	ScreenMake    string           `json:"screenMake"`
	ThrowDistance string           `json:"throwDistance"`
}

// ImageEvaluation holds the Yes/No/empty answers of the image checks.
type ImageEvaluation struct {
	Focus              string `json:"focusBoresight"`
	IntegratorPosition string `json:"integratorPosition"`
	ScreenSpots        string `json:"spotOnScreen"`
	ScreenCropping     string `json:"screenCropping"`
	Convergence        string `json:"convergenceChecked"`
	ChannelsChecked    string `json:"channelsChecked"`
	PixelDefects       string `json:"pixelDefects"`
	ImageVibration     string `json:"imageVibration"`
	LiteLOC            string `json:"liteLoc"`
}

// AirPollution readings taken in the projection room.
type AirPollution struct {
	HCHO        string `json:"hcho"`
	TVOC        string `json:"tvoc"`
	PM1         string `json:"pm1"`
	PM25        string `json:"pm2_5"`
	PM10        string `json:"pm10"`
	Temperature string `json:"temperature"`
	Humidity    string `json:"humidity"`
	CO2         string `json:"co2"`
	Level       string `json:"level"`
}

// RecommendedPart is one line of the parts-to-change table.
type RecommendedPart struct {
	PartNumber  string `json:"partNumber"`
	Description string `json:"description"`
}

// UnmarshalJSON accepts partNumber, name and the legacy part_number key, in that order of precedence.
func (p *RecommendedPart) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = RecommendedPart{}
	for _, key := range []string{"partNumber", "name", "part_number"} {
		if v := strings.TrimSpace(cast.ToString(raw[key])); v != "" {
			p.PartNumber = v
			break
		}
	}
	p.Description = cast.ToString(raw["description"])
	return nil
}

// VisitLabel is the service visit as captured upstream: an ordinal word or a number.
type VisitLabel string

// UnmarshalJSON accepts both JSON strings and JSON numbers.
func (v *VisitLabel) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if f, ok := raw.(float64); ok && f == float64(int64(f)) {
		*v = VisitLabel(cast.ToString(int64(f)))
		return nil
	}
	*v = VisitLabel(cast.ToString(raw))
	return nil
}

// MaintenanceReportData is the report model: everything one maintenance report prints.
type MaintenanceReportData struct {
	CinemaName          string     `json:"cinemaName"`
	Date                string     `json:"date"`
	Address             string     `json:"address"`
	ContactDetails      string     `json:"contactDetails"`
	Location            string     `json:"location"`
	ScreenNumber        string     `json:"screenNumber"`
	ServiceVisit        VisitLabel `json:"serviceVisit"`
	ProjectorModel      string     `json:"projectorModel"`
	SerialNumber        string     `json:"serialNumber"`
	RunningHours        string     `json:"runningHours"`
	ReplacementRequired string     `json:"replacementRequired"`
	Environment         string     `json:"environment,omitempty"`
	StartTime           string     `json:"startTime,omitempty"`
	EndTime             string     `json:"endTime,omitempty"`

	// Opticals
	Reflector     StatusItem `json:"reflector"`
	UVFilter      StatusItem `json:"uvFilter"`
	IntegratorRod StatusItem `json:"integratorRod"`
	ColdMirror    StatusItem `json:"coldMirror"`
	FoldMirror    StatusItem `json:"foldMirror"`

	// Electronics
	TouchPanel StatusItem `json:"touchPanel"`
	EVBBoard   StatusItem `json:"evbBoard"`
	IMCBBoard  StatusItem `json:"imcbBoard"`
	PIBBoard   StatusItem `json:"pibBoard"`
	ICPBoard   StatusItem `json:"icpBoard"`
	IMB2Board  StatusItem `json:"imb2Board"`

	SerialNumberVerified StatusItem `json:"serialNumberVerified"`
	CoolantLevelColor    StatusItem `json:"coolantLevelColor"`
	AirIntakeLADRAD      StatusItem `json:"airIntakeLadRad"`

	// Light engine test pattern
	WhiteTest StatusItem `json:"whiteTest"`
	RedTest   StatusItem `json:"redTest"`
	GreenTest StatusItem `json:"greenTest"`
	BlueTest  StatusItem `json:"blueTest"`
	BlackTest StatusItem `json:"blackTest"`

	// Mechanical
	ACBlowerVane          StatusItem `json:"acBlowerVane"`
	ExtractorVane         StatusItem `json:"extractorVane"`
	ExhaustCFM            StatusItem `json:"exhaustCfm"`
	LightEngineFans       StatusItem `json:"lightEngineFans"`
	CardCageFans          StatusItem `json:"cardCageFans"`
	RadiatorFanPump       StatusItem `json:"radiatorFanPump"`
	ConnectorHosePump     StatusItem `json:"connectorHosePump"`
	SecurityLampHouseLock StatusItem `json:"securityLampHouseLock"`

	LampLOCMechanism StatusItem `json:"lampLocMechanism"`

	LampModel               string `json:"lampModel"`
	LampTotalRunningHours   string `json:"lampTotalRunningHours"`
	LampCurrentRunningHours string `json:"lampCurrentRunningHours"`

	PVVsN string `json:"pvVsN"`
	PVVsE string `json:"pvVsE"`
	NVVsE string `json:"nvVsE"`

	FLBeforePM string `json:"flBeforePM"`
	FLAfterPM  string `json:"flAfterPM"`

	SoftwareVersion    string `json:"softwareVersion"`
	ContentPlayerModel string `json:"contentPlayerModel"`
	ACStatus           string `json:"acStatus"`
	LEStatusDuringPM   string `json:"leStatusDuringPM"`

	MCGD     MCGDData `json:"mcgdData"`
	CIEXYZ2K CIEXYZ   `json:"cieXyz2K"`
	CIEXYZ4K CIEXYZ   `json:"cieXyz4K"`

	ScreenInfo      ScreenInfo      `json:"screenInfo"`
	ImageEvaluation ImageEvaluation `json:"imageEvaluation"`
	AirPollution    AirPollution    `json:"airPollution"`

	RecommendedParts []RecommendedPart `json:"recommendedParts,omitempty"`

	Remarks                 string `json:"remarks"`
	LightEngineSerialNumber string `json:"lightEngineSerialNumber"`
	EngineerName            string `json:"engineerName"`
	SiteInChargeName        string `json:"siteInChargeName"`

	EngineerSignatureURL string `json:"engineerSignatureUrl,omitempty"`
	SiteSignatureURL     string `json:"siteSignatureUrl,omitempty"`
}
