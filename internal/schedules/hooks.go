package schedules

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"

	"projectorcare/internal/handlers"
	pdfgenerator "projectorcare/services/pdf"
	"projectorcare/services/report"
)

const dateLayout = "02-01-2006"

// RegisterHooks exposes the visit schedule sheet of a site
func RegisterHooks(app *pocketbase.PocketBase, letterhead report.Letterhead, logo []byte) {
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/api/sites/{id}/schedule", func(e *core.RequestEvent) error {
			return scheduleSheet(e, letterhead, logo)
		}).Bind(apis.RequireAuth())
		return se.Next()
	})
}

func scheduleSheet(e *core.RequestEvent, letterhead report.Letterhead, logo []byte) error {
	siteID := e.Request.PathValue("id")
	site, err := e.App.FindRecordById("sites", siteID)
	if err != nil {
		return handlers.NotFoundError("Site not found", nil, "site", siteID)
	}

	info, err := e.RequestInfo()
	if err != nil {
		handlers.LogError(err, "Error while getting RequestInfo")
		return handlers.BadRequestError("Failed to get request info", err)
	}
	if ok, err := e.App.CanAccessRecord(site, info, site.Collection().ViewRule); !ok || err != nil {
		return handlers.ForbiddenError("You are not allowed to view this site", nil, "site", siteID)
	}

	schedules, err := e.App.FindRecordsByFilter("service_schedules", "site = {:site}", "scheduledDate", 0, 0, dbx.Params{
		"site": siteID,
	})
	if err != nil {
		handlers.LogError(err, "Failed to fetch service schedules", "site", siteID)
		return handlers.InternalServerError("Failed to fetch service schedules", err, "site", siteID)
	}

	visits := make([]pdfgenerator.ScheduledVisit, 0, len(schedules))
	projectors := map[string]Record{}
	for _, s := range schedules {
		projectorID := s.GetString("projector")
		projector, seen := projectors[projectorID]
		if !seen {
			if r, err := e.App.FindRecordById("projectors", projectorID); err == nil {
				projector = r
			} else {
				handlers.LogWarn("Projector not found for schedule", "schedule", s.Id, "projector", projectorID)
			}
			projectors[projectorID] = projector
		}
		visits = append(visits, toVisit(s, projector))
	}

	name := site.GetString("name")
	pdfBytes, err := pdfgenerator.GenerateScheduleBytes(pdfgenerator.ScheduleData{
		Title:  name + " service schedule",
		Logo:   logo,
		Header: fmt.Sprintf("%s\n%s\n%s\n%s", letterhead.Name, letterhead.Address, letterhead.Phone, letterhead.Email),
		Visits: visits,
		Footer: strings.TrimSpace(site.GetString("address")),
	})
	if err != nil {
		return handlers.InternalServerError("Failed while generate schedule sheet", err, "site", siteID)
	}

	handlers.LogInfo("Schedule sheet generated", "site", siteID, "visits", len(visits))
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", pdfgenerator.SheetFileName(name)))
	return e.Blob(http.StatusOK, "application/pdf", pdfBytes)
}

// Record is the read side of the service_schedules and projectors records the sheet uses.
type Record interface {
	GetString(key string) string
	Get(key string) any
}

// toVisit builds one sheet row. projector may be nil.
func toVisit(schedule, projector Record) pdfgenerator.ScheduledVisit {
	v := pdfgenerator.ScheduledVisit{
		Date:     formatDate(schedule.GetString("scheduledDate")),
		Visit:    report.OrdinalVisit(schedule.Get("serviceVisit")),
		Engineer: schedule.GetString("engineerName"),
		Status:   strings.ToUpper(schedule.GetString("status")),
	}
	if projector != nil {
		v.Projector = projector.GetString("model")
		v.Serial = projector.GetString("serialNumber")
	}
	return v
}

func formatDate(raw string) string {
	t, err := cast.ToTimeE(raw)
	if err != nil || t.IsZero() {
		return raw
	}
	return t.Format(dateLayout)
}
