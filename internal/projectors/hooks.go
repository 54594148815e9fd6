package projectors

import (
	"strings"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"projectorcare/internal/handlers"
	"projectorcare/services/report"
)

// RegisterHooks keeps projector service fields and site_reports in step with service records
func RegisterHooks(app *pocketbase.PocketBase) {
	updateOnServiceRecordChange(app)
	updateSiteReportOnProjectorChange(app)
}

// Service record observer (create/update/delete) -> projectors, site_reports
func updateOnServiceRecordChange(app *pocketbase.PocketBase) {
	handler := func(e *core.RecordEvent) error {
		original := e.Record.Original()
		for _, projectorID := range affectedIDs(e.Record, original, "projector") {
			if err := updateProjector(app, projectorID); err != nil {
				return err
			}
		}
		for _, siteID := range affectedIDs(e.Record, original, "site") {
			if err := updateSiteReport(app, siteID); err != nil {
				return err
			}
		}
		return e.Next()
	}
	app.OnRecordAfterCreateSuccess("service_records").BindFunc(handler)
	app.OnRecordAfterUpdateSuccess("service_records").BindFunc(handler)
	app.OnRecordAfterDeleteSuccess("service_records").BindFunc(handler)
}

// affectedIDs returns the relation id of the record and, when an update moved
// the record, the id it had before.
func affectedIDs(current, original ServiceRecord, key string) []string {
	var ids []string
	if id := current.GetString(key); id != "" {
		ids = append(ids, id)
	}
	if id := original.GetString(key); id != "" && id != current.GetString(key) {
		ids = append(ids, id)
	}
	return ids
}

// Projector observer (create/delete) -> site_reports
func updateSiteReportOnProjectorChange(app *pocketbase.PocketBase) {
	handler := func(e *core.RecordEvent) error {
		if err := updateSiteReport(app, e.Record.GetString("site")); err != nil {
			return err
		}
		return e.Next()
	}
	app.OnRecordAfterCreateSuccess("projectors").BindFunc(handler)
	app.OnRecordAfterDeleteSuccess("projectors").BindFunc(handler)
}

func updateProjector(app *pocketbase.PocketBase, projectorID string) error {
	projector, err := app.FindRecordById("projectors", projectorID)
	if err != nil {
		handlers.LogWarn("Projector not found for service record", "projector", projectorID)
		return nil
	}

	latest, err := app.FindRecordsByFilter("service_records", "projector = {:projector}", "-date,-created", 1, 0, dbx.Params{
		"projector": projectorID,
	})
	if err != nil {
		handlers.LogError(err, "Failed to fetch projector service records", "projector", projectorID)
		return handlers.InternalServerError("Failed to fetch projector service records", err, "projector", projectorID)
	}
	if len(latest) == 0 {
		// the last service record was deleted
		projector.Set("lastServiceDate", "")
		projector.Set("lastServiceVisit", "")
	} else {
		last := latest[0]
		projector.Set("lastServiceDate", last.GetDateTime("date"))
		projector.Set("lastServiceVisit", report.OrdinalVisit(last.Get("serviceVisit")))
		if hours := strings.TrimSpace(last.GetString("runningHours")); hours != "" {
			projector.Set("runningHours", hours)
		}
	}

	if err := app.SaveNoValidate(projector); err != nil {
		handlers.LogError(err, "Failed to save projector service fields", "projector", projectorID)
		return handlers.InternalServerError("Failed to save projector service fields", err, "projector", projectorID)
	}
	handlers.LogInfo("Projector service fields updated", "projector", projectorID, "lastServiceVisit", projector.GetString("lastServiceVisit"))
	return nil
}

func updateSiteReport(app *pocketbase.PocketBase, siteID string) error {
	if siteID == "" {
		return nil
	}

	collection, err := app.FindCollectionByNameOrId("site_reports")
	if err != nil {
		handlers.LogError(err, "Failed to find site_reports collection", "site", siteID)
		return handlers.InternalServerError("Failed to find site_reports collection", err, "site", siteID)
	}

	// Fetch or create site report
	siteReport, err := app.FindFirstRecordByFilter("site_reports", "site = {:site}", dbx.Params{
		"site": siteID,
	})
	if err != nil {
		handlers.LogInfo("No existing site report found, creating new", "site", siteID)
		siteReport = core.NewRecord(collection)
		siteReport.Set("site", siteID)
	}

	// metrics
	projectors, err := app.FindRecordsByFilter("projectors", "site = {:site}", "-created", 0, 0, dbx.Params{
		"site": siteID,
	})
	if err != nil {
		handlers.LogError(err, "Failed to fetch site projectors", "site", siteID)
		return handlers.InternalServerError("Failed to fetch site projectors", err, "site", siteID)
	}

	records, err := app.FindRecordsByFilter("service_records", "site = {:site}", "-date,-created", 0, 0, dbx.Params{
		"site": siteID,
	})
	if err != nil {
		handlers.LogError(err, "Failed to fetch site service records", "site", siteID)
		return handlers.InternalServerError("Failed to fetch site service records", err, "site", siteID)
	}

	stats := summarize(records)

	siteReport.Set("totalProjectors", len(projectors))
	siteReport.Set("totalServiceRecords", stats.total)
	siteReport.Set("pendingReplacements", stats.pendingReplacements)
	siteReport.Set("lastServiceDate", stats.lastServiceDate)

	if err := app.SaveNoValidate(siteReport); err != nil {
		handlers.LogError(err, "Failed to save site report", "site", siteID)
		return handlers.InternalServerError("Failed to save site report", err, "site", siteID)
	}

	handlers.LogInfo("Site report updated successfully", "site", siteID, "totalProjectors", len(projectors), "totalServiceRecords", stats.total, "pendingReplacements", stats.pendingReplacements)
	return nil
}

// ServiceRecord is the subset of a service record the site summary reads.
type ServiceRecord interface {
	GetString(key string) string
	Get(key string) any
}

type siteStats struct {
	total               int
	pendingReplacements int
	lastServiceDate     string
}

// summarize expects records newest first.
func summarize[R ServiceRecord](records []R) siteStats {
	stats := siteStats{total: len(records)}
	for _, r := range records {
		if report.NormalizeYesNo(r.Get("replacementRequired")) == "Yes" {
			stats.pendingReplacements++
		}
		if stats.lastServiceDate == "" {
			stats.lastServiceDate = r.GetString("date")
		}
	}
	return stats
}
