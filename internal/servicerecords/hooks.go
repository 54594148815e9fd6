package servicerecords

import (
	"fmt"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/filesystem"

	"projectorcare/internal/handlers"
	"projectorcare/services/report"
)

// RegisterHooks validates service records, attaches their maintenance report and
// exposes the report download and preview routes.
func RegisterHooks(app *pocketbase.PocketBase, gen *report.Generator, files FileURLFunc) {
	onValidateServiceRecord(app)
	onServiceRecordCreated(app, gen, files)
	registerRoutes(app, gen, files)
}

func onValidateServiceRecord(app *pocketbase.PocketBase) {
	app.OnRecordCreate(collectionName).BindFunc(func(e *core.RecordEvent) error {
		if err := validateRelations(app, e.Record.GetString("site"), e.Record.GetString("projector")); err != nil {
			return handlers.ValidationError("Invalid service record", err, "site", e.Record.GetString("site"), "projector", e.Record.GetString("projector"))
		}
		return e.Next()
	})
}

func validateRelations(app core.App, siteID, projectorID string) error {
	if err := (validation.Errors{
		"site":      validation.Validate(siteID, validation.Required),
		"projector": validation.Validate(projectorID, validation.Required),
	}).Filter(); err != nil {
		return err
	}

	if _, err := app.FindRecordById("sites", siteID); err != nil {
		return validation.Errors{"site": validation.NewError("invalid_site", fmt.Sprintf("Site '%s' not found", siteID))}
	}
	projector, err := app.FindRecordById("projectors", projectorID)
	if err != nil {
		return validation.Errors{"projector": validation.NewError("invalid_projector", fmt.Sprintf("Projector '%s' not found", projectorID))}
	}
	if owner := projector.GetString("site"); owner != "" && owner != siteID {
		return validation.Errors{"projector": validation.NewError("projector_site_mismatch", "The projector is not installed at the selected site")}
	}
	return nil
}

// The report is attached after the create succeeds so the uploaded signature
// files are already in storage.
func onServiceRecordCreated(app *pocketbase.PocketBase, gen *report.Generator, files FileURLFunc) {
	app.OnRecordAfterCreateSuccess(collectionName).BindFunc(func(e *core.RecordEvent) error {
		data := loadReportData(app, e.Record, files)
		pdfBytes, err := gen.Generate(e.Context, data)
		if err != nil {
			handlers.LogError(err, "Failed while generate maintenance report", "id", e.Record.Id)
			return e.Next()
		}

		file, err := filesystem.NewFileFromBytes(pdfBytes, reportFileName(e.Record.Id, data))
		if err != nil {
			handlers.LogError(err, "Failed while generate PDF from bytes", "id", e.Record.Id)
			return e.Next()
		}

		e.Record.Set("reportDoc", file)
		if err := app.SaveNoValidate(e.Record); err != nil {
			handlers.LogError(err, "Failed to attach maintenance report", "id", e.Record.Id)
			return e.Next()
		}

		handlers.LogInfo("Maintenance report attached", "id", e.Record.Id, "site", e.Record.GetString("site"), "bytes", len(pdfBytes))
		return e.Next()
	})
}

func registerRoutes(app *pocketbase.PocketBase, gen *report.Generator, files FileURLFunc) {
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/api/service-records/{id}/report", func(e *core.RequestEvent) error {
			return downloadReport(e, gen, files)
		}).Bind(apis.RequireAuth())

		se.Router.POST("/api/reports/preview", func(e *core.RequestEvent) error {
			return previewReport(e, gen)
		}).Bind(apis.RequireAuth())

		return se.Next()
	})
}

func downloadReport(e *core.RequestEvent, gen *report.Generator, files FileURLFunc) error {
	id := e.Request.PathValue("id")
	record, err := e.App.FindRecordById(collectionName, id)
	if err != nil {
		return handlers.NotFoundError("Service record not found", nil, "id", id)
	}

	info, err := e.RequestInfo()
	if err != nil {
		handlers.LogError(err, "Error while getting RequestInfo")
		return handlers.BadRequestError("Failed to get request info", err)
	}
	canAccess, err := e.App.CanAccessRecord(record, info, record.Collection().ViewRule)
	if !canAccess || err != nil {
		return handlers.ForbiddenError("You are not allowed to view this service record", nil, "id", id)
	}

	data := loadReportData(e.App, record, files)
	pdfBytes, err := gen.Generate(e.Request.Context(), data)
	if err != nil {
		handlers.LogError(err, "Failed while generate maintenance report", "id", id)
		return handlers.InternalServerError("Failed while generate maintenance report", err, "id", id)
	}

	e.Response.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", reportFileName(id, data)))
	return e.Blob(http.StatusOK, "application/pdf", pdfBytes)
}

func previewReport(e *core.RequestEvent, gen *report.Generator) error {
	var data report.MaintenanceReportData
	if err := e.BindBody(&data); err != nil {
		return handlers.BadRequestError("Invalid report body", validation.NewError("invalid_body", err.Error()))
	}
	if data.RecommendedParts == nil {
		data.RecommendedParts = []report.RecommendedPart{}
	}

	pdfBytes, err := gen.Generate(e.Request.Context(), &data)
	if err != nil {
		handlers.LogError(err, "Failed while generate report preview")
		return handlers.InternalServerError("Failed while generate report preview", err)
	}
	return e.Blob(http.StatusOK, "application/pdf", pdfBytes)
}

// loadReportData resolves the site and projector relations. A missing relation
// only blanks the fields it would have provided.
func loadReportData(app core.App, record *core.Record, files FileURLFunc) *report.MaintenanceReportData {
	var site, projector Record
	if id := record.GetString("site"); id != "" {
		if r, err := app.FindRecordById("sites", id); err == nil {
			site = r
		} else {
			handlers.LogWarn("Site not found for service record", "id", record.Id, "site", id)
		}
	}
	if id := record.GetString("projector"); id != "" {
		if r, err := app.FindRecordById("projectors", id); err == nil {
			projector = r
		} else {
			handlers.LogWarn("Projector not found for service record", "id", record.Id, "projector", id)
		}
	}
	return BuildReportData(record, site, projector, storedSignatures(app, record, files))
}

func reportFileName(id string, data *report.MaintenanceReportData) string {
	name := "maintenance-report-" + id
	if data != nil && data.Date != "" {
		name += "-" + strings.NewReplacer("/", "-", " ", "-").Replace(data.Date)
	}
	return name + ".pdf"
}
