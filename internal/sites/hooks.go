package sites

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"projectorcare/internal/handlers"
)

// RegisterHooks Used for hooks related to sites collection
func RegisterHooks(app *pocketbase.PocketBase) {
	onCreateSiteRequest(app)
	onValidateSite(app)
}

func onCreateSiteRequest(app *pocketbase.PocketBase) {
	app.OnRecordCreateRequest("sites").BindFunc(func(e *core.RecordRequestEvent) error {
		info, err := e.RequestInfo()
		if err != nil {
			handlers.LogError(err, "Error while getting RequestInfo")
			return handlers.BadRequestError("Failed to get request info", err)
		}
		if info.Auth == nil || info.Auth.Id == "" {
			handlers.LogWarn("No authenticated user for site creation")
			return handlers.ForbiddenError("No authenticated user for site creation", nil)
		}

		e.Record.Set("createdBy", info.Auth.Id)
		handlers.LogInfo("Site creation request", "userId", info.Auth.Id)
		return e.Next()
	})
}

func onValidateSite(app *pocketbase.PocketBase) {
	validate := func(e *core.RecordEvent) error {
		site := siteFromRecord(e.Record)
		if err := site.Validate(); err != nil {
			return handlers.ValidationError("Invalid site", err, "name", site.Name)
		}
		return e.Next()
	}
	app.OnRecordCreate("sites").BindFunc(validate)
	app.OnRecordUpdate("sites").BindFunc(validate)
}

// Site holds the contact fields printed on every maintenance report of the site.
type Site struct {
	Name           string
	Address        string
	ContactDetails string
	Location       string
	Email          string
}

func siteFromRecord(r *core.Record) Site {
	return Site{
		Name:           strings.TrimSpace(r.GetString("name")),
		Address:        strings.TrimSpace(r.GetString("address")),
		ContactDetails: strings.TrimSpace(r.GetString("contactDetails")),
		Location:       strings.TrimSpace(r.GetString("location")),
		Email:          strings.TrimSpace(r.GetString("email")),
	}
}

// Validate checks the required contact fields.
func (s Site) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&s.Address, validation.Required),
		validation.Field(&s.ContactDetails, validation.Required),
		validation.Field(&s.Email, is.EmailFormat),
	)
}
