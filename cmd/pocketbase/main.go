package main

import (
	"context"
	"log"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"projectorcare/internal/config"
	"projectorcare/internal/handlers"
	"projectorcare/internal/projectors"
	"projectorcare/internal/schedules"
	"projectorcare/internal/servicerecords"
	"projectorcare/internal/sites"
	"projectorcare/services/report"
)

func main() {
	app := pocketbase.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	handlers.InitLogger(app, cfg.LogLevel)
	handlers.InitErrorHandler(app)

	gen := report.NewGenerator(cfg.ReportOptions()...)

	sites.RegisterHooks(app)
	servicerecords.RegisterHooks(app, gen, servicerecords.FileURL(cfg.BaseURL))
	projectors.RegisterHooks(app)
	schedules.RegisterHooks(app, cfg.Letterhead, loadScheduleLogo(cfg))
	serveStatic(app)

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// loadScheduleLogo reuses the left report logo on the schedule sheet.
func loadScheduleLogo(cfg *config.Config) []byte {
	if cfg.LogoLeft == "" {
		return nil
	}
	logo, err := report.NewSourceLoader(cfg.AssetTimeout).Load(context.Background(), cfg.LogoLeft)
	if err != nil {
		handlers.LogWarn("Schedule sheet logo unavailable", "source", cfg.LogoLeft, "error", err.Error())
		return nil
	}
	return logo
}

func serveStatic(app *pocketbase.PocketBase) {
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// serves static files from the provided public dir (if exists)
		se.Router.GET("/{path...}", apis.Static(os.DirFS("./pb_public"), false))
		return se.Next()
	})
}
