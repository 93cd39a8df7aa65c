package routes

import (
	panel_handlers "kimlik.link/handlers/panel"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes /panel altındaki yönetim rotalarını tanımlar.
func registerPanelRoutes(app *fiber.App, svc Services) {
	// Handler instance'larını başta oluştur
	templateHandler := panel_handlers.NewPanelTemplateHandler(svc.Templates, svc.Organizations)
	recordHandler := panel_handlers.NewPanelRecordHandler(svc.Records, svc.Organizations)
	organizationHandler := panel_handlers.NewPanelOrganizationHandler(svc.Organizations)
	exportHandler := panel_handlers.NewPanelExportHandler(svc.Exports)

	panelGroup := app.Group("/panel")

	// --- Panel Ana Sayfa ---
	panelGroup.Get("/stats", organizationHandler.Stats) // GET /panel/stats

	// --- Kurum Bilgileri ---
	panelGroup.Get("/organization", organizationHandler.GetOrganization)              // GET /panel/organization
	panelGroup.Put("/organization", organizationHandler.UpdateOrganization)           // PUT /panel/organization
	panelGroup.Post("/organization/logo", organizationHandler.UploadLogo)             // POST /panel/organization/logo
	panelGroup.Post("/organization/signature", organizationHandler.UploadSignature)   // POST /panel/organization/signature

	// --- Kart Şablonları ---
	panelGroup.Get("/templates", templateHandler.ListTemplates)          // GET /panel/templates
	panelGroup.Post("/templates", templateHandler.CreateTemplate)        // POST /panel/templates
	panelGroup.Get("/templates/:id", templateHandler.GetTemplate)        // GET /panel/templates/{id}
	panelGroup.Put("/templates/:id", templateHandler.UpdateTemplate)     // PUT /panel/templates/{id}
	panelGroup.Delete("/templates/:id", templateHandler.DeleteTemplate)  // DELETE /panel/templates/{id}

	// --- Editör: alan düzeni, ezme, arka planlar ---
	panelGroup.Put("/templates/:id/fields", templateHandler.SaveFields)                       // PUT /panel/templates/{id}/fields
	panelGroup.Put("/templates/:id/override", templateHandler.SaveOverride)                   // PUT /panel/templates/{id}/override
	panelGroup.Post("/templates/:id/background/:side", templateHandler.UploadBackground)      // POST /panel/templates/{id}/background/{side}
	panelGroup.Delete("/templates/:id/background/:side", templateHandler.RemoveBackground)    // DELETE /panel/templates/{id}/background/{side}
	panelGroup.Post("/templates/:id/preview", templateHandler.UploadPreview)                  // POST /panel/templates/{id}/preview
	panelGroup.Get("/templates/:id/preview/:side?", exportHandler.TemplatePreview)            // GET /panel/templates/{id}/preview/{side}

	// --- Personel Kayıtları ---
	panelGroup.Get("/records", recordHandler.ListRecords)         // GET /panel/records
	panelGroup.Post("/records", recordHandler.CreateRecord)       // POST /panel/records
	panelGroup.Get("/records/:id", recordHandler.GetRecord)       // GET /panel/records/{id}
	panelGroup.Put("/records/:id", recordHandler.UpdateRecord)    // PUT /panel/records/{id}
	panelGroup.Delete("/records/:id", recordHandler.DeleteRecord) // DELETE /panel/records/{id}

	panelGroup.Put("/records/:id/template", recordHandler.AssignTemplate)      // PUT /panel/records/{id}/template
	panelGroup.Post("/records/:id/photo", recordHandler.UploadPhoto)           // POST /panel/records/{id}/photo
	panelGroup.Post("/records/:id/signature", recordHandler.UploadSignature)   // POST /panel/records/{id}/signature

	// --- Kart Üretimi ---
	panelGroup.Get("/records/:id/card/:side?", exportHandler.RecordPNG) // GET /panel/records/{id}/card/{side}
	panelGroup.Get("/records/:id/card.pdf", exportHandler.RecordPDF)    // GET /panel/records/{id}/card.pdf
	panelGroup.Get("/records/:id/cards", exportHandler.GenerationHistory) // GET /panel/records/{id}/cards
	panelGroup.Post("/export/batch", exportHandler.BatchPDF)            // POST /panel/export/batch
}
