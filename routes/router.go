package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"

	"kimlik.link/services"
)

// Services rota kaydına verilen servis demetidir. Servisler depo ve
// çizici bağımlılıkları yüzünden main.go'da kurulur, buraya hazır gelir.
type Services struct {
	Templates     services.ITemplateService
	Records       services.IRecordService
	Organizations services.IOrganizationService
	Exports       services.IExportService
}

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App, svc Services) {
	// --- Genel Middleware'ler ---
	app.Use(recoverMiddleware.New()) // Panic yakalama
	app.Use(logger.New())            // İstek loglama

	// --- Rota Grupları ---
	registerPanelRoutes(app, svc) // /panel rotaları

	// --- 404 Handler ---
	// En sonda, eşleşmeyen tüm rotaları yakalar.
	app.Use(notFoundHandler)
}

func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Kaynak bulunamadı"})
}
