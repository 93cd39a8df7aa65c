package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"kimlik.link/configs"
	"kimlik.link/configs/configsdatabase"
	"kimlik.link/configs/configslog"
	"kimlik.link/pkg/blobstore"
	"kimlik.link/pkg/render"
	"kimlik.link/routes"
	"kimlik.link/services"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	cfg := configs.Load()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	store, err := blobstore.NewDiskStore(cfg.StorageRoot, cfg.AssetBaseURL)
	if err != nil {
		configslog.Log.Fatal("Blob deposu açılamadı", zap.String("root", cfg.StorageRoot), zap.Error(err))
	}

	renderer, err := render.New(store, cfg.RenderScale)
	if err != nil {
		configslog.Log.Fatal("Çizici kurulamadı", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:   "kimlik.link",
		BodyLimit: 32 * 1024 * 1024, // Arka plan görselleri ve toplu istekler için
	})

	// Depodaki görseller (logo, fotoğraf, arka plan) doğrudan servis edilir.
	app.Static("/assets", cfg.StorageRoot)

	routes.SetupRoutes(app, routes.Services{
		Templates:     services.NewTemplateService(store),
		Records:       services.NewRecordService(store),
		Organizations: services.NewOrganizationService(store),
		Exports:       services.NewExportService(renderer, store),
	})

	// Graceful shutdown: bekleyen istekler tamamlanır, DB defer ile kapanır.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		configslog.SLog.Info("Kapatma sinyali alındı, sunucu durduruluyor...")
		if err := app.Shutdown(); err != nil {
			configslog.Log.Error("Sunucu düzgün kapatılamadı", zap.Error(err))
		}
	}()

	configslog.SLog.Infof("Sunucu dinlemede: :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}
}
