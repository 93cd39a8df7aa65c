package configs

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"kimlik.link/configs/configslog"
)

// App uygulamanın çalışma zamanı konfigürasyonudur.
// Ortam değişkenlerinden bir kez yüklenir; pkg altındaki saf paketler
// bu yapıyı değil, kendilerine verilen açık config struct'larını kullanır.
type App struct {
	Env          string
	Port         string
	DatabaseURL  string
	StorageRoot  string  // Blob deposunun kök dizini
	AssetBaseURL string  // Public asset URL ön eki (örn: http://localhost:3000/assets)
	RenderScale  float64 // Rasterleştirme çözünürlük çarpanı (pixelRatio karşılığı)
}

var app *App

// Load .env dosyasını okur ve App konfigürasyonunu hazırlar.
// .env bulunamazsa sadece ortam değişkenleri kullanılır.
func Load() *App {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Info(".env dosyası bulunamadı, ortam değişkenleri kullanılacak.")
	}

	scale := 3.0
	if raw := os.Getenv("RENDER_SCALE"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed > 0 {
			scale = parsed
		} else {
			configslog.SLog.Warnf("RENDER_SCALE değeri geçersiz (%q), varsayılan kullanılıyor.", raw)
		}
	}

	app = &App{
		Env:          envOrDefault("APP_ENV", "development"),
		Port:         envOrDefault("APP_PORT", "3000"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		StorageRoot:  envOrDefault("STORAGE_ROOT", "./storage"),
		AssetBaseURL: envOrDefault("ASSET_BASE_URL", "http://localhost:3000/assets"),
		RenderScale:  scale,
	}
	return app
}

// Get yüklenmiş konfigürasyonu döndürür; Load çağrılmamışsa yükler.
func Get() *App {
	if app == nil {
		return Load()
	}
	return app
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
