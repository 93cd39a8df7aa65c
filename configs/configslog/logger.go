package configslog

import (
	"os"

	"go.uber.org/zap"
)

// Log yapılandırılmış (structured) logger, SLog ise sugared logger'dır.
// InitLogger çağrılana kadar no-op olarak başlarlar, böylece testlerde
// panik olmaz.
var (
	Log  = zap.NewNop()
	SLog = Log.Sugar()
)

// InitLogger ortama göre zap logger'ı başlatır.
// APP_ENV=production ise JSON production encoder, aksi halde development
// encoder kullanılır.
func InitLogger() {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		// Logger kurulamazsa uygulama devam edemez.
		panic("logger başlatılamadı: " + err.Error())
	}

	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger buffer'daki logları flush eder. main'de defer ile çağrılır.
func SyncLogger() {
	_ = Log.Sync()
}
