package configsdatabase

import (
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"kimlik.link/configs"
	"kimlik.link/configs/configslog"
)

var db *gorm.DB

// InitDB GORM üzerinden Postgres bağlantısını kurar.
func InitDB() {
	cfg := configs.Get()
	if cfg.DatabaseURL == "" {
		configslog.Log.Fatal("DATABASE_URL tanımlı değil")
	}

	logLevel := gormlogger.Warn
	if cfg.Env == "production" {
		logLevel = gormlogger.Error
	}

	conn, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		configslog.Log.Fatal("Veritabanı bağlantısı kurulamadı", zap.Error(err))
	}

	db = conn
	configslog.SLog.Info("Veritabanı bağlantısı kuruldu.")
}

// GetDB aktif bağlantıyı döndürür.
func GetDB() *gorm.DB {
	if db == nil {
		configslog.Log.Fatal("Veritabanı başlatılmadan GetDB çağrıldı")
	}
	return db
}

// CloseDB alttaki sql.DB bağlantısını kapatır.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("sql.DB alınamadı", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Veritabanı bağlantısı kapatılamadı", zap.Error(err))
	}
}
