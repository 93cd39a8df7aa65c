package database

import (
	"kimlik.link/configs/configslog"
	"kimlik.link/database/migrations"
	"kimlik.link/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Initialize(db *gorm.DB, migrate bool, seed bool) {
	if !migrate && !seed {
		configslog.SLog.Info("Migrate veya seed bayrağı belirtilmedi, işlem yapılmayacak.")
		return
	}

	tx := db.Begin()
	if tx.Error != nil {
		configslog.Log.Fatal("Veritabanı transaction başlatılamadı", zap.Error(tx.Error))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			configslog.Log.Fatal("Veritabanı başlatma işlemi başarısız oldu (panic)", zap.Any("panic_info", r))
		} else if err := tx.Error; err != nil && err != gorm.ErrInvalidTransaction {
			configslog.SLog.Warn("Başlatma sırasında hata oluştuğu için işlem geri alınıyor.", zap.Error(err))
			rbErr := tx.Rollback().Error
			if rbErr != nil && rbErr != gorm.ErrInvalidTransaction {
				configslog.Log.Error("Rollback sırasında ek hata oluştu", zap.Error(rbErr))
			}
		}
	}()

	configslog.SLog.Info("Veritabanı başlatma işlemi başlıyor...")

	if migrate {
		configslog.SLog.Info("Migrasyonlar çalıştırılıyor...")
		if err := RunMigrationsInOrder(tx); err != nil {
			configslog.Log.Error("Migrasyon başarısız oldu", zap.Error(err))
			return
		}
		configslog.SLog.Info("Migrasyonlar tamamlandı.")
	} else {
		configslog.SLog.Info("Migrate bayrağı belirtilmedi, migrasyon adımı atlanıyor.")
	}

	if seed {
		configslog.SLog.Info("Seeder'lar çalıştırılıyor...")
		if err := CheckAndRunSeeders(tx); err != nil {
			configslog.Log.Error("Seeding başarısız oldu", zap.Error(err))
			return
		}
		configslog.SLog.Info("Seeder'lar tamamlandı.")
	} else {
		configslog.SLog.Info("Seed bayrağı belirtilmedi, seeder adımı atlanıyor.")
	}

	configslog.SLog.Info("İşlem commit ediliyor...")
	if err := tx.Commit().Error; err != nil {
		tx.Error = err
		configslog.Log.Error("Commit başarısız oldu", zap.Error(err))
		return
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başarıyla tamamlandı")
}

// RunMigrationsInOrder tabloları bağımlılık sırasına göre oluşturur:
// kayıtlar ve şablonlar kuruma, alanlar ve ezmeler şablona, üretilen
// kartlar kayda bağlıdır.
func RunMigrationsInOrder(db *gorm.DB) error {
	configslog.SLog.Info("Migrasyonlar sırayla çalıştırılıyor...")

	configslog.SLog.Info(" -> Organization migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateOrganizationsTable(db); err != nil {
		configslog.Log.Error("Organizations tablosu migrasyonu başarısız oldu", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Organization migrasyonları tamamlandı.")

	configslog.SLog.Info(" -> Template migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateTemplatesTables(db); err != nil {
		configslog.Log.Error("Templates tabloları migrasyonu başarısız oldu", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Template migrasyonları tamamlandı.")

	configslog.SLog.Info(" -> Field migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateFieldsTable(db); err != nil {
		configslog.Log.Error("Fields tablosu migrasyonu başarısız oldu", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Field migrasyonları tamamlandı.")

	configslog.SLog.Info(" -> Record migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateRecordsTable(db); err != nil {
		configslog.Log.Error("Records tablosu migrasyonu başarısız oldu", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Record migrasyonları tamamlandı.")

	configslog.SLog.Info(" -> GeneratedCard migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateGeneratedCardsTable(db); err != nil {
		configslog.Log.Error("Generated_cards tablosu migrasyonu başarısız oldu", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> GeneratedCard migrasyonları tamamlandı.")

	configslog.SLog.Info("Tüm migrasyonlar başarıyla çalıştırıldı.")
	return nil
}

func CheckAndRunSeeders(db *gorm.DB) error {
	configslog.SLog.Info(" -> Organization seeder çalıştırılıyor...")
	if err := seeders.SeedDefaultOrganization(db); err != nil {
		configslog.Log.Error("Organizations tablosu seed edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Organization seeder tamamlandı.")

	configslog.SLog.Info("Tüm seeder'lar başarıyla kontrol edildi/çalıştırıldı.")
	return nil
}
