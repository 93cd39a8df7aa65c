package seeders

import (
	"errors"

	"kimlik.link/configs/configslog"
	"kimlik.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedDefaultOrganization tek kurumlu kurulumun varsayılan kurumunu
// oluşturur. Kurum zaten varsa dokunulmaz; bilgiler panelden güncellenir.
func SeedDefaultOrganization(db *gorm.DB) error {
	configslog.SLog.Info("Varsayılan kurum kontrol ediliyor...")

	var existing models.Organization
	result := db.Order("created_at ASC").First(&existing)
	if result.Error == nil {
		configslog.SLog.Debugf("Kurum '%s' zaten mevcut, seed atlanıyor.", existing.Name)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Kurum kontrol edilirken veritabanı hatası", zap.Error(result.Error))
		return result.Error
	}

	org := models.Organization{
		Name:           "San Isidro National High School",
		DepartmentName: "Department of Education",
		PrimaryColor:   "#1a4d8f",
		SecondaryColor: "#f0f4fa",
	}
	if err := db.Create(&org).Error; err != nil {
		configslog.Log.Error("Varsayılan kurum oluşturulamadı", zap.Error(err))
		return err
	}

	configslog.SLog.Infof("Varsayılan kurum oluşturuldu: %s (ID: %s)", org.Name, org.ID)
	return nil
}
