// repositories/generated_card_repository.go
package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kimlik.link/configs/configsdatabase"
	"kimlik.link/models"
)

// IGeneratedCardRepository üretilen kart çıktılarının kayıt defteri.
type IGeneratedCardRepository interface {
	Create(ctx context.Context, card *models.GeneratedCard) error
	GetByRecordID(ctx context.Context, recordID uuid.UUID) ([]models.GeneratedCard, error)
	DeleteByRecordID(ctx context.Context, recordID uuid.UUID) error
}

// GeneratedCardRepository IGeneratedCardRepository arayüzünü uygular.
type GeneratedCardRepository struct {
	base IBaseRepository[models.GeneratedCard]
	db   *gorm.DB
}

// NewGeneratedCardRepository yeni bir örnek oluşturur.
func NewGeneratedCardRepository() IGeneratedCardRepository {
	return NewGeneratedCardRepositoryTx(configsdatabase.GetDB())
}

// NewGeneratedCardRepositoryTx verilen transaction üzerinde çalışan örnek kurar.
func NewGeneratedCardRepositoryTx(db *gorm.DB) IGeneratedCardRepository {
	return &GeneratedCardRepository{base: NewBaseRepository[models.GeneratedCard](db), db: db}
}

func (r *GeneratedCardRepository) Create(ctx context.Context, card *models.GeneratedCard) error {
	return r.base.Create(ctx, card)
}

// GetByRecordID kaydın üretilmiş çıktılarını yeniden eskiye listeler.
func (r *GeneratedCardRepository) GetByRecordID(ctx context.Context, recordID uuid.UUID) ([]models.GeneratedCard, error) {
	var cards []models.GeneratedCard
	err := r.db.WithContext(ctx).
		Where("record_id = ?", recordID).
		Order("created_at DESC").
		Find(&cards).Error
	return cards, err
}

// DeleteByRecordID kayıt silinirken çıktı geçmişini temizler.
func (r *GeneratedCardRepository) DeleteByRecordID(ctx context.Context, recordID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("record_id = ?", recordID).
		Delete(&models.GeneratedCard{}).Error
}

// Arayüz uyumluluğu kontrolü
var _ IGeneratedCardRepository = (*GeneratedCardRepository)(nil)
