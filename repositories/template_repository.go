// repositories/template_repository.go
package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kimlik.link/configs/configsdatabase"
	"kimlik.link/configs/configslog"
	"kimlik.link/models"
	"kimlik.link/pkg/queryparams"
)

// ITemplateRepository şablon veritabanı işlemleri için arayüz.
type ITemplateRepository interface {
	Create(ctx context.Context, template *models.Template) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Template, error)
	GetAllByOrganizationPaginated(ctx context.Context, orgID uuid.UUID, params queryparams.ListParams) ([]models.Template, int64, error)
	Update(ctx context.Context, template *models.Template) error
	UpdateFields(ctx context.Context, id uuid.UUID, data map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByOrganization(ctx context.Context, orgID uuid.UUID) (int64, error)
	ReplaceFields(ctx context.Context, templateID uuid.UUID, fields []models.Field) error
	SaveOverride(ctx context.Context, override *models.OrganizationOverride) error
	DeleteOverride(ctx context.Context, templateID uuid.UUID) error
}

// TemplateRepository ITemplateRepository arayüzünü uygular.
type TemplateRepository struct {
	base IBaseRepository[models.Template]
	db   *gorm.DB
}

// NewTemplateRepository yeni bir TemplateRepository örneği oluşturur.
func NewTemplateRepository() ITemplateRepository {
	return NewTemplateRepositoryTx(configsdatabase.GetDB())
}

// NewTemplateRepositoryTx verilen transaction üzerinde çalışan örnek kurar.
func NewTemplateRepositoryTx(db *gorm.DB) ITemplateRepository {
	base := NewBaseRepository[models.Template](db)
	base.SetAllowedSortColumns([]string{"created_at", "updated_at", "name"})
	return &TemplateRepository{base: base, db: db}
}

func (r *TemplateRepository) Create(ctx context.Context, template *models.Template) error {
	return r.base.Create(ctx, template)
}

// GetByID şablonu alanları (çizim sırasına göre) ve kurum ezmesiyle getirir.
func (r *TemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Template, error) {
	var template models.Template
	err := r.db.WithContext(ctx).
		Preload("Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order("fields.sort_order ASC")
		}).
		Preload("Override").
		First(&template, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		configslog.Log.Error("TemplateRepository.GetByID: DB error", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}
	return &template, nil
}

// GetAllByOrganizationPaginated kuruma ait şablonları listeler.
// Alanlar liste görünümünde gerekmediği için preload edilmez.
func (r *TemplateRepository) GetAllByOrganizationPaginated(ctx context.Context, orgID uuid.UUID, params queryparams.ListParams) ([]models.Template, int64, error) {
	var results []models.Template
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&models.Template{}).
		Where("organization_id = ?", orgID)
	if params.Name != "" {
		query = query.Where("name ILIKE ?", "%"+params.Name+"%")
	}

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return results, 0, nil
	}

	err := query.
		Order("created_at DESC").
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&results).Error
	return results, totalCount, err
}

func (r *TemplateRepository) Update(ctx context.Context, template *models.Template) error {
	return r.base.Update(ctx, template)
}

func (r *TemplateRepository) UpdateFields(ctx context.Context, id uuid.UUID, data map[string]interface{}) error {
	return r.base.UpdateFields(ctx, id, data)
}

func (r *TemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.base.Delete(ctx, id)
}

func (r *TemplateRepository) CountByOrganization(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Template{}).
		Where("organization_id = ?", orgID).Count(&count).Error
	return count, err
}

// ReplaceFields şablonun alan kümesini editörden gelen son durumla
// eşitler: gelen alanlar ID üzerinden upsert edilir, listede olmayan
// mevcut alanlar silinir. Tamamı tek transaction'dır; yarım kayıt kalmaz.
func (r *TemplateRepository) ReplaceFields(ctx context.Context, templateID uuid.UUID, fields []models.Field) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keepIDs := make([]uuid.UUID, 0, len(fields))
		for i := range fields {
			fields[i].TemplateID = templateID
			fields[i].SortOrder = i
			if fields[i].ID == uuid.Nil {
				fields[i].ID = uuid.New()
			}
			keepIDs = append(keepIDs, fields[i].ID)
		}

		// Listede olmayan alanları sil (editörde kaldırılmışlar).
		del := tx.Where("template_id = ?", templateID)
		if len(keepIDs) > 0 {
			del = del.Where("id NOT IN ?", keepIDs)
		}
		if err := del.Delete(&models.Field{}).Error; err != nil {
			configslog.Log.Error("ReplaceFields: eski alanlar silinemedi",
				zap.String("template_id", templateID.String()), zap.Error(err))
			return err
		}

		if len(fields) == 0 {
			return nil
		}

		// ID çakışmasında tüm sütunlar güncellenir (upsert).
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&fields).Error; err != nil {
			configslog.Log.Error("ReplaceFields: alanlar yazılamadı",
				zap.String("template_id", templateID.String()), zap.Error(err))
			return err
		}
		return nil
	})
}

// SaveOverride şablonun kurum ezmesini yazar (şablon başına tek satır).
func (r *TemplateRepository) SaveOverride(ctx context.Context, override *models.OrganizationOverride) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "template_id"}},
		UpdateAll: true,
	}).Create(override).Error
}

// DeleteOverride şablonun ezmesini kaldırır; yoksa hata değildir.
func (r *TemplateRepository) DeleteOverride(ctx context.Context, templateID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("template_id = ?", templateID).
		Delete(&models.OrganizationOverride{}).Error
}

// Arayüz uyumluluğu kontrolü
var _ ITemplateRepository = (*TemplateRepository)(nil)
