// repositories/record_repository.go
package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kimlik.link/configs/configsdatabase"
	"kimlik.link/configs/configslog"
	"kimlik.link/models"
	"kimlik.link/pkg/queryparams"
)

// IRecordRepository personel kayıtları için veritabanı arayüzü.
type IRecordRepository interface {
	Create(ctx context.Context, record *models.Record) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Record, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Record, error)
	GetAllByOrganizationPaginated(ctx context.Context, orgID uuid.UUID, params queryparams.ListParams) ([]models.Record, int64, error)
	Update(ctx context.Context, record *models.Record) error
	UpdateFields(ctx context.Context, id uuid.UUID, data map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByOrganization(ctx context.Context, orgID uuid.UUID) (int64, error)
}

// RecordRepository IRecordRepository arayüzünü uygular.
type RecordRepository struct {
	base IBaseRepository[models.Record]
	db   *gorm.DB
}

// NewRecordRepository yeni bir RecordRepository örneği oluşturur.
func NewRecordRepository() IRecordRepository {
	return NewRecordRepositoryTx(configsdatabase.GetDB())
}

// NewRecordRepositoryTx verilen transaction üzerinde çalışan örnek kurar.
func NewRecordRepositoryTx(db *gorm.DB) IRecordRepository {
	base := NewBaseRepository[models.Record](db)
	base.SetAllowedSortColumns([]string{"created_at", "updated_at", "last_name", "first_name", "employee_no"})
	return &RecordRepository{base: base, db: db}
}

func (r *RecordRepository) Create(ctx context.Context, record *models.Record) error {
	return r.base.Create(ctx, record)
}

func (r *RecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Record, error) {
	return r.base.FindByID(ctx, id)
}

// GetByIDs toplu dışa aktarım için kayıtları tek sorguda getirir.
// Dönen dilim istenen ID sırasını korur; bulunamayanlar atlanır.
func (r *RecordRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []models.Record
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		configslog.Log.Error("RecordRepository.GetByIDs: DB error", zap.Int("count", len(ids)), zap.Error(err))
		return nil, err
	}

	byID := make(map[uuid.UUID]models.Record, len(found))
	for _, rec := range found {
		byID[rec.ID] = rec
	}
	ordered := make([]models.Record, 0, len(found))
	for _, id := range ids {
		if rec, ok := byID[id]; ok {
			ordered = append(ordered, rec)
		}
	}
	return ordered, nil
}

// GetAllByOrganizationPaginated kuruma ait kayıtları listeler.
// İsim araması ad/soyad/sicil üzerinde büyük-küçük harf duyarsızdır.
func (r *RecordRepository) GetAllByOrganizationPaginated(ctx context.Context, orgID uuid.UUID, params queryparams.ListParams) ([]models.Record, int64, error) {
	var results []models.Record
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&models.Record{}).
		Where("organization_id = ?", orgID)
	if params.Name != "" {
		search := "%" + params.Name + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR employee_no ILIKE ?",
			search, search, search,
		)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return results, 0, nil
	}

	orderColumn := "last_name"
	switch params.SortBy {
	case "created_at", "updated_at", "first_name", "employee_no":
		orderColumn = params.SortBy
	}
	orderBy := "asc"
	if params.OrderBy == "desc" {
		orderBy = "desc"
	}

	err := query.
		Order(orderColumn + " " + orderBy).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&results).Error
	return results, totalCount, err
}

func (r *RecordRepository) Update(ctx context.Context, record *models.Record) error {
	return r.base.Update(ctx, record)
}

func (r *RecordRepository) UpdateFields(ctx context.Context, id uuid.UUID, data map[string]interface{}) error {
	return r.base.UpdateFields(ctx, id, data)
}

func (r *RecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.base.Delete(ctx, id)
}

func (r *RecordRepository) CountByOrganization(ctx context.Context, orgID uuid.UUID) (int64, error) {
	if orgID == uuid.Nil {
		return 0, errors.New("geçersiz kurum ID")
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Record{}).
		Where("organization_id = ?", orgID).Count(&count).Error
	return count, err
}

// Arayüz uyumluluğu kontrolü
var _ IRecordRepository = (*RecordRepository)(nil)
