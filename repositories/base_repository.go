// repositories/base_repository.go
package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kimlik.link/models"
	"kimlik.link/pkg/queryparams"
)

// ErrNotFound kayıt bulunamadığında dönen ortak repository hatasıdır.
// Servis katmanı bunu kendi tipli hatasına çevirir.
var ErrNotFound = errors.New("kayıt bulunamadı")

// IBaseRepository tüm modeller için ortak CRUD arayüzüdür.
type IBaseRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	Update(ctx context.Context, entity *T) error
	UpdateFields(ctx context.Context, id uuid.UUID, data map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetCount(ctx context.Context) (int64, error)
	GetAllPaginated(ctx context.Context, params queryparams.ListParams) ([]T, int64, error)
	SetAllowedSortColumns(columns []string)
}

// BaseRepository IBaseRepository'nin GORM uygulamasıdır.
type BaseRepository[T any] struct {
	db          *gorm.DB
	allowedSort map[string]bool
}

// NewBaseRepository verilen DB/transaction üzerinde bir base repo kurar.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{
		db:          db,
		allowedSort: map[string]bool{"created_at": true},
	}
}

// SetAllowedSortColumns sıralamaya izin verilen sütunları belirler.
// Liste dışı bir sütun istenirse created_at'a düşülür.
func (r *BaseRepository[T]) SetAllowedSortColumns(columns []string) {
	r.allowedSort = make(map[string]bool, len(columns))
	for _, c := range columns {
		r.allowedSort[c] = true
	}
}

func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// Update tam nesne kaydıdır (Save); hook'lar çalışır.
func (r *BaseRepository[T]) Update(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

// UpdateFields yalnızca verilen sütunları günceller.
func (r *BaseRepository[T]) UpdateFields(ctx context.Context, id uuid.UUID, data map[string]interface{}) error {
	var entity T
	result := r.db.WithContext(ctx).Model(&entity).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BaseRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	var entity T
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BaseRepository[T]) GetCount(ctx context.Context) (int64, error) {
	var entity T
	var count int64
	err := r.db.WithContext(ctx).Model(&entity).Count(&count).Error
	return count, err
}

// GetAllPaginated sayfalanmış düz listedir; filtre gereken modeller
// kendi repository'lerinde özel metod yazar.
func (r *BaseRepository[T]) GetAllPaginated(ctx context.Context, params queryparams.ListParams) ([]T, int64, error) {
	var entities []T
	var entity T
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&entity)
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return entities, 0, nil
	}

	err := query.
		Order(r.orderClause(params)).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&entities).Error
	return entities, totalCount, err
}

// orderClause izinli sütun + yön birleşimini kurar.
func (r *BaseRepository[T]) orderClause(params queryparams.ListParams) string {
	sortBy := params.SortBy
	if !r.allowedSort[sortBy] {
		sortBy = "created_at"
	}
	orderBy := strings.ToLower(params.OrderBy)
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = queryparams.DefaultOrderBy
	}
	return fmt.Sprintf("%s %s", sortBy, orderBy)
}

// Kullanılan model tipleri için derleme zamanı kontrolü.
var _ IBaseRepository[models.Template] = (*BaseRepository[models.Template])(nil)
