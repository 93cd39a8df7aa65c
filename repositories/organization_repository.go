// repositories/organization_repository.go
package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kimlik.link/configs/configsdatabase"
	"kimlik.link/models"
)

// IOrganizationRepository kurum kaydı için veritabanı arayüzü.
type IOrganizationRepository interface {
	Create(ctx context.Context, org *models.Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	GetFirst(ctx context.Context) (*models.Organization, error)
	Update(ctx context.Context, org *models.Organization) error
	UpdateFields(ctx context.Context, id uuid.UUID, data map[string]interface{}) error
}

// OrganizationRepository IOrganizationRepository arayüzünü uygular.
type OrganizationRepository struct {
	base IBaseRepository[models.Organization]
	db   *gorm.DB
}

// NewOrganizationRepository yeni bir OrganizationRepository örneği oluşturur.
func NewOrganizationRepository() IOrganizationRepository {
	return NewOrganizationRepositoryTx(configsdatabase.GetDB())
}

// NewOrganizationRepositoryTx verilen transaction üzerinde çalışan örnek kurar.
func NewOrganizationRepositoryTx(db *gorm.DB) IOrganizationRepository {
	return &OrganizationRepository{base: NewBaseRepository[models.Organization](db), db: db}
}

func (r *OrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	return r.base.Create(ctx, org)
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	return r.base.FindByID(ctx, id)
}

// GetFirst tek kurumlu kurulumlarda varsayılan kurumu getirir.
func (r *OrganizationRepository) GetFirst(ctx context.Context) (*models.Organization, error) {
	var org models.Organization
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&org).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *OrganizationRepository) Update(ctx context.Context, org *models.Organization) error {
	return r.base.Update(ctx, org)
}

func (r *OrganizationRepository) UpdateFields(ctx context.Context, id uuid.UUID, data map[string]interface{}) error {
	return r.base.UpdateFields(ctx, id, data)
}

// Arayüz uyumluluğu kontrolü
var _ IOrganizationRepository = (*OrganizationRepository)(nil)
