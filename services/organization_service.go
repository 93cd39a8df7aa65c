// services/organization_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kimlik.link/configs/configslog"
	"kimlik.link/models"
	"kimlik.link/pkg/blobstore"
	"kimlik.link/repositories"
)

// OrganizationServiceError özel servis hataları
type OrganizationServiceError string

func (e OrganizationServiceError) Error() string { return string(e) }

const (
	ErrOrgNotFound        OrganizationServiceError = "kurum bulunamadı"
	ErrOrgUpdateFailed    OrganizationServiceError = "kurum güncellenemedi"
	ErrOrgNameRequired    OrganizationServiceError = "kurum adı zorunludur"
	ErrOrgAssetSaveFailed OrganizationServiceError = "kurum görseli kaydedilemedi"
)

// OrganizationInput kurum bilgisi güncelleme girdisidir.
type OrganizationInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Contact string `json:"contact"`
	Website string `json:"website"`

	DepartmentName  string `json:"department_name"`
	DivisionName    string `json:"division_name"`
	DivisionAddress string `json:"division_address"`
	DivisionCode    string `json:"division_code"`
	DivisionWebsite string `json:"division_website"`
	StationCode     string `json:"station_code"`

	SuperintendentName  string `json:"superintendent_name"`
	SuperintendentTitle string `json:"superintendent_title"`

	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
}

// PanelStats panel ana sayfasındaki sayaçlardır.
type PanelStats struct {
	Templates int64 `json:"templates"`
	Records   int64 `json:"records"`
}

// IOrganizationService kurum işlemleri için arayüz.
type IOrganizationService interface {
	GetDefault(ctx context.Context) (*models.Organization, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	Update(ctx context.Context, id uuid.UUID, input OrganizationInput) (*models.Organization, error)
	SetLogo(ctx context.Context, id uuid.UUID, filename string, content io.Reader) (string, error)
	SetSignature(ctx context.Context, id uuid.UUID, filename string, content io.Reader) (string, error)
	Stats(ctx context.Context, orgID uuid.UUID) (*PanelStats, error)
}

// OrganizationService IOrganizationService arayüzünü uygular.
type OrganizationService struct {
	repo         repositories.IOrganizationRepository
	templateRepo repositories.ITemplateRepository
	recordRepo   repositories.IRecordRepository
	store        blobstore.Store
}

// NewOrganizationService yeni bir OrganizationService örneği oluşturur.
func NewOrganizationService(store blobstore.Store) IOrganizationService {
	return &OrganizationService{
		repo:         repositories.NewOrganizationRepository(),
		templateRepo: repositories.NewTemplateRepository(),
		recordRepo:   repositories.NewRecordRepository(),
		store:        store,
	}
}

// GetDefault tek kurumlu kurulumun varsayılan kurumunu getirir.
func (s *OrganizationService) GetDefault(ctx context.Context) (*models.Organization, error) {
	org, err := s.repo.GetFirst(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, err
	}
	return org, nil
}

// GetByID kurumu getirir.
func (s *OrganizationService) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	org, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, err
	}
	return org, nil
}

// Update kurum bilgilerini günceller. Bu değerler şablon ezmesi olmayan
// tüm kartlara anında yansır.
func (s *OrganizationService) Update(ctx context.Context, id uuid.UUID, input OrganizationInput) (*models.Organization, error) {
	if input.Name == "" {
		return nil, ErrOrgNameRequired
	}

	org, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	org.Name = input.Name
	org.Address = input.Address
	org.Contact = input.Contact
	org.Website = input.Website
	org.DepartmentName = input.DepartmentName
	org.DivisionName = input.DivisionName
	org.DivisionAddress = input.DivisionAddress
	org.DivisionCode = input.DivisionCode
	org.DivisionWebsite = input.DivisionWebsite
	org.StationCode = input.StationCode
	org.SuperintendentName = input.SuperintendentName
	org.SuperintendentTitle = input.SuperintendentTitle
	org.PrimaryColor = input.PrimaryColor
	org.SecondaryColor = input.SecondaryColor

	if err := s.repo.Update(ctx, org); err != nil {
		configslog.Log.Error("Failed to update organization", zap.String("id", id.String()), zap.Error(err))
		return nil, ErrOrgUpdateFailed
	}
	configslog.SLog.Infof("Kurum bilgileri güncellendi: %s", org.Name)
	return org, nil
}

// SetLogo kurum logosunu depoya yazar.
func (s *OrganizationService) SetLogo(ctx context.Context, id uuid.UUID, filename string, content io.Reader) (string, error) {
	return s.setAsset(ctx, id, "logo", "logo_ref", filename, content)
}

// SetSignature yetkili imza görselini depoya yazar.
func (s *OrganizationService) SetSignature(ctx context.Context, id uuid.UUID, filename string, content io.Reader) (string, error) {
	return s.setAsset(ctx, id, "signature", "signature_ref", filename, content)
}

func (s *OrganizationService) setAsset(ctx context.Context, id uuid.UUID, kind, column, filename string, content io.Reader) (string, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return "", err
	}

	ref := fmt.Sprintf("organizations/%s/%s-%s", id, kind, filename)
	if err := s.store.Upload(ctx, ref, content); err != nil {
		configslog.Log.Error("Failed to upload organization asset", zap.String("ref", ref), zap.Error(err))
		return "", ErrOrgAssetSaveFailed
	}
	if err := s.repo.UpdateFields(ctx, id, map[string]interface{}{column: ref}); err != nil {
		return "", ErrOrgUpdateFailed
	}
	return s.store.URL(ref), nil
}

// Stats panel ana sayfası için şablon ve kayıt sayaçlarını toplar.
func (s *OrganizationService) Stats(ctx context.Context, orgID uuid.UUID) (*PanelStats, error) {
	templates, err := s.templateRepo.CountByOrganization(ctx, orgID)
	if err != nil {
		configslog.Log.Error("Failed to count templates", zap.String("org_id", orgID.String()), zap.Error(err))
		return nil, err
	}
	records, err := s.recordRepo.CountByOrganization(ctx, orgID)
	if err != nil {
		configslog.Log.Error("Failed to count records", zap.String("org_id", orgID.String()), zap.Error(err))
		return nil, err
	}
	return &PanelStats{Templates: templates, Records: records}, nil
}

var _ IOrganizationService = (*OrganizationService)(nil)
