// services/record_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kimlik.link/configs/configslog"
	"kimlik.link/models"
	"kimlik.link/pkg/blobstore"
	"kimlik.link/pkg/queryparams"
	"kimlik.link/repositories"
)

// RecordServiceError özel servis hataları
type RecordServiceError string

func (e RecordServiceError) Error() string { return string(e) }

const (
	ErrRecordNotFound       RecordServiceError = "kayıt bulunamadı"
	ErrRecordCreationFailed RecordServiceError = "kayıt oluşturulamadı"
	ErrRecordUpdateFailed   RecordServiceError = "kayıt güncellenemedi"
	ErrRecordDeletionFailed RecordServiceError = "kayıt silinemedi"
	ErrRecInvalidInput      RecordServiceError = "geçersiz girdi verisi"
	ErrRecNameRequired      RecordServiceError = "ad ve soyad zorunludur"
	ErrRecAssetSaveFailed   RecordServiceError = "kayıt görseli kaydedilemedi"
)

// RecordInput kayıt oluşturma/güncelleme girdisidir.
type RecordInput struct {
	TemplateID *uuid.UUID `json:"template_id"`

	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
	NameSuffix string `json:"name_suffix"`

	Position   string     `json:"position"`
	EmployeeNo string     `json:"employee_no"`
	Birthdate  *time.Time `json:"birthdate"`

	SSSGSISNumber    string `json:"sss_gsis_number"`
	TINNumber        string `json:"tin_number"`
	PhilHealthNumber string `json:"philhealth_number"`
	PagIBIGNumber    string `json:"pagibig_number"`

	EmergencyContactName    string `json:"emergency_contact_name"`
	EmergencyContactPhone   string `json:"emergency_contact_phone"`
	EmergencyContactAddress string `json:"emergency_contact_address"`
}

// IRecordService personel kaydı işlemleri için arayüz.
type IRecordService interface {
	CreateRecord(ctx context.Context, orgID uuid.UUID, input RecordInput) (*models.Record, error)
	GetRecordByID(ctx context.Context, id uuid.UUID) (*models.Record, error)
	GetRecordsPaginated(ctx context.Context, orgID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateRecord(ctx context.Context, id uuid.UUID, input RecordInput) (*models.Record, error)
	DeleteRecord(ctx context.Context, id uuid.UUID) error
	AssignTemplate(ctx context.Context, id uuid.UUID, templateID *uuid.UUID) error
	SetPhoto(ctx context.Context, id uuid.UUID, filename string, content io.Reader) (string, error)
	SetSignature(ctx context.Context, id uuid.UUID, filename string, content io.Reader) (string, error)
}

// RecordService IRecordService arayüzünü uygular.
type RecordService struct {
	repo          repositories.IRecordRepository
	templateRepo  repositories.ITemplateRepository
	generatedRepo repositories.IGeneratedCardRepository
	store         blobstore.Store
}

// NewRecordService yeni bir RecordService örneği oluşturur.
func NewRecordService(store blobstore.Store) IRecordService {
	return &RecordService{
		repo:          repositories.NewRecordRepository(),
		templateRepo:  repositories.NewTemplateRepository(),
		generatedRepo: repositories.NewGeneratedCardRepository(),
		store:         store,
	}
}

// validateRecordInput temel validasyonları yapar.
func validateRecordInput(input RecordInput) error {
	if input.FirstName == "" || input.LastName == "" {
		return ErrRecNameRequired
	}
	return nil
}

func applyRecordInput(rec *models.Record, input RecordInput) {
	rec.TemplateID = input.TemplateID
	rec.FirstName = input.FirstName
	rec.MiddleName = input.MiddleName
	rec.LastName = input.LastName
	rec.NameSuffix = input.NameSuffix
	rec.Position = input.Position
	rec.EmployeeNo = input.EmployeeNo
	rec.Birthdate = input.Birthdate
	rec.SSSGSISNumber = input.SSSGSISNumber
	rec.TINNumber = input.TINNumber
	rec.PhilHealthNumber = input.PhilHealthNumber
	rec.PagIBIGNumber = input.PagIBIGNumber
	rec.EmergencyContactName = input.EmergencyContactName
	rec.EmergencyContactPhone = input.EmergencyContactPhone
	rec.EmergencyContactAddress = input.EmergencyContactAddress
}

// checkTemplate atanmak istenen şablonun varlığını doğrular.
func (s *RecordService) checkTemplate(ctx context.Context, templateID *uuid.UUID) error {
	if templateID == nil {
		return nil
	}
	if _, err := s.templateRepo.GetByID(ctx, *templateID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: atanan şablon bulunamadı", ErrRecInvalidInput)
		}
		return err
	}
	return nil
}

// CreateRecord yeni bir personel kaydı oluşturur.
func (s *RecordService) CreateRecord(ctx context.Context, orgID uuid.UUID, input RecordInput) (*models.Record, error) {
	if orgID == uuid.Nil {
		return nil, fmt.Errorf("%w: geçersiz kurum ID", ErrRecInvalidInput)
	}
	if err := validateRecordInput(input); err != nil {
		return nil, err
	}
	if err := s.checkTemplate(ctx, input.TemplateID); err != nil {
		return nil, err
	}

	rec := &models.Record{OrganizationID: orgID}
	applyRecordInput(rec, input)

	if err := s.repo.Create(ctx, rec); err != nil {
		configslog.Log.Error("Failed to create record", zap.Error(err))
		return nil, ErrRecordCreationFailed
	}
	configslog.SLog.Infof("Kayıt oluşturuldu: %s %s (%s)", rec.FirstName, rec.LastName, rec.ID)
	return rec, nil
}

// GetRecordByID kaydı getirir.
func (s *RecordService) GetRecordByID(ctx context.Context, id uuid.UUID) (*models.Record, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return rec, nil
}

// GetRecordsPaginated kurumun kayıtlarını sayfalayarak getirir.
func (s *RecordService) GetRecordsPaginated(ctx context.Context, orgID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()

	records, totalCount, err := s.repo.GetAllByOrganizationPaginated(ctx, orgID, params)
	if err != nil {
		configslog.Log.Error("Failed to list records", zap.String("org_id", orgID.String()), zap.Error(err))
		return nil, err
	}

	return &queryparams.PaginatedResult{
		Data: records,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// UpdateRecord mevcut kaydı günceller.
func (s *RecordService) UpdateRecord(ctx context.Context, id uuid.UUID, input RecordInput) (*models.Record, error) {
	if err := validateRecordInput(input); err != nil {
		return nil, err
	}
	if err := s.checkTemplate(ctx, input.TemplateID); err != nil {
		return nil, err
	}

	rec, err := s.GetRecordByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyRecordInput(rec, input)

	if err := s.repo.Update(ctx, rec); err != nil {
		configslog.Log.Error("Failed to update record", zap.String("id", id.String()), zap.Error(err))
		return nil, ErrRecordUpdateFailed
	}
	return rec, nil
}

// DeleteRecord kaydı, çıktı geçmişini ve depodaki görselleri siler.
func (s *RecordService) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	rec, err := s.GetRecordByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.generatedRepo.DeleteByRecordID(ctx, id); err != nil {
		configslog.Log.Error("Failed to delete generated card history", zap.String("record_id", id.String()), zap.Error(err))
		return ErrRecordDeletionFailed
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRecordNotFound
		}
		configslog.Log.Error("Failed to delete record", zap.String("id", id.String()), zap.Error(err))
		return ErrRecordDeletionFailed
	}

	for _, ref := range []*string{rec.PhotoRef, rec.SignatureRef} {
		if ref != nil && *ref != "" {
			if err := s.store.Delete(ctx, *ref); err != nil {
				configslog.Log.Warn("Failed to delete record asset", zap.String("ref", *ref), zap.Error(err))
			}
		}
	}

	configslog.SLog.Infof("Kayıt silindi: %s", id)
	return nil
}

// AssignTemplate kaydın şablon atamasını değiştirir; nil atama kaldırır.
func (s *RecordService) AssignTemplate(ctx context.Context, id uuid.UUID, templateID *uuid.UUID) error {
	if err := s.checkTemplate(ctx, templateID); err != nil {
		return err
	}
	if err := s.repo.UpdateFields(ctx, id, map[string]interface{}{"template_id": templateID}); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRecordNotFound
		}
		return ErrRecordUpdateFailed
	}
	return nil
}

// SetPhoto kaydın fotoğrafını depoya yazar ve referansı bağlar.
func (s *RecordService) SetPhoto(ctx context.Context, id uuid.UUID, filename string, content io.Reader) (string, error) {
	return s.setAsset(ctx, id, "photo", "photo_ref", filename, content)
}

// SetSignature kaydın imza görselini depoya yazar ve referansı bağlar.
func (s *RecordService) SetSignature(ctx context.Context, id uuid.UUID, filename string, content io.Reader) (string, error) {
	return s.setAsset(ctx, id, "signature", "signature_ref", filename, content)
}

func (s *RecordService) setAsset(ctx context.Context, id uuid.UUID, kind, column, filename string, content io.Reader) (string, error) {
	if _, err := s.GetRecordByID(ctx, id); err != nil {
		return "", err
	}

	ref := fmt.Sprintf("records/%s/%s-%s", id, kind, filename)
	if err := s.store.Upload(ctx, ref, content); err != nil {
		configslog.Log.Error("Failed to upload record asset", zap.String("ref", ref), zap.Error(err))
		return "", ErrRecAssetSaveFailed
	}
	if err := s.repo.UpdateFields(ctx, id, map[string]interface{}{column: ref}); err != nil {
		return "", ErrRecordUpdateFailed
	}
	return s.store.URL(ref), nil
}

var _ IRecordService = (*RecordService)(nil)
