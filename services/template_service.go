// services/template_service.go
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
	"kimlik.link/pkg/queryparams"
	"kimlik.link/pkg/units"
	"kimlik.link/repositories"
)

// TemplateServiceError özel servis hataları
type TemplateServiceError string

func (e TemplateServiceError) Error() string { return string(e) }

const (
	ErrTemplateNotFound       TemplateServiceError = "şablon bulunamadı"
	ErrTemplateCreationFailed TemplateServiceError = "şablon oluşturulamadı"
	ErrTemplateUpdateFailed   TemplateServiceError = "şablon güncellenemedi"
	ErrTemplateDeletionFailed TemplateServiceError = "şablon silinemedi"
	ErrTplInvalidInput        TemplateServiceError = "geçersiz girdi verisi"
	ErrTplNameRequired        TemplateServiceError = "şablon adı zorunludur"
	ErrTplInvalidSize         TemplateServiceError = "şablon boyutları pozitif olmalı"
	ErrTplInvalidUnit         TemplateServiceError = "tanımsız ölçü birimi"
	ErrTplInvalidOrientation  TemplateServiceError = "tanımsız sayfa yönü"
	ErrTplInvalidField        TemplateServiceError = "geçersiz alan verisi"
	ErrTplFieldSaveFailed     TemplateServiceError = "şablon alanları kaydedilemedi"
	ErrTplAssetSaveFailed     TemplateServiceError = "şablon görseli kaydedilemedi"
)

// TemplateInput şablon oluşturma/güncelleme girdisidir. Boyutlar
// istemcinin seçtiği birimde gelir; saklamadan önce milimetreye çevrilir.
type TemplateInput struct {
	Name        string             `json:"name"`
	Width       float64            `json:"width"`
	Height      float64            `json:"height"`
	Unit        units.Unit         `json:"unit"`
	Orientation models.Orientation `json:"orientation"`

	BackgroundColorFront string `json:"background_color_front"`
	BackgroundColorBack  string `json:"background_color_back"`
}

// OverrideInput şablonun kurum ezmesi girdisidir; nil alan "ezme yok" demektir.
type OverrideInput struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Contact *string `json:"contact"`
}

// ITemplateService şablon işlemleri için arayüz.
type ITemplateService interface {
	CreateTemplate(ctx context.Context, orgID uuid.UUID, input TemplateInput) (*models.Template, error)
	GetTemplateByID(ctx context.Context, id uuid.UUID) (*models.Template, error)
	GetTemplatesPaginated(ctx context.Context, orgID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateTemplate(ctx context.Context, id uuid.UUID, input TemplateInput) (*models.Template, error)
	DeleteTemplate(ctx context.Context, id uuid.UUID) error
	SaveFields(ctx context.Context, templateID uuid.UUID, fields []models.Field) error
	SaveOverride(ctx context.Context, templateID uuid.UUID, input OverrideInput) error
	SetBackground(ctx context.Context, templateID uuid.UUID, side models.Side, filename string, content io.Reader) (string, error)
	RemoveBackground(ctx context.Context, templateID uuid.UUID, side models.Side) error
	SavePreview(ctx context.Context, templateID uuid.UUID, content io.Reader) (string, error)
}

// TemplateService ITemplateService arayüzünü uygular.
type TemplateService struct {
	repo  repositories.ITemplateRepository
	store blobstore.Store
}

// NewTemplateService yeni bir TemplateService örneği oluşturur.
func NewTemplateService(store blobstore.Store) ITemplateService {
	return &TemplateService{
		repo:  repositories.NewTemplateRepository(),
		store: store,
	}
}

// validateTemplateInput temel validasyonları yapar ve boyutları mm'ye çevirir.
func validateTemplateInput(input *TemplateInput) (widthMM, heightMM float64, err error) {
	if input.Name == "" {
		return 0, 0, ErrTplNameRequired
	}
	if input.Width <= 0 || input.Height <= 0 {
		return 0, 0, ErrTplInvalidSize
	}
	if input.Unit == "" {
		input.Unit = units.MM
	}
	if !units.Known(input.Unit) {
		return 0, 0, ErrTplInvalidUnit
	}
	switch input.Orientation {
	case "":
		input.Orientation = models.OrientationLandscape
	case models.OrientationPortrait, models.OrientationLandscape:
	default:
		return 0, 0, ErrTplInvalidOrientation
	}
	return units.ToMM(input.Width, input.Unit), units.ToMM(input.Height, input.Unit), nil
}

// CreateTemplate yeni bir şablon oluşturur. Boyutlar daima mm saklanır;
// seçilen birim yalnızca editör görünümü için tutulur.
func (s *TemplateService) CreateTemplate(ctx context.Context, orgID uuid.UUID, input TemplateInput) (*models.Template, error) {
	if orgID == uuid.Nil {
		return nil, fmt.Errorf("%w: geçersiz kurum ID", ErrTplInvalidInput)
	}
	widthMM, heightMM, err := validateTemplateInput(&input)
	if err != nil {
		return nil, err
	}

	template := &models.Template{
		OrganizationID:       orgID,
		Name:                 input.Name,
		WidthMM:              widthMM,
		HeightMM:             heightMM,
		Orientation:          input.Orientation,
		EditUnit:             string(input.Unit),
		BackgroundColorFront: defaultColor(input.BackgroundColorFront),
		BackgroundColorBack:  defaultColor(input.BackgroundColorBack),
	}
	if err := s.repo.Create(ctx, template); err != nil {
		configslog.Log.Error("Failed to create template", zap.String("name", input.Name), zap.Error(err))
		return nil, ErrTemplateCreationFailed
	}

	configslog.SLog.Infof("Şablon oluşturuldu: %s (%s)", template.Name, template.ID)
	return template, nil
}

func defaultColor(c string) string {
	if c == "" {
		return "#ffffff"
	}
	return c
}

// GetTemplateByID şablonu alanları ve ezmesiyle getirir.
func (s *TemplateService) GetTemplateByID(ctx context.Context, id uuid.UUID) (*models.Template, error) {
	template, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return template, nil
}

// GetTemplatesPaginated kurumun şablonlarını sayfalayarak getirir.
func (s *TemplateService) GetTemplatesPaginated(ctx context.Context, orgID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()

	templates, totalCount, err := s.repo.GetAllByOrganizationPaginated(ctx, orgID, params)
	if err != nil {
		configslog.Log.Error("Failed to list templates", zap.String("org_id", orgID.String()), zap.Error(err))
		return nil, err
	}

	return &queryparams.PaginatedResult{
		Data: templates,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// UpdateTemplate ad, boyut, yön ve arka plan renklerini günceller.
// Alan düzeni SaveFields ile ayrı kaydedilir.
func (s *TemplateService) UpdateTemplate(ctx context.Context, id uuid.UUID, input TemplateInput) (*models.Template, error) {
	widthMM, heightMM, err := validateTemplateInput(&input)
	if err != nil {
		return nil, err
	}

	template, err := s.GetTemplateByID(ctx, id)
	if err != nil {
		return nil, err
	}

	template.Name = input.Name
	template.WidthMM = widthMM
	template.HeightMM = heightMM
	template.Orientation = input.Orientation
	template.EditUnit = string(input.Unit)
	template.BackgroundColorFront = defaultColor(input.BackgroundColorFront)
	template.BackgroundColorBack = defaultColor(input.BackgroundColorBack)

	if err := s.repo.Update(ctx, template); err != nil {
		configslog.Log.Error("Failed to update template", zap.String("id", id.String()), zap.Error(err))
		return nil, ErrTemplateUpdateFailed
	}
	return template, nil
}

// DeleteTemplate şablonu siler; alanlar ve ezme cascade ile gider.
// Depodaki arka plan görselleri de temizlenir.
func (s *TemplateService) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	template, err := s.GetTemplateByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTemplateNotFound
		}
		configslog.Log.Error("Failed to delete template", zap.String("id", id.String()), zap.Error(err))
		return ErrTemplateDeletionFailed
	}

	// Depo temizliği kritik değildir; hata yalnızca loglanır.
	for _, ref := range []*string{template.BackgroundFrontRef, template.BackgroundBackRef, template.PreviewRef} {
		if ref != nil && *ref != "" {
			if err := s.store.Delete(ctx, *ref); err != nil {
				configslog.Log.Warn("Failed to delete template asset", zap.String("ref", *ref), zap.Error(err))
			}
		}
	}

	configslog.SLog.Infof("Şablon silindi: %s", id)
	return nil
}

// SaveFields editörden gelen alan düzenini doğrular ve şablonun alan
// kümesini bu düzenle eşitler (upsert + listede olmayanı sil).
func (s *TemplateService) SaveFields(ctx context.Context, templateID uuid.UUID, fields []models.Field) error {
	if _, err := s.GetTemplateByID(ctx, templateID); err != nil {
		return err
	}

	for i := range fields {
		f := &fields[i]
		if !models.KnownFieldType(f.FieldType) {
			return fmt.Errorf("%w: tanımsız tür %q", ErrTplInvalidField, f.FieldType)
		}
		if f.Side != models.SideFront && f.Side != models.SideBack {
			return fmt.Errorf("%w: tanımsız yüz %q", ErrTplInvalidField, f.Side)
		}
		if f.Width < 0 || f.Height < 0 {
			return fmt.Errorf("%w: negatif boyut", ErrTplInvalidField)
		}
		if f.Opacity < 0 || f.Opacity > 1 {
			return fmt.Errorf("%w: opaklık 0-1 aralığında olmalı", ErrTplInvalidField)
		}
	}

	if err := s.repo.ReplaceFields(ctx, templateID, fields); err != nil {
		return ErrTplFieldSaveFailed
	}
	configslog.SLog.Infof("Şablon alanları kaydedildi: %s (%d alan)", templateID, len(fields))
	return nil
}

// SaveOverride şablonun kurum ezmesini yazar; üç alan da nil ise mevcut
// ezme kaldırılır.
func (s *TemplateService) SaveOverride(ctx context.Context, templateID uuid.UUID, input OverrideInput) error {
	if _, err := s.GetTemplateByID(ctx, templateID); err != nil {
		return err
	}

	if input.Name == nil && input.Address == nil && input.Contact == nil {
		if err := s.repo.DeleteOverride(ctx, templateID); err != nil {
			configslog.Log.Error("Failed to delete template override", zap.String("template_id", templateID.String()), zap.Error(err))
			return ErrTemplateUpdateFailed
		}
		return nil
	}

	override := &models.OrganizationOverride{
		TemplateID: templateID,
		Name:       input.Name,
		Address:    input.Address,
		Contact:    input.Contact,
	}
	if err := s.repo.SaveOverride(ctx, override); err != nil {
		configslog.Log.Error("Failed to save template override", zap.String("template_id", templateID.String()), zap.Error(err))
		return ErrTemplateUpdateFailed
	}
	return nil
}

// SetBackground yüzün arka plan görselini depoya yazar ve referansı
// şablona bağlar. Dönen değer görselin servis URL'idir.
func (s *TemplateService) SetBackground(ctx context.Context, templateID uuid.UUID, side models.Side, filename string, content io.Reader) (string, error) {
	if _, err := s.GetTemplateByID(ctx, templateID); err != nil {
		return "", err
	}
	if side != models.SideFront && side != models.SideBack {
		return "", fmt.Errorf("%w: tanımsız yüz %q", ErrTplInvalidInput, side)
	}

	ref := fmt.Sprintf("templates/%s/bg-%s-%s", templateID, side, filename)
	if err := s.store.Upload(ctx, ref, content); err != nil {
		configslog.Log.Error("Failed to upload template background", zap.String("ref", ref), zap.Error(err))
		return "", ErrTplAssetSaveFailed
	}

	column := "background_front_ref"
	if side == models.SideBack {
		column = "background_back_ref"
	}
	if err := s.repo.UpdateFields(ctx, templateID, map[string]interface{}{column: ref}); err != nil {
		return "", ErrTemplateUpdateFailed
	}
	return s.store.URL(ref), nil
}

// RemoveBackground yüzün arka plan görsel bağını kaldırır ve depodaki
// dosyayı siler.
func (s *TemplateService) RemoveBackground(ctx context.Context, templateID uuid.UUID, side models.Side) error {
	template, err := s.GetTemplateByID(ctx, templateID)
	if err != nil {
		return err
	}

	ref := template.BackgroundRef(side)
	column := "background_front_ref"
	if side == models.SideBack {
		column = "background_back_ref"
	}
	if err := s.repo.UpdateFields(ctx, templateID, map[string]interface{}{column: nil}); err != nil {
		return ErrTemplateUpdateFailed
	}
	if ref != nil && *ref != "" {
		if err := s.store.Delete(ctx, *ref); err != nil {
			configslog.Log.Warn("Failed to delete background asset", zap.String("ref", *ref), zap.Error(err))
		}
	}
	return nil
}

// SavePreview şablonun küçük önizleme görüntüsünü yazar.
func (s *TemplateService) SavePreview(ctx context.Context, templateID uuid.UUID, content io.Reader) (string, error) {
	if _, err := s.GetTemplateByID(ctx, templateID); err != nil {
		return "", err
	}

	ref := fmt.Sprintf("templates/%s/preview.png", templateID)
	if err := s.store.Upload(ctx, ref, content); err != nil {
		configslog.Log.Error("Failed to upload template preview", zap.String("ref", ref), zap.Error(err))
		return "", ErrTplAssetSaveFailed
	}
	if err := s.repo.UpdateFields(ctx, templateID, map[string]interface{}{"preview_ref": ref}); err != nil {
		return "", ErrTemplateUpdateFailed
	}
	return s.store.URL(ref), nil
}

var _ ITemplateService = (*TemplateService)(nil)
