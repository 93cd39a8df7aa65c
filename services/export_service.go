// services/export_service.go
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kimlik.link/configs/configslog"
	"kimlik.link/models"
	"kimlik.link/pkg/blobstore"
	"kimlik.link/pkg/export"
	"kimlik.link/pkg/render"
	"kimlik.link/repositories"
)

// ExportServiceError özel servis hataları
type ExportServiceError string

func (e ExportServiceError) Error() string { return string(e) }

const (
	ErrExpTemplateNotFound   ExportServiceError = "dışa aktarılacak şablon bulunamadı"
	ErrExpRecordNotFound     ExportServiceError = "dışa aktarılacak kayıt bulunamadı"
	ErrExpNoRecordsRequested ExportServiceError = "en az bir kayıt seçilmeli"
	ErrExpRenderFailed       ExportServiceError = "kart çizimi başarısız"
	ErrExpPersistFailed      ExportServiceError = "çıktı kaydedilemedi"
)

// BatchProgress toplu üretim ilerlemesini yüzde olarak bildirir.
type BatchProgress func(percent int, rec *models.Record)

// IExportService dışa aktarma işlemleri için arayüz.
type IExportService interface {
	// TemplatePreviewPNG şablonun bir yüzünü kayıt bağlamı olmadan çizer
	// (editör önizlemesi; bağlar yer tutucularla kalır).
	TemplatePreviewPNG(ctx context.Context, templateID uuid.UUID, side models.Side) ([]byte, error)
	// RecordPNG tek kaydın tek yüzünü PNG üretir.
	RecordPNG(ctx context.Context, recordID uuid.UUID, side models.Side) ([]byte, error)
	// RecordPDF tek kaydın iki yüzlü PDF'ini üretir, depoya yazar ve
	// defterine işler.
	RecordPDF(ctx context.Context, recordID uuid.UUID) ([]byte, *models.GeneratedCard, error)
	// BatchPDF seçilen kayıtları tek PDF'te toplar. Şablonsuz kayıtlar
	// atlanır; ilerleme kayıt sınırlarında bildirilir.
	BatchPDF(ctx context.Context, recordIDs []uuid.UUID, progress BatchProgress) ([]byte, *export.BatchReport, error)
	// GenerationHistory kaydın üretilmiş çıktılarını yeniden eskiye döndürür.
	GenerationHistory(ctx context.Context, recordID uuid.UUID) ([]models.GeneratedCard, error)
}

// ExportService IExportService arayüzünü uygular.
type ExportService struct {
	pipeline      *export.Pipeline
	templateRepo  repositories.ITemplateRepository
	recordRepo    repositories.IRecordRepository
	orgRepo       repositories.IOrganizationRepository
	generatedRepo repositories.IGeneratedCardRepository
	store         blobstore.Store
}

// NewExportService yeni bir ExportService örneği oluşturur.
func NewExportService(renderer *render.Renderer, store blobstore.Store) IExportService {
	return &ExportService{
		pipeline:      export.New(renderer),
		templateRepo:  repositories.NewTemplateRepository(),
		recordRepo:    repositories.NewRecordRepository(),
		orgRepo:       repositories.NewOrganizationRepository(),
		generatedRepo: repositories.NewGeneratedCardRepository(),
		store:         store,
	}
}

// organization kurum bağlamını getirir; kurum yoksa bağlar boş çözülür,
// üretim durmaz.
func (s *ExportService) organization(ctx context.Context) *models.Organization {
	org, err := s.orgRepo.GetFirst(ctx)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			configslog.Log.Warn("Failed to load organization for export", zap.Error(err))
		}
		return nil
	}
	return org
}

func (s *ExportService) TemplatePreviewPNG(ctx context.Context, templateID uuid.UUID, side models.Side) ([]byte, error) {
	template, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrExpTemplateNotFound
		}
		return nil, err
	}

	data, err := s.pipeline.PNG(ctx, template, side, nil, s.organization(ctx))
	if err != nil {
		configslog.Log.Error("Failed to render template preview",
			zap.String("template_id", templateID.String()), zap.Error(err))
		return nil, ErrExpRenderFailed
	}
	return data, nil
}

// recordContext kaydı ve atanmış şablonunu birlikte yükler.
func (s *ExportService) recordContext(ctx context.Context, recordID uuid.UUID) (*models.Record, *models.Template, error) {
	rec, err := s.recordRepo.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrExpRecordNotFound
		}
		return nil, nil, err
	}
	if rec.TemplateID == nil {
		return nil, nil, ErrExpTemplateNotFound
	}
	template, err := s.templateRepo.GetByID(ctx, *rec.TemplateID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrExpTemplateNotFound
		}
		return nil, nil, err
	}
	return rec, template, nil
}

func (s *ExportService) RecordPNG(ctx context.Context, recordID uuid.UUID, side models.Side) ([]byte, error) {
	rec, template, err := s.recordContext(ctx, recordID)
	if err != nil {
		return nil, err
	}

	data, err := s.pipeline.PNG(ctx, template, side, rec, s.organization(ctx))
	if err != nil {
		configslog.Log.Error("Failed to render record PNG",
			zap.String("record_id", recordID.String()), zap.Error(err))
		return nil, ErrExpRenderFailed
	}
	return data, nil
}

func (s *ExportService) RecordPDF(ctx context.Context, recordID uuid.UUID) ([]byte, *models.GeneratedCard, error) {
	rec, template, err := s.recordContext(ctx, recordID)
	if err != nil {
		return nil, nil, err
	}

	data, err := s.pipeline.SinglePDF(ctx, template, rec, s.organization(ctx))
	if err != nil {
		configslog.Log.Error("Failed to render record PDF",
			zap.String("record_id", recordID.String()), zap.Error(err))
		return nil, nil, ErrExpRenderFailed
	}

	// Çıktı depoya yazılır ve deftere işlenir; bu adımların başarısızlığı
	// üretilen PDF'i geçersiz kılmaz ama izlenebilirliği bozar, o yüzden
	// hata olarak döner.
	card := &models.GeneratedCard{
		RecordID: recordID,
		FileRef:  fmt.Sprintf("generated/%s/%s.pdf", recordID, uuid.New()),
		Format:   "pdf",
	}
	if err := s.store.Upload(ctx, card.FileRef, bytes.NewReader(data)); err != nil {
		configslog.Log.Error("Failed to persist generated PDF", zap.String("ref", card.FileRef), zap.Error(err))
		return nil, nil, ErrExpPersistFailed
	}
	if err := s.generatedRepo.Create(ctx, card); err != nil {
		configslog.Log.Error("Failed to register generated card", zap.String("record_id", recordID.String()), zap.Error(err))
		return nil, nil, ErrExpPersistFailed
	}

	configslog.SLog.Infof("Kart PDF üretildi: kayıt %s -> %s", recordID, card.FileRef)
	return data, card, nil
}

func (s *ExportService) BatchPDF(ctx context.Context, recordIDs []uuid.UUID, progress BatchProgress) ([]byte, *export.BatchReport, error) {
	if len(recordIDs) == 0 {
		return nil, nil, ErrExpNoRecordsRequested
	}

	records, err := s.recordRepo.GetByIDs(ctx, recordIDs)
	if err != nil {
		return nil, nil, err
	}

	// İstenen ama veritabanında olmayan kayıtlar sessizce kaybolmaz;
	// raporda atlanmış olarak görünürler.
	found := make(map[uuid.UUID]struct{}, len(records))
	for i := range records {
		found[records[i].ID] = struct{}{}
	}
	var missing []uuid.UUID
	for _, id := range recordIDs {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}

	// Şablonlar bir kez yüklenir; aynı şablonu paylaşan kayıtlar için
	// tekrar sorgu atılmaz. Bulunamayan şablon kaydı atlatır.
	templates := make(map[uuid.UUID]*models.Template)
	items := make([]export.BatchItem, 0, len(records))
	for i := range records {
		rec := &records[i]
		var tpl *models.Template
		if rec.TemplateID != nil {
			var ok bool
			tpl, ok = templates[*rec.TemplateID]
			if !ok {
				tpl, err = s.templateRepo.GetByID(ctx, *rec.TemplateID)
				if err != nil {
					if !errors.Is(err, repositories.ErrNotFound) {
						return nil, nil, err
					}
					tpl = nil
				}
				templates[*rec.TemplateID] = tpl
			}
		}
		items = append(items, export.BatchItem{Record: rec, Template: tpl})
	}

	var cb export.Progress
	if progress != nil {
		cb = func(done, total int, rec *models.Record) {
			progress(done*100/total, rec)
		}
	}

	data, report, err := s.pipeline.BatchPDF(ctx, items, s.organization(ctx), cb)
	if report != nil {
		report.MarkMissing(missing)
	}
	if err != nil {
		return nil, report, err
	}

	configslog.SLog.Infof("Toplu PDF üretildi: %d/%d kayıt", report.Processed, report.Total)
	return data, report, nil
}

func (s *ExportService) GenerationHistory(ctx context.Context, recordID uuid.UUID) ([]models.GeneratedCard, error) {
	if _, err := s.recordRepo.GetByID(ctx, recordID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrExpRecordNotFound
		}
		return nil, err
	}
	return s.generatedRepo.GetByRecordID(ctx, recordID)
}

var _ IExportService = (*ExportService)(nil)
