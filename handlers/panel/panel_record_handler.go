package handlers // handlers/panel paketi

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"kimlik.link/configs/configslog"
	"kimlik.link/pkg/queryparams"
	"kimlik.link/services"
)

// PanelRecordHandler personel kaydı yönetimi uçları.
type PanelRecordHandler struct {
	service    services.IRecordService
	orgService services.IOrganizationService
}

// NewPanelRecordHandler yeni bir PanelRecordHandler örneği oluşturur.
func NewPanelRecordHandler(service services.IRecordService, orgService services.IOrganizationService) *PanelRecordHandler {
	return &PanelRecordHandler{service: service, orgService: orgService}
}

// ListRecords kurumun kayıtlarını sayfalayarak listeler.
func (h *PanelRecordHandler) ListRecords(c *fiber.Ctx) error {
	org, err := h.orgService.GetDefault(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}

	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		configslog.Log.Warn("ListRecords: Query parse error", zap.Error(err))
	}
	params.Validate()

	result, err := h.service.GetRecordsPaginated(c.UserContext(), org.ID, params)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(result)
}

// GetRecord tek kaydı döndürür.
func (h *PanelRecordHandler) GetRecord(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	rec, err := h.service.GetRecordByID(c.UserContext(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(rec)
}

// CreateRecord yeni personel kaydı oluşturur.
func (h *PanelRecordHandler) CreateRecord(c *fiber.Ctx) error {
	org, err := h.orgService.GetDefault(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}

	var input services.RecordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	rec, err := h.service.CreateRecord(c.UserContext(), org.ID, input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// UpdateRecord mevcut kaydı günceller.
func (h *PanelRecordHandler) UpdateRecord(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var input services.RecordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	rec, err := h.service.UpdateRecord(c.UserContext(), id, input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(rec)
}

// DeleteRecord kaydı ve bağlı çıktılarını siler.
func (h *PanelRecordHandler) DeleteRecord(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteRecord(c.UserContext(), id); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AssignTemplate kaydın şablon atamasını değiştirir. Gövdede template_id
// null gönderilirse atama kaldırılır.
func (h *PanelRecordHandler) AssignTemplate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var body struct {
		TemplateID *uuid.UUID `json:"template_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	if err := h.service.AssignTemplate(c.UserContext(), id, body.TemplateID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadPhoto kaydın vesikalık fotoğrafını yükler (multipart "file").
func (h *PanelRecordHandler) UploadPhoto(c *fiber.Ctx) error {
	return h.uploadAsset(c, h.service.SetPhoto)
}

// UploadSignature kaydın imza görselini yükler (multipart "file").
func (h *PanelRecordHandler) UploadSignature(c *fiber.Ctx) error {
	return h.uploadAsset(c, h.service.SetSignature)
}

func (h *PanelRecordHandler) uploadAsset(c *fiber.Ctx, set func(ctx context.Context, id uuid.UUID, filename string, content io.Reader) (string, error)) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dosya eksik"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		configslog.Log.Error("UploadAsset: file open error", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dosya okunamadı"})
	}
	defer file.Close()

	url, err := set(c.UserContext(), id, fileHeader.Filename, file)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"url": url})
}
