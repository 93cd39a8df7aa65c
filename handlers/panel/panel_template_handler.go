package handlers // handlers/panel paketi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"kimlik.link/configs/configslog"
	"kimlik.link/models"
	"kimlik.link/pkg/queryparams"
	"kimlik.link/services"
)

// PanelTemplateHandler şablon yönetimi uçları.
type PanelTemplateHandler struct {
	service    services.ITemplateService
	orgService services.IOrganizationService
}

// NewPanelTemplateHandler yeni bir PanelTemplateHandler örneği oluşturur.
func NewPanelTemplateHandler(service services.ITemplateService, orgService services.IOrganizationService) *PanelTemplateHandler {
	return &PanelTemplateHandler{service: service, orgService: orgService}
}

// parseID yol parametresindeki UUID'yi çözer.
func parseID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz ID"})
	}
	return id, nil
}

// serviceError tipli servis hatalarını HTTP durumuna çevirir.
func serviceError(c *fiber.Ctx, err error) error {
	var status int
	switch {
	case errors.Is(err, services.ErrTemplateNotFound),
		errors.Is(err, services.ErrRecordNotFound),
		errors.Is(err, services.ErrOrgNotFound),
		errors.Is(err, services.ErrExpTemplateNotFound),
		errors.Is(err, services.ErrExpRecordNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrTplInvalidInput),
		errors.Is(err, services.ErrTplNameRequired),
		errors.Is(err, services.ErrTplInvalidSize),
		errors.Is(err, services.ErrTplInvalidUnit),
		errors.Is(err, services.ErrTplInvalidOrientation),
		errors.Is(err, services.ErrTplInvalidField),
		errors.Is(err, services.ErrRecInvalidInput),
		errors.Is(err, services.ErrRecNameRequired),
		errors.Is(err, services.ErrOrgNameRequired),
		errors.Is(err, services.ErrExpNoRecordsRequested):
		status = fiber.StatusBadRequest
	default:
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// defaultOrganizationID tek kurumlu kurulumda aktif kurumu bulur.
func (h *PanelTemplateHandler) defaultOrganizationID(c *fiber.Ctx) (uuid.UUID, error) {
	org, err := h.orgService.GetDefault(c.UserContext())
	if err != nil {
		return uuid.Nil, err
	}
	return org.ID, nil
}

// ListTemplates kurumun şablonlarını sayfalayarak listeler.
func (h *PanelTemplateHandler) ListTemplates(c *fiber.Ctx) error {
	orgID, err := h.defaultOrganizationID(c)
	if err != nil {
		return serviceError(c, err)
	}

	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		configslog.Log.Warn("ListTemplates: Query parse error", zap.Error(err))
	}
	params.Validate()

	result, err := h.service.GetTemplatesPaginated(c.UserContext(), orgID, params)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(result)
}

// GetTemplate şablonu alanları ve ezmesiyle döndürür.
func (h *PanelTemplateHandler) GetTemplate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	template, err := h.service.GetTemplateByID(c.UserContext(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(template)
}

// CreateTemplate yeni şablon oluşturur.
func (h *PanelTemplateHandler) CreateTemplate(c *fiber.Ctx) error {
	orgID, err := h.defaultOrganizationID(c)
	if err != nil {
		return serviceError(c, err)
	}

	var input services.TemplateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	template, err := h.service.CreateTemplate(c.UserContext(), orgID, input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(template)
}

// UpdateTemplate şablonun temel bilgilerini günceller.
func (h *PanelTemplateHandler) UpdateTemplate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var input services.TemplateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	template, err := h.service.UpdateTemplate(c.UserContext(), id, input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(template)
}

// DeleteTemplate şablonu siler.
func (h *PanelTemplateHandler) DeleteTemplate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteTemplate(c.UserContext(), id); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SaveFields editördeki alan düzenini kaydeder. Gövde, alanların son
// durumunun tam listesidir; listede olmayan alanlar silinir.
func (h *PanelTemplateHandler) SaveFields(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var body struct {
		Fields []models.Field `json:"fields"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	if err := h.service.SaveFields(c.UserContext(), id, body.Fields); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"saved": len(body.Fields)})
}

// SaveOverride şablonun kurum ezmesini yazar ya da kaldırır.
func (h *PanelTemplateHandler) SaveOverride(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var input services.OverrideInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	if err := h.service.SaveOverride(c.UserContext(), id, input); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadBackground yüzün arka plan görselini yükler (multipart "file").
func (h *PanelTemplateHandler) UploadBackground(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	side := models.Side(c.Params("side"))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dosya eksik"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		configslog.Log.Error("UploadBackground: file open error", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dosya okunamadı"})
	}
	defer file.Close()

	url, err := h.service.SetBackground(c.UserContext(), id, side, fileHeader.Filename, file)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"url": url})
}

// UploadPreview şablon kaydedilirken üretilen küçük önizleme görüntüsünü
// yazar (multipart "file").
func (h *PanelTemplateHandler) UploadPreview(c *fiber.Ctx) error {
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
		configslog.Log.Error("UploadPreview: file open error", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dosya okunamadı"})
	}
	defer file.Close()

	url, err := h.service.SavePreview(c.UserContext(), id, file)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"url": url})
}

// RemoveBackground yüzün arka plan görselini kaldırır.
func (h *PanelTemplateHandler) RemoveBackground(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	side := models.Side(c.Params("side"))

	if err := h.service.RemoveBackground(c.UserContext(), id, side); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
