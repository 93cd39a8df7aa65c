package handlers // handlers/panel paketi

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"kimlik.link/configs/configslog"
	"kimlik.link/services"
)

// PanelOrganizationHandler kurum bilgisi yönetimi uçları. Tek kurumlu
// kurulum olduğundan uçlar ID almaz, varsayılan kurum üzerinde çalışır.
type PanelOrganizationHandler struct {
	service services.IOrganizationService
}

// NewPanelOrganizationHandler yeni bir PanelOrganizationHandler örneği oluşturur.
func NewPanelOrganizationHandler(service services.IOrganizationService) *PanelOrganizationHandler {
	return &PanelOrganizationHandler{service: service}
}

// GetOrganization varsayılan kurumu döndürür.
func (h *PanelOrganizationHandler) GetOrganization(c *fiber.Ctx) error {
	org, err := h.service.GetDefault(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(org)
}

// UpdateOrganization kurum bilgilerini günceller; değişiklik ezmesi
// olmayan tüm kartlara anında yansır.
func (h *PanelOrganizationHandler) UpdateOrganization(c *fiber.Ctx) error {
	org, err := h.service.GetDefault(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}

	var input services.OrganizationInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	updated, err := h.service.Update(c.UserContext(), org.ID, input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(updated)
}

// Stats panel ana sayfası sayaçlarını döndürür.
func (h *PanelOrganizationHandler) Stats(c *fiber.Ctx) error {
	org, err := h.service.GetDefault(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	stats, err := h.service.Stats(c.UserContext(), org.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(stats)
}

// UploadLogo kurum logosunu yükler (multipart "file").
func (h *PanelOrganizationHandler) UploadLogo(c *fiber.Ctx) error {
	return h.uploadAsset(c, "logo")
}

// UploadSignature yetkili imza görselini yükler (multipart "file").
func (h *PanelOrganizationHandler) UploadSignature(c *fiber.Ctx) error {
	return h.uploadAsset(c, "signature")
}

func (h *PanelOrganizationHandler) uploadAsset(c *fiber.Ctx, kind string) error {
	org, err := h.service.GetDefault(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dosya eksik"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		configslog.Log.Error("UploadOrganizationAsset: file open error", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dosya okunamadı"})
	}
	defer file.Close()

	var url string
	if kind == "logo" {
		url, err = h.service.SetLogo(c.UserContext(), org.ID, fileHeader.Filename, file)
	} else {
		url, err = h.service.SetSignature(c.UserContext(), org.ID, fileHeader.Filename, file)
	}
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"url": url})
}
