package handlers // handlers/panel paketi

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kimlik.link/models"
	"kimlik.link/pkg/export"
	"kimlik.link/services"
)

// PanelExportHandler kart üretim (PNG/PDF) uçları.
type PanelExportHandler struct {
	service services.IExportService
}

// NewPanelExportHandler yeni bir PanelExportHandler örneği oluşturur.
func NewPanelExportHandler(service services.IExportService) *PanelExportHandler {
	return &PanelExportHandler{service: service}
}

// parseSide yol parametresindeki yüzü çözer; boşsa ön yüz varsayılır.
func parseSide(c *fiber.Ctx) (models.Side, error) {
	switch side := models.Side(c.Params("side", string(models.SideFront))); side {
	case models.SideFront, models.SideBack:
		return side, nil
	default:
		return "", c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz yüz"})
	}
}

// TemplatePreview şablonun bir yüzünü kayıt bağlamı olmadan PNG çizer.
func (h *PanelExportHandler) TemplatePreview(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	side, err := parseSide(c)
	if err != nil {
		return err
	}

	data, err := h.service.TemplatePreviewPNG(c.UserContext(), id, side)
	if err != nil {
		return serviceError(c, err)
	}
	c.Type("png")
	return c.Send(data)
}

// RecordPNG tek kaydın tek yüzünü PNG üretir.
func (h *PanelExportHandler) RecordPNG(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	side, err := parseSide(c)
	if err != nil {
		return err
	}

	data, err := h.service.RecordPNG(c.UserContext(), id, side)
	if err != nil {
		return serviceError(c, err)
	}
	c.Type("png")
	return c.Send(data)
}

// RecordPDF tek kaydın iki yüzlü PDF'ini üretir ve indirtir.
func (h *PanelExportHandler) RecordPDF(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	data, card, err := h.service.RecordPDF(c.UserContext(), id)
	if err != nil {
		return serviceError(c, err)
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="card-%s.pdf"`, id))
	c.Set("X-Export-Ref", card.FileRef)
	c.Type("pdf")
	return c.Send(data)
}

// GenerationHistory kaydın üretilmiş çıktılarını listeler.
func (h *PanelExportHandler) GenerationHistory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	cards, err := h.service.GenerationHistory(c.UserContext(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(cards)
}

// BatchPDF seçilen kayıtları tek PDF'te toplar. Şablonsuz kayıtlar
// atlanır; özet üstbilgilerle, atlananların gerekçesi gövde yerine
// X-Export-* üstbilgileriyle döner.
func (h *PanelExportHandler) BatchPDF(c *fiber.Ctx) error {
	var body struct {
		RecordIDs []uuid.UUID `json:"record_ids"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	data, report, err := h.service.BatchPDF(c.UserContext(), body.RecordIDs, nil)
	if err != nil {
		if errors.Is(err, export.ErrBatchEmpty) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  err.Error(),
				"report": report,
			})
		}
		return serviceError(c, err)
	}

	c.Set("X-Export-Total", strconv.Itoa(report.Total))
	c.Set("X-Export-Processed", strconv.Itoa(report.Processed))
	c.Set("X-Export-Skipped", strconv.Itoa(report.Skipped))
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cards-batch.pdf"`)
	c.Type("pdf")
	return c.Send(data)
}
