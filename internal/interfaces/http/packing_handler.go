package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-pactra/internal/application/dto"
	"github.com/jhoicas/inventario-pactra/internal/application/packing"
	"github.com/jhoicas/inventario-pactra/pkg/logger"
)

// PackingHandler generación del packing list.
type PackingHandler struct {
	uc  *packing.PackingUseCase
	log *logger.Logger
}

// NewPackingHandler construye el handler.
func NewPackingHandler(uc *packing.PackingUseCase, log *logger.Logger) *PackingHandler {
	return &PackingHandler{uc: uc, log: log}
}

// Document godoc
// @Summary      Generar packing list
// @Tags         packing
// @Accept       json
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param        format  query  string                  false  "pdf | docx"  default(pdf)
// @Param        body    body   dto.PackingListRequest  true   "Datos del embarque"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse  "Plantilla no encontrada"
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /packing-document [post]
func (h *PackingHandler) Document(c *fiber.Ctx) error {
	return h.generate(c, c.Query("format"))
}

// DOCX godoc
// @Summary      Packing list en DOCX
// @Tags         packing
// @Accept       json
// @Param        body  body  dto.PackingListRequest  true  "Datos del embarque"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /packing-list [post]
func (h *PackingHandler) DOCX(c *fiber.Ctx) error {
	return h.generate(c, packing.FormatDOCX)
}

// PDF godoc
// @Summary      Packing list en PDF
// @Tags         packing
// @Accept       json
// @Param        body  body  dto.PackingListRequest  true  "Datos del embarque"
// @Success      200
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /packing-pdf [post]
func (h *PackingHandler) PDF(c *fiber.Ctx) error {
	return h.generate(c, packing.FormatPDF)
}

func (h *PackingHandler) generate(c *fiber.Ctx, format string) error {
	var in dto.PackingListRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	doc, err := h.uc.Generate(c.UserContext(), in, format)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendFile(c, doc.Bytes, doc.Filename, doc.ContentType)
}
