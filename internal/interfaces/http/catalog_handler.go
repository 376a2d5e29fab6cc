package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-pactra/internal/application/inventory"
	"github.com/jhoicas/inventario-pactra/internal/application/packing"
	"github.com/jhoicas/inventario-pactra/pkg/logger"
)

// CatalogHandler listas para los selectores del formulario de packing list.
type CatalogHandler struct {
	movements *inventory.MovementUseCase
	packing   *packing.PackingUseCase
	log       *logger.Logger
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(movements *inventory.MovementUseCase, pk *packing.PackingUseCase, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{movements: movements, packing: pk, log: log}
}

// Models godoc
// @Summary      Modelos distintos
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   string
// @Router       /models [get]
func (h *CatalogHandler) Models(c *fiber.Ctx) error {
	out, err := h.movements.Models(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Containers godoc
// @Summary      Contenedores de un modelo
// @Tags         catalog
// @Produce      json
// @Param        model  query     string  false  "Modelo"
// @Success      200    {array}   string
// @Router       /containers [get]
func (h *CatalogHandler) Containers(c *fiber.Ctx) error {
	model := c.Query("model")
	if p := c.Params("model"); p != "" {
		if unescaped, err := url.PathUnescape(p); err == nil {
			p = unescaped
		}
		model = p
	}
	out, err := h.movements.Containers(c.UserContext(), model)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Clients godoc
// @Summary      Claves del directorio de clientes
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  string
// @Router       /clients [get]
func (h *CatalogHandler) Clients(c *fiber.Ctx) error {
	return c.JSON(h.packing.Clients())
}
