package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-pactra/internal/application/inventory"
	"github.com/jhoicas/inventario-pactra/pkg/logger"
)

// ViewHandler vistas derivadas: tabla paginada, tablero y resumen por modelo.
type ViewHandler struct {
	uc  *inventory.ViewUseCase
	log *logger.Logger
}

// NewViewHandler construye el handler.
func NewViewHandler(uc *inventory.ViewUseCase, log *logger.Logger) *ViewHandler {
	return &ViewHandler{uc: uc, log: log}
}

// Records godoc
// @Summary      Tabla de movimientos filtrada, ordenada y paginada
// @Description  Página de 15 filas. Una página fuera de rango devuelve la primera.
// @Tags         views
// @Produce      json
// @Param        q        query     string  false  "Búsqueda en cliente, modelo, factura, contenedor, lote e id"
// @Param        type     query     string  false  "Tipo de movimiento"
// @Param        damaged  query     string  false  "si | no"
// @Param        sort     query     string  false  "Columna"  default(date)
// @Param        dir      query     string  false  "asc | desc"
// @Param        page     query     int     false  "Página"   default(1)
// @Success      200      {object}  dto.QueryResponse
// @Router       /records/view [get]
func (h *ViewHandler) Records(c *fiber.Ctx) error {
	out, err := h.uc.Query(c.UserContext(), inventory.ViewQuery{
		Q:       c.Query("q"),
		Type:    c.Query("type"),
		Damaged: c.Query("damaged"),
		Sort:    c.Query("sort"),
		Dir:     c.Query("dir"),
		Page:    c.QueryInt("page", 1),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Damaged godoc
// @Summary      Movimientos con daño
// @Tags         views
// @Produce      json
// @Success      200  {array}  dto.MovementResponse
// @Router       /records/damaged [get]
func (h *ViewHandler) Damaged(c *fiber.Ctx) error {
	out, err := h.uc.Damaged(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Tablero
// @Tags         views
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /dashboard [get]
func (h *ViewHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ModelSummary godoc
// @Summary      Resumen por modelo
// @Tags         models
// @Produce      json
// @Param        q     query     string  false  "Filtro por nombre de modelo"
// @Param        sort  query     string  false  "name | pieces | movements | damaged"  default(name)
// @Success      200   {array}   dto.ModelGroupDTO
// @Router       /models/summary [get]
func (h *ViewHandler) ModelSummary(c *fiber.Ctx) error {
	out, err := h.uc.ModelSummary(c.UserContext(), c.Query("q"), c.Query("sort"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ModelDetail godoc
// @Summary      Detalle de un modelo con sus movimientos
// @Tags         models
// @Produce      json
// @Param        name  query     string  true  "Modelo; vacío para (Sin modelo)"
// @Success      200   {object}  dto.ModelGroupDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /models/detail [get]
func (h *ViewHandler) ModelDetail(c *fiber.Ctx) error {
	out, err := h.uc.ModelDetail(c.UserContext(), c.Query("name"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ExportModels godoc
// @Summary      Exportar resumen por modelo
// @Tags         models
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Param        format  query  string  false  "xlsx | csv"  default(xlsx)
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /models/summary/export [get]
func (h *ViewHandler) ExportModels(c *fiber.Ctx) error {
	out, err := h.uc.ExportModels(c.UserContext(), c.Query("format"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendFile(c, out.Bytes, out.Filename, out.ContentType)
}

// sendFile responde el archivo como descarga.
func sendFile(c *fiber.Ctx, body []byte, filename, contentType string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(body)
}
