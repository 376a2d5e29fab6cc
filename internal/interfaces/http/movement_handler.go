package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-pactra/internal/application/dto"
	"github.com/jhoicas/inventario-pactra/internal/application/inventory"
	"github.com/jhoicas/inventario-pactra/pkg/logger"
)

// MovementHandler CRUD de movimientos y carga masiva.
type MovementHandler struct {
	uc  *inventory.MovementUseCase
	log *logger.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.MovementUseCase, log *logger.Logger) *MovementHandler {
	return &MovementHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar movimientos
// @Tags         records
// @Produce      json
// @Success      200  {array}   dto.MovementResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /records [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar movimiento
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        body  body      dto.MovementRequest  true  "Movimiento"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /records [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar movimiento
// @Description  Sobrescribe todos los campos. Un id inexistente o no numérico no es error.
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "ID del movimiento"
// @Param        body  body      dto.MovementRequest  true  "Movimiento"
// @Success      200   {object}  dto.OKResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /records/{id} [put]
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	id, ok := recordID(c)
	if !ok {
		return c.JSON(dto.OKResponse{OK: true})
	}
	if err := h.uc.Update(c.UserContext(), id, in); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.OKResponse{OK: true})
}

// Delete godoc
// @Summary      Eliminar movimiento
// @Tags         records
// @Produce      json
// @Param        id   path      int  true  "ID del movimiento"
// @Success      200  {object}  dto.OKResponse
// @Router       /records/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	id, ok := recordID(c)
	if !ok {
		return c.JSON(dto.OKResponse{OK: true})
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.OKResponse{OK: true})
}

// Bulk godoc
// @Summary      Carga masiva
// @Description  Inserta las filas en orden; con replace=true borra antes todos los movimientos.
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        body  body      dto.BulkRequest  true  "Filas"
// @Success      200   {object}  dto.BulkResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /records/bulk [post]
func (h *MovementHandler) Bulk(c *fiber.Ctx) error {
	var in dto.BulkRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	n, err := h.uc.BulkInsert(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.BulkResponse{OK: true, Count: n})
}

func recordID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil
}
