package repository

import (
	"context"

	"github.com/jhoicas/inventario-pactra/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia de la tabla de movimientos.
// Update y Delete sobre un id inexistente no son error (cero filas afectadas).
type MovementRepository interface {
	List(ctx context.Context) ([]entity.Movement, error)
	Create(ctx context.Context, m *entity.Movement) error
	Update(ctx context.Context, id int64, m *entity.Movement) error
	Delete(ctx context.Context, id int64) error
	// BulkInsert inserta fila por fila, sin transacción; con replace borra todo antes.
	BulkInsert(ctx context.Context, rows []entity.Movement, replace bool) (int, error)
	DistinctModels(ctx context.Context) ([]string, error)
	DistinctContainers(ctx context.Context, model string) ([]string, error)
}
