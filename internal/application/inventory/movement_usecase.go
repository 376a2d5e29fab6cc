package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/inventario-pactra/internal/application/dto"
	"github.com/jhoicas/inventario-pactra/internal/domain/entity"
	"github.com/jhoicas/inventario-pactra/internal/domain/repository"
	"github.com/jhoicas/inventario-pactra/pkg/logger"
)

// MovementUseCase CRUD y carga masiva de movimientos. Todas las escrituras pasan
// por un único mutex; las lecturas no se bloquean.
type MovementUseCase struct {
	repo repository.MovementRepository
	log  *logger.Logger
	mu   sync.Mutex
}

// NewMovementUseCase construye el caso de uso. log nil descarta los mensajes.
func NewMovementUseCase(repo repository.MovementRepository, log *logger.Logger) *MovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &MovementUseCase{repo: repo, log: log}
}

// Records conjunto completo en orden de id.
func (uc *MovementUseCase) Records(ctx context.Context) ([]entity.Movement, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	return list, nil
}

// List conjunto completo en forma de respuesta.
func (uc *MovementUseCase) List(ctx context.Context) ([]dto.MovementResponse, error) {
	list, err := uc.Records(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewMovementResponses(list), nil
}

// Create guarda el movimiento y lo devuelve con el id asignado.
func (uc *MovementUseCase) Create(ctx context.Context, in dto.MovementRequest) (*dto.MovementResponse, error) {
	m := in.ToEntity()
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err := uc.repo.Create(ctx, &m); err != nil {
		return nil, fmt.Errorf("crear movimiento: %w", err)
	}
	out := dto.NewMovementResponse(m)
	return &out, nil
}

// Update sobrescribe todos los campos. Un id inexistente no es error.
func (uc *MovementUseCase) Update(ctx context.Context, id int64, in dto.MovementRequest) error {
	m := in.ToEntity()
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err := uc.repo.Update(ctx, id, &m); err != nil {
		return fmt.Errorf("actualizar movimiento %d: %w", id, err)
	}
	return nil
}

// Delete elimina por id. Un id inexistente no es error.
func (uc *MovementUseCase) Delete(ctx context.Context, id int64) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar movimiento %d: %w", id, err)
	}
	return nil
}

// BulkInsert carga masiva desde la API.
func (uc *MovementUseCase) BulkInsert(ctx context.Context, in dto.BulkRequest) (int, error) {
	rows := make([]entity.Movement, 0, len(in.Rows))
	for _, r := range in.Rows {
		rows = append(rows, r.ToEntity())
	}
	return uc.Insert(ctx, rows, in.Replace)
}

// Insert inserta fila por fila; con replace vacía la tabla antes. Si falla a mitad
// las filas ya escritas permanecen.
func (uc *MovementUseCase) Insert(ctx context.Context, rows []entity.Movement, replace bool) (int, error) {
	for i := range rows {
		rows[i].Normalize()
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	n, err := uc.repo.BulkInsert(ctx, rows, replace)
	if err != nil {
		return n, fmt.Errorf("carga masiva: %w", err)
	}
	uc.log.Info().Int("count", n).Bool("replace", replace).Msg("carga masiva de movimientos")
	return n, nil
}

// Models modelos distintos, ordenados.
func (uc *MovementUseCase) Models(ctx context.Context) ([]string, error) {
	list, err := uc.repo.DistinctModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar modelos: %w", err)
	}
	return list, nil
}

// Containers contenedores distintos del modelo; modelo vacío devuelve lista vacía.
func (uc *MovementUseCase) Containers(ctx context.Context, model string) ([]string, error) {
	list, err := uc.repo.DistinctContainers(ctx, model)
	if err != nil {
		return nil, fmt.Errorf("listar contenedores: %w", err)
	}
	return list, nil
}
