package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-pactra/internal/domain"
	"github.com/jhoicas/inventario-pactra/internal/domain/entity"
	"github.com/jhoicas/inventario-pactra/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación sobre PostgreSQL. Acepta pool o tx (Querier).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// List todos los movimientos por id ascendente.
func (r *MovementRepo) List(ctx context.Context) ([]entity.Movement, error) {
	query := `
		SELECT id_movimiento, tipo_movimiento, fecha, cliente, contenedor, factura, modelo, no_lote,
		       pallets, piezas, piezas_danadas, danado
		FROM movimientos ORDER BY id_movimiento`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, fmt.Errorf("%w: tabla movimientos inexistente, falta migrar: %w", domain.ErrStorage, err)
		}
		return nil, fmt.Errorf("%w: list movements: %w", domain.ErrStorage, err)
	}
	defer rows.Close()

	list := []entity.Movement{}
	for rows.Next() {
		var m entity.Movement
		var tipo string
		if err := rows.Scan(&m.ID, &tipo, &m.Date, &m.Client, &m.Container, &m.Invoice, &m.Model,
			&m.LotNumber, &m.Pallets, &m.Pieces, &m.DamagedPieces, &m.Damaged); err != nil {
			return nil, fmt.Errorf("%w: scan movement: %w", domain.ErrStorage, err)
		}
		m.Type = entity.ParseMovementType(tipo)
		m.Normalize()
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list movements: %w", domain.ErrStorage, err)
	}
	return list, nil
}

const insertQuery = `
	INSERT INTO movimientos (tipo_movimiento, fecha, cliente, contenedor, factura, modelo, no_lote,
	                         pallets, piezas, piezas_danadas, danado)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING id_movimiento`

// Create persiste el movimiento y asigna m.ID.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if err := r.q.QueryRow(ctx, insertQuery, args(m)...).Scan(&m.ID); err != nil {
		return fmt.Errorf("%w: insert movement: %w", domain.ErrStorage, err)
	}
	return nil
}

// Update reemplaza todos los campos menos el id. Cero filas afectadas no es error.
func (r *MovementRepo) Update(ctx context.Context, id int64, m *entity.Movement) error {
	query := `
		UPDATE movimientos SET tipo_movimiento = $1, fecha = $2, cliente = $3, contenedor = $4,
		       factura = $5, modelo = $6, no_lote = $7, pallets = $8, piezas = $9,
		       piezas_danadas = $10, danado = $11
		WHERE id_movimiento = $12`
	if _, err := r.q.Exec(ctx, query, append(args(m), id)...); err != nil {
		return fmt.Errorf("%w: update movement %d: %w", domain.ErrStorage, id, err)
	}
	return nil
}

// Delete elimina por id.
func (r *MovementRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM movimientos WHERE id_movimiento = $1`, id); err != nil {
		return fmt.Errorf("%w: delete movement %d: %w", domain.ErrStorage, id, err)
	}
	return nil
}

// BulkInsert fila por fila y sin transacción: un fallo a mitad deja lo ya insertado.
// El reemplazo usa DELETE (no TRUNCATE ... RESTART IDENTITY) para no reutilizar ids.
func (r *MovementRepo) BulkInsert(ctx context.Context, rows []entity.Movement, replace bool) (int, error) {
	if replace {
		if _, err := r.q.Exec(ctx, `DELETE FROM movimientos`); err != nil {
			return 0, fmt.Errorf("%w: wipe movements: %w", domain.ErrStorage, err)
		}
	}
	for i := range rows {
		if _, err := r.q.Exec(ctx, insertQuery, args(&rows[i])...); err != nil {
			return 0, fmt.Errorf("%w: insert row %d: %w", domain.ErrStorage, i+1, err)
		}
	}
	return len(rows), nil
}

// DistinctModels modelos no vacíos, ordenados.
func (r *MovementRepo) DistinctModels(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, `
		SELECT DISTINCT modelo FROM movimientos WHERE modelo <> '' ORDER BY modelo`)
}

// DistinctContainers contenedores no vacíos del modelo, ordenados.
func (r *MovementRepo) DistinctContainers(ctx context.Context, model string) ([]string, error) {
	if model == "" {
		return []string{}, nil
	}
	return r.distinct(ctx, `
		SELECT DISTINCT contenedor FROM movimientos
		WHERE modelo = $1 AND contenedor <> '' ORDER BY contenedor`, model)
}

func (r *MovementRepo) distinct(ctx context.Context, query string, params ...any) ([]string, error) {
	rows, err := r.q.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("%w: distinct: %w", domain.ErrStorage, err)
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("%w: scan distinct: %w", domain.ErrStorage, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func args(m *entity.Movement) []any {
	return []any{
		m.Type.String(), m.Date, m.Client, m.Container, m.Invoice, m.Model, m.LotNumber,
		m.Pallets, m.Pieces, m.DamagedPieces, m.Damaged,
	}
}
