package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/inventario-pactra/internal/domain"
	"github.com/jhoicas/inventario-pactra/internal/domain/entity"
	"github.com/jhoicas/inventario-pactra/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del puerto MovementRepository sobre SQLite.
type MovementRepo struct {
	db *sql.DB
}

// NewMovementRepository construye el adaptador.
func NewMovementRepository(db *sql.DB) *MovementRepo {
	return &MovementRepo{db: db}
}

const selectColumns = `
	SELECT id_movimiento, COALESCE(tipo_movimiento, ''), COALESCE(fecha, ''), COALESCE(cliente, ''),
	       COALESCE(contenedor, ''), COALESCE(factura, ''), COALESCE(modelo, ''), COALESCE(no_lote, ''),
	       COALESCE(pallets, 0), COALESCE(piezas, 0), COALESCE(piezas_danadas, 0), COALESCE(danado, 0)
	FROM movimientos`

// List devuelve todos los movimientos por id ascendente.
func (r *MovementRepo) List(ctx context.Context) ([]entity.Movement, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY id_movimiento`)
	if err != nil {
		return nil, fmt.Errorf("%w: listar movimientos: %w", domain.ErrStorage, err)
	}
	defer rows.Close()

	list := []entity.Movement{}
	for rows.Next() {
		var (
			m       entity.Movement
			tipo    string
			damaged int64
		)
		if err := rows.Scan(&m.ID, &tipo, &m.Date, &m.Client, &m.Container, &m.Invoice, &m.Model,
			&m.LotNumber, &m.Pallets, &m.Pieces, &m.DamagedPieces, &damaged); err != nil {
			return nil, fmt.Errorf("%w: leer movimiento: %w", domain.ErrStorage, err)
		}
		m.Type = entity.ParseMovementType(tipo)
		m.Damaged = damaged != 0
		m.Normalize()
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listar movimientos: %w", domain.ErrStorage, err)
	}
	return list, nil
}

const insertQuery = `
	INSERT INTO movimientos (tipo_movimiento, fecha, cliente, contenedor, factura, modelo, no_lote,
	                         pallets, piezas, piezas_danadas, danado)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Create inserta el movimiento y asigna m.ID.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	res, err := r.db.ExecContext(ctx, insertQuery, args(m)...)
	if err != nil {
		return fmt.Errorf("%w: crear movimiento: %w", domain.ErrStorage, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("%w: id del movimiento: %w", domain.ErrStorage, err)
	}
	m.ID = id
	return nil
}

// Update reemplaza todos los campos excepto el id.
func (r *MovementRepo) Update(ctx context.Context, id int64, m *entity.Movement) error {
	query := `
		UPDATE movimientos SET tipo_movimiento = ?, fecha = ?, cliente = ?, contenedor = ?, factura = ?,
		       modelo = ?, no_lote = ?, pallets = ?, piezas = ?, piezas_danadas = ?, danado = ?
		WHERE id_movimiento = ?`
	if _, err := r.db.ExecContext(ctx, query, append(args(m), id)...); err != nil {
		return fmt.Errorf("%w: actualizar movimiento %d: %w", domain.ErrStorage, id, err)
	}
	return nil
}

// Delete elimina por id.
func (r *MovementRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM movimientos WHERE id_movimiento = ?`, id); err != nil {
		return fmt.Errorf("%w: eliminar movimiento %d: %w", domain.ErrStorage, id, err)
	}
	return nil
}

// BulkInsert inserta fila por fila. Con replace borra la tabla antes; AUTOINCREMENT
// garantiza que los ids borrados no se reutilizan.
func (r *MovementRepo) BulkInsert(ctx context.Context, rows []entity.Movement, replace bool) (int, error) {
	if replace {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM movimientos`); err != nil {
			return 0, fmt.Errorf("%w: vaciar movimientos: %w", domain.ErrStorage, err)
		}
	}
	stmt, err := r.db.PrepareContext(ctx, insertQuery)
	if err != nil {
		return 0, fmt.Errorf("%w: preparar inserción: %w", domain.ErrStorage, err)
	}
	defer stmt.Close()
	for i := range rows {
		if _, err := stmt.ExecContext(ctx, args(&rows[i])...); err != nil {
			return 0, fmt.Errorf("%w: insertar fila %d: %w", domain.ErrStorage, i+1, err)
		}
	}
	return len(rows), nil
}

// DistinctModels modelos no vacíos, ordenados.
func (r *MovementRepo) DistinctModels(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, `
		SELECT DISTINCT modelo FROM movimientos
		WHERE modelo IS NOT NULL AND modelo != '' ORDER BY modelo`)
}

// DistinctContainers contenedores no vacíos del modelo, ordenados.
func (r *MovementRepo) DistinctContainers(ctx context.Context, model string) ([]string, error) {
	if model == "" {
		return []string{}, nil
	}
	return r.distinct(ctx, `
		SELECT DISTINCT contenedor FROM movimientos
		WHERE modelo = ? AND contenedor IS NOT NULL AND contenedor != '' ORDER BY contenedor`, model)
}

func (r *MovementRepo) distinct(ctx context.Context, query string, params ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("%w: consulta de valores: %w", domain.ErrStorage, err)
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("%w: leer valor: %w", domain.ErrStorage, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func args(m *entity.Movement) []any {
	damaged := 0
	if m.Damaged {
		damaged = 1
	}
	return []any{
		m.Type.String(), m.Date, m.Client, m.Container, m.Invoice, m.Model, m.LotNumber,
		m.Pallets, m.Pieces, m.DamagedPieces, damaged,
	}
}
