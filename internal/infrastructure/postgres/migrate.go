package postgres

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS movimientos (
	id_movimiento   BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
	tipo_movimiento TEXT    NOT NULL DEFAULT '',
	fecha           TEXT    NOT NULL DEFAULT '',
	cliente         TEXT    NOT NULL DEFAULT '',
	contenedor      TEXT    NOT NULL DEFAULT '',
	factura         TEXT    NOT NULL DEFAULT '',
	modelo          TEXT    NOT NULL DEFAULT '',
	no_lote         TEXT    NOT NULL DEFAULT '',
	pallets         INTEGER NOT NULL DEFAULT 0 CHECK (pallets >= 0),
	piezas          INTEGER NOT NULL DEFAULT 0 CHECK (piezas >= 0),
	piezas_danadas  INTEGER NOT NULL DEFAULT 0 CHECK (piezas_danadas >= 0),
	danado          BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE INDEX IF NOT EXISTS idx_movimientos_modelo ON movimientos (modelo);`

// Migrate crea la tabla de movimientos si no existe.
func Migrate(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrar esquema: %w", err)
	}
	return nil
}
