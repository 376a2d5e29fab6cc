// Package sqlite implementa el almacén de movimientos sobre un archivo SQLite
// (driver modernc.org/sqlite, sin cgo). El esquema es compatible con el
// inventario.db histórico, de modo que un archivo existente se abre tal cual.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS movimientos (
	id_movimiento   INTEGER PRIMARY KEY AUTOINCREMENT,
	tipo_movimiento TEXT    DEFAULT '',
	fecha           TEXT    DEFAULT '',
	cliente         TEXT    DEFAULT '',
	contenedor      TEXT    DEFAULT '',
	factura         TEXT    DEFAULT '',
	modelo          TEXT    DEFAULT '',
	no_lote         TEXT    DEFAULT '',
	pallets         INTEGER DEFAULT 0,
	piezas          INTEGER DEFAULT 0,
	piezas_danadas  INTEGER DEFAULT 0,
	danado          INTEGER DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_movimientos_modelo ON movimientos (modelo);`

// Open abre (o crea) la base en path con WAL y busy_timeout, y aplica el esquema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	q := url.Values{}
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "busy_timeout(5000)")
	db, err := sql.Open("sqlite", "file:"+path+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate crea la tabla de movimientos si no existe.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrar esquema: %w", err)
	}
	return nil
}
