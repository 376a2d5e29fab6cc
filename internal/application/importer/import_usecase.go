package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/jhoicas/inventario-pactra/internal/application/dto"
	"github.com/jhoicas/inventario-pactra/internal/application/inventory"
	domimport "github.com/jhoicas/inventario-pactra/internal/domain/importer"
	"github.com/jhoicas/inventario-pactra/pkg/logger"
)

// DefaultPreviewRows filas que la vista previa muestra antes de confirmar.
const DefaultPreviewRows = 8

// GridReader convierte un archivo subido en una cuadrícula de celdas tipadas.
type GridReader interface {
	ReadGrid(filename string, src io.Reader) ([][]any, error)
}

// ImportUseCase importación de hojas de cálculo en dos pasos: vista previa y
// confirmación. La confirmación vuelve a leer el archivo; no hay estado entre pasos.
type ImportUseCase struct {
	reader      GridReader
	movements   *inventory.MovementUseCase
	previewRows int
	log         *logger.Logger
}

// NewImportUseCase construye el caso de uso. previewRows <= 0 usa DefaultPreviewRows.
func NewImportUseCase(reader GridReader, movements *inventory.MovementUseCase, previewRows int, log *logger.Logger) *ImportUseCase {
	if previewRows <= 0 {
		previewRows = DefaultPreviewRows
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ImportUseCase{reader: reader, movements: movements, previewRows: previewRows, log: log}
}

// Preview lee y normaliza sin guardar nada.
func (uc *ImportUseCase) Preview(filename string, src io.Reader) (*dto.ImportPreviewResponse, error) {
	res, err := uc.parse(filename, src)
	if err != nil {
		return nil, err
	}
	out := &dto.ImportPreviewResponse{
		Rows:        make([]dto.MovementRequest, 0, len(res.Rows)),
		Count:       len(res.Rows),
		PreviewRows: min(uc.previewRows, len(res.Rows)),
		Columns:     make(map[string]string, len(res.Columns)),
		Ignored:     res.Ignored,
	}
	if out.Ignored == nil {
		out.Ignored = []string{}
	}
	for header, field := range res.Columns {
		out.Columns[header] = field.String()
	}
	for _, m := range res.Movements() {
		out.Rows = append(out.Rows, dto.NewMovementRequest(m))
	}
	return out, nil
}

// Commit normaliza y guarda. Con replace se borran antes todos los movimientos.
func (uc *ImportUseCase) Commit(ctx context.Context, filename string, src io.Reader, replace bool) (int, error) {
	res, err := uc.parse(filename, src)
	if err != nil {
		return 0, err
	}
	n, err := uc.movements.Insert(ctx, res.Movements(), replace)
	if err != nil {
		return n, err
	}
	uc.log.Info().Str("file", filename).Int("count", n).Strs("ignored", res.Ignored).Msg("importación confirmada")
	return n, nil
}

func (uc *ImportUseCase) parse(filename string, src io.Reader) (*domimport.Result, error) {
	grid, err := uc.reader.ReadGrid(filename, src)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", filename, err)
	}
	res, err := domimport.Normalize(grid)
	if err != nil {
		return nil, fmt.Errorf("importar %s: %w", filename, err)
	}
	return res, nil
}
