package spreadsheet_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/inventario-pactra/internal/domain"
	"github.com/jhoicas/inventario-pactra/internal/domain/importer"
	"github.com/jhoicas/inventario-pactra/internal/infrastructure/spreadsheet"
)

// libro construye un .xlsx en memoria con celdas de distintos tipos.
func libro(t *testing.T) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]any{
		{"Fecha", "Tipo", "Modelo", "Piezas", "Dañado", "No. Lote"},
		{time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC), "Entrada", "KX-1", 120, true, "00123"},
		{45001, "Salida", "KX-1", 40, false, "L-9"},
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadGrid_XLSXTiposDeCelda(t *testing.T) {
	grid, err := spreadsheet.NewReader().ReadGrid("Movimientos.XLSX", libro(t))
	require.NoError(t, err)
	require.Len(t, grid, 3)

	assert.Equal(t, "Fecha", grid[0][0])
	assert.Equal(t, float64(120), grid[1][3])
	assert.Equal(t, true, grid[1][4])
	assert.Equal(t, false, grid[2][4])
	assert.Equal(t, "00123", grid[1][5], "texto con ceros a la izquierda se conserva")

	res, err := importer.Normalize(grid)
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "2023-03-15", res.Rows[0].Date)
	assert.Equal(t, "2023-03-16", res.Rows[1].Date)
	assert.True(t, res.Rows[0].Damaged)
}

func TestReadGrid_CSVPuntoYComaYWindows1252(t *testing.T) {
	text := "Fecha;Cliente;Qty;Lote\n15/03/2023;Año Nuevo;12;007\n"
	enc, err := charmap.Windows1252.NewEncoder().String(text)
	require.NoError(t, err)

	grid, err := spreadsheet.NewReader().ReadGrid("datos.csv", strings.NewReader(enc))
	require.NoError(t, err)
	require.Len(t, grid, 2)
	assert.Equal(t, "Año Nuevo", grid[1][1])
	assert.Equal(t, float64(12), grid[1][2])
	assert.Equal(t, "007", grid[1][3])
}

func TestReadGrid_FormatoNoSoportado(t *testing.T) {
	_, err := spreadsheet.NewReader().ReadGrid("viejo.xls", strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = spreadsheet.NewReader().ReadGrid("roto.xlsx", strings.NewReader("no es zip"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestWriteXLSX_SeLeeDeVuelta(t *testing.T) {
	var buf bytes.Buffer
	err := spreadsheet.WriteXLSX(&buf, spreadsheet.Table{
		Sheet:   "Modelos",
		Headers: []string{"Modelo", "Total Piezas"},
		Rows:    [][]any{{"KX", 140}},
		Widths:  []float64{20, 14},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Modelos")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Modelo", "Total Piezas"}, {"KX", "140"}}, rows)
}

func TestWriteCSV_ConBOM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, spreadsheet.WriteCSV(&buf, spreadsheet.Table{
		Headers: []string{"Modelo", "Con Daños"},
		Rows:    [][]any{{"KX, largo", 2}},
	}))
	assert.Equal(t, "\xEF\xBB\xBFModelo,Con Daños\n\"KX, largo\",2\n", buf.String())
}

func TestExporter_FormatoDesconocido(t *testing.T) {
	var buf bytes.Buffer
	err := spreadsheet.NewExporter().Export(&buf, "ods", "Hoja", []string{"A"}, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExporter_CSV(t *testing.T) {
	var buf bytes.Buffer
	err := spreadsheet.NewExporter().Export(&buf, "csv", "Hoja", []string{"Modelo", "Piezas"}, [][]any{{"KX-1", 140}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Modelo,Piezas\nKX-1,140\n")
}
