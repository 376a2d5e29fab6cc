package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-pactra/internal/application/dto"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movimientos.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const csvMovimientos = "Tipo,Fecha,Modelo,Contenedor,Pallets,Piezas,Daño\n" +
	"Entrada,05/03/2024,M-100,CONT-1,2,40,\n" +
	"Salida,2024-03-06,M-200,CONT-2,1,10,3\n"

// ──────────────────────────────────────────────────────────────────────────────
// importar
// ──────────────────────────────────────────────────────────────────────────────

func TestImportar_DryRunNoLlamaALaAPI(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }))
	defer srv.Close()

	path := writeCSV(t, csvMovimientos)
	out, err := run(t, "--api", srv.URL, "importar", path, "--dry-run")

	require.NoError(t, err)
	assert.Contains(t, out, "Filas detectadas: 2")
	assert.Contains(t, out, "2024-03-05")
	assert.Contains(t, out, "M-200")
	assert.Zero(t, calls)
}

func TestImportar_EnviaLoteConReplace(t *testing.T) {
	var got dto.BulkRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/records/bulk", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(dto.BulkResponse{OK: true, Count: len(got.Rows)})
	}))
	defer srv.Close()

	path := writeCSV(t, csvMovimientos)
	out, err := run(t, "--api", srv.URL, "importar", path, "--replace")

	require.NoError(t, err)
	assert.Contains(t, out, "Importados: 2")
	assert.True(t, got.Replace)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "Salida", got.Rows[1].MovementType)
	assert.Equal(t, 3, int(got.Rows[1].DamagedPieceCount))
	assert.True(t, bool(got.Rows[1].IsDamaged))
}

func TestImportar_ArchivoSoloEncabezados(t *testing.T) {
	path := writeCSV(t, "Tipo,Fecha,Modelo\n")
	_, err := run(t, "importar", path, "--dry-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "al menos una fila")
}

// ──────────────────────────────────────────────────────────────────────────────
// plantilla
// ──────────────────────────────────────────────────────────────────────────────

func TestPlantilla_DescargaSiguiendoRedireccion(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/export", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusFound)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("PK\x03\x04contenido"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "plantilla.docx")
	out, err := run(t, "plantilla", "--url", srv.URL+"/export", "--out", dest)

	require.NoError(t, err)
	assert.Contains(t, out, "Plantilla guardada")
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "PK\x03\x04contenido", string(data))
}

func TestPlantilla_RespuestaHTMLNoSobrescribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>login</html>"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "plantilla.docx")
	require.NoError(t, os.WriteFile(dest, []byte("anterior"), 0o644))

	_, err := run(t, "plantilla", "--url", srv.URL, "--out", dest)

	require.Error(t, err)
	data, _ := os.ReadFile(dest)
	assert.Equal(t, "anterior", string(data))
}

// ──────────────────────────────────────────────────────────────────────────────
// exportar-modelos
// ──────────────────────────────────────────────────────────────────────────────

func TestExportarModelos_ExtensionNoSoportada(t *testing.T) {
	_, err := run(t, "exportar-modelos", "salida.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no soportada")
}

func TestExportarModelos_GuardaArchivo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "csv", r.URL.Query().Get("format"))
		w.Header().Set("Content-Disposition", `attachment; filename="Resumen_Modelos_2024-03-05.csv"`)
		_, _ = w.Write([]byte("Modelo\nM-100\n"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "resumen.csv")
	_, err := run(t, "--api", srv.URL, "exportar-modelos", dest)

	require.NoError(t, err)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "Modelo\nM-100\n", string(data))
}
