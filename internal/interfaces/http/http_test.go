package http_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-pactra/internal/application/dto"
	appimport "github.com/jhoicas/inventario-pactra/internal/application/importer"
	"github.com/jhoicas/inventario-pactra/internal/application/inventory"
	apppacking "github.com/jhoicas/inventario-pactra/internal/application/packing"
	"github.com/jhoicas/inventario-pactra/internal/infrastructure/docx"
	"github.com/jhoicas/inventario-pactra/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-pactra/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/inventario-pactra/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/inventario-pactra/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la aplicación completa sobre una base SQLite temporal.
// templatePath vacío apunta a una plantilla inexistente.
func buildTestApp(t *testing.T, templatePath string) *fiber.App {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(context.Background(), filepath.Join(dir, "inventario.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	if templatePath == "" {
		templatePath = filepath.Join(dir, "no-existe.docx")
	}
	movements := inventory.NewMovementUseCase(sqlite.NewMovementRepository(db), nil)
	return apphttp.NewApp(apphttp.AppConfig{Name: "inventario-test"}, apphttp.RouterDeps{
		Movements: movements,
		Views:     inventory.NewViewUseCase(movements, spreadsheet.NewExporter()),
		Import:    appimport.NewImportUseCase(spreadsheet.NewReader(), movements, 0, nil),
		Packing:   apppacking.NewPackingUseCase(nil, docx.NewFiller(), pdf.NewMarotoGenerator(), templatePath, nil),
	})
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func upload(t *testing.T, app *fiber.App, path, filename, content string, fields map[string]string) *http.Response {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.WriteString(fw, content)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestRecords_CicloCompleto(t *testing.T) {
	app := buildTestApp(t, "")

	resp := doJSON(t, app, http.MethodPost, "/records", `{
		"movementType": "Entrada", "date": "2024-03-05", "model": "KX-1",
		"palletCount": "2", "pieceCount": "120 pzs", "damagedPieceCount": 3
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decode[dto.MovementResponse](t, resp)
	assert.NotZero(t, created.ID)
	assert.Equal(t, 120, created.PieceCount)
	assert.True(t, created.IsDamaged)

	resp = doJSON(t, app, http.MethodPut, "/records/"+itoa(created.ID), `{"movementType":"Salida","model":"KX-2","pieceCount":5}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.OKResponse](t, resp).OK)

	list := decode[[]dto.MovementResponse](t, doJSON(t, app, http.MethodGet, "/records", ""))
	require.Len(t, list, 1)
	assert.Equal(t, "Salida", list[0].MovementType)
	assert.Equal(t, "KX-2", list[0].Model)
	assert.False(t, list[0].IsDamaged)

	resp = doJSON(t, app, http.MethodDelete, "/records/"+itoa(created.ID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list = decode[[]dto.MovementResponse](t, doJSON(t, app, http.MethodGet, "/records", ""))
	assert.Empty(t, list)
}

func TestRecords_IdInexistenteONoNumerico(t *testing.T) {
	app := buildTestApp(t, "")

	for _, path := range []string{"/records/999", "/records/abc"} {
		resp := doJSON(t, app, http.MethodDelete, path, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.True(t, decode[dto.OKResponse](t, resp).OK, path)
	}
	resp := doJSON(t, app, http.MethodPut, "/records/abc", `{"model":"X"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRecords_CuerpoInvalido(t *testing.T) {
	app := buildTestApp(t, "")

	resp := doJSON(t, app, http.MethodPost, "/records", `{"pieceCount": [1]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, decode[dto.ErrorResponse](t, resp).Error)
}

func TestBulk_ReemplazoYCatalogos(t *testing.T) {
	app := buildTestApp(t, "")

	resp := doJSON(t, app, http.MethodPost, "/records/bulk", `{"rows":[{"model":"viejo"}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/records/bulk", `{"replace": true, "rows": [
		{"movementType":"Entrada","model":"B","container":"C2"},
		{"movementType":"Entrada","model":"A","container":"C9"},
		{"movementType":"Salida","model":"A","container":"C1"},
		{"movementType":"Salida","model":"A","container":""}
	]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.BulkResponse](t, resp)
	assert.True(t, out.OK)
	assert.Equal(t, 4, out.Count)

	assert.Equal(t, []string{"A", "B"}, decode[[]string](t, doJSON(t, app, http.MethodGet, "/models", "")))
	assert.Equal(t, []string{"C1", "C9"}, decode[[]string](t, doJSON(t, app, http.MethodGet, "/containers?model=A", "")))
	assert.Equal(t, []string{"C2"}, decode[[]string](t, doJSON(t, app, http.MethodGet, "/containers/B", "")))
	assert.Empty(t, decode[[]string](t, doJSON(t, app, http.MethodGet, "/containers", "")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Vistas
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_Totales(t *testing.T) {
	app := buildTestApp(t, "")
	doJSON(t, app, http.MethodPost, "/records/bulk", `{"rows":[
		{"movementType":"Entrada","pieceCount":100,"date":"2024-01-01"},
		{"movementType":"Salida","pieceCount":40,"date":"2024-01-02"}
	]}`)

	d := decode[dto.DashboardResponse](t, doJSON(t, app, http.MethodGet, "/dashboard", ""))
	assert.Equal(t, 2, d.Total)
	assert.Equal(t, 1, d.Entries)
	assert.Equal(t, 1, d.Exits)
	assert.Equal(t, 140, d.Pieces)
	assert.Equal(t, 0, d.Damaged)
	require.Len(t, d.Breakdown, 5)
	assert.Equal(t, 50, d.Breakdown[0].Percent)
	assert.Equal(t, "2024-01-02", d.Recent[0].Date)
}

func TestView_FiltroYPaginaFueraDeRango(t *testing.T) {
	app := buildTestApp(t, "")
	var rows []string
	for range 20 {
		rows = append(rows, `{"movementType":"Entrada","client":"Dongjin"}`)
	}
	rows = append(rows, `{"movementType":"Salida","client":"Otro","isDamaged":"sí"}`)
	doJSON(t, app, http.MethodPost, "/records/bulk", `{"rows":[`+strings.Join(rows, ",")+`]}`)

	page := decode[dto.QueryResponse](t, doJSON(t, app, http.MethodGet, "/records/view?q=dong&sort=id&dir=asc&page=2", ""))
	assert.Equal(t, 20, page.Total)
	assert.Equal(t, 2, page.Pages)
	assert.Equal(t, 2, page.Page)
	assert.Len(t, page.Items, 5)

	page = decode[dto.QueryResponse](t, doJSON(t, app, http.MethodGet, "/records/view?page=7", ""))
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Items, 15)

	page = decode[dto.QueryResponse](t, doJSON(t, app, http.MethodGet, "/records/view?damaged=si", ""))
	assert.Equal(t, 1, page.Total)

	damaged := decode[[]dto.MovementResponse](t, doJSON(t, app, http.MethodGet, "/records/damaged", ""))
	require.Len(t, damaged, 1)
	assert.Equal(t, "Otro", damaged[0].Client)
}

func TestModels_ResumenDetalleYExportacion(t *testing.T) {
	app := buildTestApp(t, "")
	doJSON(t, app, http.MethodPost, "/records/bulk", `{"rows":[
		{"movementType":"Entrada","model":"KX-1","pieceCount":10},
		{"movementType":"Salida","model":"KX-1","pieceCount":4},
		{"movementType":"","model":"","pieceCount":1}
	]}`)

	groups := decode[[]dto.ModelGroupDTO](t, doJSON(t, app, http.MethodGet, "/models/summary?sort=pieces", ""))
	require.Len(t, groups, 2)
	assert.Equal(t, "KX-1", groups[0].Model)
	assert.Equal(t, 14, groups[0].Pieces)
	assert.Equal(t, 1, groups[1].ByType["Otro"])

	resp := doJSON(t, app, http.MethodGet, "/models/detail?name=KX-1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detail := decode[dto.ModelGroupDTO](t, resp)
	assert.Len(t, detail.Records, 2)

	resp = doJSON(t, app, http.MethodGet, "/models/detail?name=ZZ", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/models/summary/export?format=csv", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Resumen_Modelos_")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Modelo,Total Movimientos,Total Piezas")
	assert.Contains(t, string(body), "KX-1,2,14,0,0,1,1,0,0,0")

	resp = doJSON(t, app, http.MethodGet, "/models/summary/export?format=pdf", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación
// ──────────────────────────────────────────────────────────────────────────────

const csvImport = "Fecha;Tipo;Modelo;Piezas;Dañado\n15/03/23;Entrada;KX-1;120;si\n;;;;\n2023-03-16;Salida;KX-1;40;0\n"

func TestImport_VistaPreviaYConfirmacion(t *testing.T) {
	app := buildTestApp(t, "")

	resp := upload(t, app, "/import/preview", "datos.csv", csvImport, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	preview := decode[dto.ImportPreviewResponse](t, resp)
	assert.Equal(t, 2, preview.Count)
	assert.Equal(t, "2023-03-15", preview.Rows[0].Date)
	assert.Empty(t, decode[[]dto.MovementResponse](t, doJSON(t, app, http.MethodGet, "/records", "")))

	resp = upload(t, app, "/import", "datos.csv", csvImport, map[string]string{"replace": "true"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, decode[dto.BulkResponse](t, resp).Count)

	list := decode[[]dto.MovementResponse](t, doJSON(t, app, http.MethodGet, "/records", ""))
	require.Len(t, list, 2)
	assert.True(t, list[0].IsDamaged)
	assert.Equal(t, 1, list[0].DamagedPieceCount)
}

func TestImport_SoloEncabezados(t *testing.T) {
	app := buildTestApp(t, "")

	resp := upload(t, app, "/import", "datos.csv", "Fecha,Tipo\n", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "IMPORT", out.Code)
}

func TestImport_SinArchivo(t *testing.T) {
	app := buildTestApp(t, "")

	resp := doJSON(t, app, http.MethodPost, "/import/preview", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Packing list
// ──────────────────────────────────────────────────────────────────────────────

const packingBody = `{"client":"DONGJIN","invoiceNo":"F-100","invoiceDate":"2024-03-05","sacks":"10","netWeight":"25.5"}`

func plantillaDOCX(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`+
		`<w:p><w:r><w:t>&lt;&lt;InvoiceNo&gt;&gt; &lt;&lt;PesoBruto&gt;&gt; &lt;&lt;InvoiceDate&gt;&gt;</w:t></w:r></w:p>`+
		`</w:body></w:document>`)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "plantilla_packing.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestPacking_DOCXConPlantilla(t *testing.T) {
	app := buildTestApp(t, plantillaDOCX(t))

	resp := doJSON(t, app, http.MethodPost, "/packing-list", packingBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Regexp(t, `attachment; filename="PackingList_F-100_\d{4}-\d{2}-\d{2}\.docx"`, resp.Header.Get("Content-Disposition"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	xml, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Contains(t, string(xml), "F-100 255.00 05/03/2024")
}

func TestPacking_SinPlantilla(t *testing.T) {
	app := buildTestApp(t, "")

	resp := doJSON(t, app, http.MethodPost, "/packing-document?format=docx", packingBody)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "TEMPLATE_NOT_FOUND", out.Code)
	assert.Contains(t, out.Error, "inventario plantilla")
}

func TestPacking_PDF(t *testing.T) {
	app := buildTestApp(t, "")

	resp := doJSON(t, app, http.MethodPost, "/packing-document", packingBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Infraestructura HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth_YRequestID(t *testing.T) {
	app := buildTestApp(t, "")

	resp := doJSON(t, app, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))
	out := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", out["status"])
	assert.Equal(t, "inventario-test", out["service"])

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(apphttp.HeaderRequestID, "abc-123")
	resp2, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, "abc-123", resp2.Header.Get(apphttp.HeaderRequestID))
}

func TestRutaInexistente_FormatoDeError(t *testing.T) {
	app := buildTestApp(t, "")

	resp := doJSON(t, app, http.MethodGet, "/no-existe", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, decode[dto.ErrorResponse](t, resp).Error)
}

func itoa(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
