// Package client es el cliente Go de la API de inventario. RecordCache mantiene
// una copia local del conjunto de movimientos para las vistas derivadas.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/inventario-pactra/internal/application/dto"
	"github.com/jhoicas/inventario-pactra/internal/domain"
)

// APIError respuesta de error de la API ({"error": ..., "code": ...}).
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api %d: %s", e.Status, e.Message)
}

// Is permite errors.Is contra los errores de dominio.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrTemplateNotFound:
		return e.Code == "TEMPLATE_NOT_FOUND"
	case domain.ErrNotFound:
		return e.Status == http.StatusNotFound
	case domain.ErrImport:
		return e.Code == "IMPORT"
	case domain.ErrValidation:
		return e.Status == http.StatusBadRequest
	case domain.ErrRenderBackend:
		return e.Code == "RENDER_BACKEND"
	case domain.ErrStorage:
		return e.Code == "STORAGE"
	}
	return false
}

// File archivo descargado.
type File struct {
	Bytes    []byte
	Filename string
}

// Client cliente HTTP de la API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New construye el cliente. baseURL sin barra final, p. ej. http://localhost:3000.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// La generación de PDF con soffice puede tardar.
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

// WithHTTPClient reemplaza el http.Client (tests, proxies).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// ── Movimientos ───────────────────────────────────────────────────────────────

// List GET /records.
func (c *Client) List(ctx context.Context) ([]dto.MovementResponse, error) {
	var out []dto.MovementResponse
	return out, c.doJSON(ctx, http.MethodGet, "/records", nil, &out)
}

// Create POST /records.
func (c *Client) Create(ctx context.Context, in dto.MovementRequest) (*dto.MovementResponse, error) {
	var out dto.MovementResponse
	if err := c.doJSON(ctx, http.MethodPost, "/records", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update PUT /records/:id.
func (c *Client) Update(ctx context.Context, id int64, in dto.MovementRequest) error {
	return c.doJSON(ctx, http.MethodPut, "/records/"+strconv.FormatInt(id, 10), in, nil)
}

// Delete DELETE /records/:id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/records/"+strconv.FormatInt(id, 10), nil, nil)
}

// Bulk POST /records/bulk; devuelve la cantidad insertada.
func (c *Client) Bulk(ctx context.Context, rows []dto.MovementRequest, replace bool) (int, error) {
	var out dto.BulkResponse
	err := c.doJSON(ctx, http.MethodPost, "/records/bulk", dto.BulkRequest{Rows: rows, Replace: replace}, &out)
	return out.Count, err
}

// ── Catálogos y vistas ────────────────────────────────────────────────────────

// Models GET /models.
func (c *Client) Models(ctx context.Context) ([]string, error) {
	var out []string
	return out, c.doJSON(ctx, http.MethodGet, "/models", nil, &out)
}

// Containers GET /containers?model=.
func (c *Client) Containers(ctx context.Context, model string) ([]string, error) {
	var out []string
	return out, c.doJSON(ctx, http.MethodGet, "/containers?"+url.Values{"model": {model}}.Encode(), nil, &out)
}

// Clients GET /clients.
func (c *Client) Clients(ctx context.Context) ([]string, error) {
	var out []string
	return out, c.doJSON(ctx, http.MethodGet, "/clients", nil, &out)
}

// Dashboard GET /dashboard.
func (c *Client) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	var out dto.DashboardResponse
	if err := c.doJSON(ctx, http.MethodGet, "/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ModelSummary GET /models/summary.
func (c *Client) ModelSummary(ctx context.Context, q, sort string) ([]dto.ModelGroupDTO, error) {
	var out []dto.ModelGroupDTO
	path := "/models/summary?" + url.Values{"q": {q}, "sort": {sort}}.Encode()
	return out, c.doJSON(ctx, http.MethodGet, path, nil, &out)
}

// ExportModels GET /models/summary/export.
func (c *Client) ExportModels(ctx context.Context, format string) (*File, error) {
	return c.download(ctx, http.MethodGet, "/models/summary/export?"+url.Values{"format": {format}}.Encode(), nil)
}

// ── Importación y documentos ──────────────────────────────────────────────────

// ImportPreview POST /import/preview.
func (c *Client) ImportPreview(ctx context.Context, filename string, src io.Reader) (*dto.ImportPreviewResponse, error) {
	body, contentType, err := multipartBody(filename, src, nil)
	if err != nil {
		return nil, err
	}
	var out dto.ImportPreviewResponse
	if err := c.do(ctx, http.MethodPost, "/import/preview", contentType, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Import POST /import.
func (c *Client) Import(ctx context.Context, filename string, src io.Reader, replace bool) (int, error) {
	body, contentType, err := multipartBody(filename, src, map[string]string{"replace": strconv.FormatBool(replace)})
	if err != nil {
		return 0, err
	}
	var out dto.BulkResponse
	err = c.do(ctx, http.MethodPost, "/import", contentType, body, &out)
	return out.Count, err
}

// PackingDocument POST /packing-document?format=.
func (c *Client) PackingDocument(ctx context.Context, in dto.PackingListRequest, format string) (*File, error) {
	return c.download(ctx, http.MethodPost, "/packing-document?"+url.Values{"format": {format}}.Encode(), in)
}

// Health GET /health.
func (c *Client) Health(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/health", nil, nil)
}

// ── Transporte ────────────────────────────────────────────────────────────────

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: serializar request: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, contentType, body, out)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	resp, err := c.send(ctx, method, path, contentType, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decodificar %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) download(ctx context.Context, method, path string, in any) (*File, error) {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("client: serializar request: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	resp, err := c.send(ctx, method, path, contentType, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("client: leer archivo: %w", err)
	}
	f := &File{Bytes: data}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		f.Filename = params["filename"]
	}
	return f, nil
}

// send ejecuta la petición y convierte las respuestas >= 400 en *APIError.
func (c *Client) send(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("client: crear request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("client: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	if resp.StatusCode < http.StatusBadRequest {
		return resp, nil
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	apiErr := &APIError{Status: resp.StatusCode}
	var er dto.ErrorResponse
	if json.Unmarshal(raw, &er) == nil && er.Error != "" {
		apiErr.Code, apiErr.Message = er.Code, er.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return nil, apiErr
}

func multipartBody(filename string, src io.Reader, fields map[string]string) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", fmt.Errorf("client: multipart: %w", err)
	}
	if _, err := io.Copy(fw, src); err != nil {
		return nil, "", fmt.Errorf("client: leer %s: %w", filename, err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("client: multipart: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("client: multipart: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}
