package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-pactra/internal/domain"
	"github.com/jhoicas/inventario-pactra/internal/domain/packing"
)

// TemplateFiller rellena la plantilla DOCX (docx.Filler).
type TemplateFiller interface {
	Render(ctx context.Context, templatePath string, fields map[string]string) ([]byte, error)
}

// OfficeRenderer rellena la plantilla y la convierte a PDF con LibreOffice en modo headless.
type OfficeRenderer struct {
	filler       TemplateFiller
	templatePath string
	binary       string
}

// NewOfficeRenderer binary suele ser "soffice" o "libreoffice".
func NewOfficeRenderer(filler TemplateFiller, templatePath, binary string) *OfficeRenderer {
	if binary == "" {
		binary = "soffice"
	}
	return &OfficeRenderer{filler: filler, templatePath: templatePath, binary: binary}
}

// RenderPackingList genera el PDF a partir de la plantilla DOCX.
func (r *OfficeRenderer) RenderPackingList(ctx context.Context, doc packing.Document) ([]byte, error) {
	bin, err := exec.LookPath(r.binary)
	if err != nil {
		return nil, fmt.Errorf("%w: no se encontró %q; instale LibreOffice o use PDF_BACKEND=maroto", domain.ErrRenderBackend, r.binary)
	}
	docx, err := r.filler.Render(ctx, r.templatePath, doc.Fields())
	if err != nil {
		return nil, err
	}
	return convert(ctx, bin, docx)
}

func convert(ctx context.Context, bin string, docx []byte) ([]byte, error) {
	dir, err := os.MkdirTemp("", "packing-*")
	if err != nil {
		return nil, fmt.Errorf("pdf: directorio temporal: %w", err)
	}
	defer os.RemoveAll(dir)

	base := uuid.NewString()
	in := filepath.Join(dir, base+".docx")
	if err := os.WriteFile(in, docx, 0o600); err != nil {
		return nil, fmt.Errorf("pdf: escribir docx temporal: %w", err)
	}

	// Perfil propio: dos conversiones simultáneas no compiten por el bloqueo del perfil del usuario.
	profile := "-env:UserInstallation=file://" + filepath.ToSlash(filepath.Join(dir, "profile"))
	cmd := exec.CommandContext(ctx, bin, profile, "--headless", "--convert-to", "pdf", "--outdir", dir, in)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%w: conversión con LibreOffice falló: %w: %s",
			domain.ErrRenderBackend, err, strings.TrimSpace(string(out)))
	}

	pdf, err := os.ReadFile(filepath.Join(dir, base+".pdf"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: LibreOffice no produjo el PDF", domain.ErrRenderBackend)
		}
		return nil, fmt.Errorf("pdf: leer resultado: %w", err)
	}
	return pdf, nil
}
