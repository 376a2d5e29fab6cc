package packing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventario-pactra/internal/application/dto"
	"github.com/jhoicas/inventario-pactra/internal/domain"
	"github.com/jhoicas/inventario-pactra/internal/domain/packing"
	"github.com/jhoicas/inventario-pactra/pkg/logger"
)

// Formatos de salida del packing list.
const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

var contentTypes = map[string]string{
	FormatPDF:  "application/pdf",
	FormatDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// TemplateRenderer llena la plantilla DOCX con los marcadores <<Campo>>.
type TemplateRenderer interface {
	Render(ctx context.Context, templatePath string, fields map[string]string) ([]byte, error)
}

// PDFRenderer genera el PDF del packing list.
type PDFRenderer interface {
	RenderPackingList(ctx context.Context, doc packing.Document) ([]byte, error)
}

// Document archivo generado.
type Document struct {
	Bytes       []byte
	Filename    string
	ContentType string
}

// PackingUseCase genera el packing list en PDF o DOCX.
type PackingUseCase struct {
	assembler    *packing.Assembler
	template     TemplateRenderer
	pdf          PDFRenderer
	templatePath string
	log          *logger.Logger
	now          func() time.Time
}

// NewPackingUseCase construye el caso de uso.
func NewPackingUseCase(
	assembler *packing.Assembler,
	template TemplateRenderer,
	pdf PDFRenderer,
	templatePath string,
	log *logger.Logger,
) *PackingUseCase {
	if assembler == nil {
		assembler = packing.NewAssembler(nil)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &PackingUseCase{
		assembler:    assembler,
		template:     template,
		pdf:          pdf,
		templatePath: templatePath,
		log:          log,
		now:          time.Now,
	}
}

// Clients claves del directorio de clientes, para el selector del formulario.
func (uc *PackingUseCase) Clients() []string {
	return uc.assembler.Directory().Keys()
}

// Generate arma el documento. format vacío equivale a pdf.
func (uc *PackingUseCase) Generate(ctx context.Context, req dto.PackingListRequest, format string) (*Document, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatPDF
	}

	var (
		out []byte
		err error
	)
	switch format {
	case FormatDOCX:
		doc := uc.assembler.Assemble(req.ToForm(), packing.DocxPlaceholder)
		out, err = uc.template.Render(ctx, uc.templatePath, doc.Fields())
	case FormatPDF:
		doc := uc.assembler.Assemble(req.ToForm(), packing.PDFPlaceholder)
		out, err = uc.pdf.RenderPackingList(ctx, doc)
	default:
		return nil, fmt.Errorf("formato %q no soportado: %w", format, domain.ErrValidation)
	}
	if err != nil {
		return nil, fmt.Errorf("generar packing list %s: %w", format, err)
	}

	name := packing.Filename(req.InvoiceNo, uc.now(), format)
	uc.log.Info().Str("format", format).Str("file", name).Int("bytes", len(out)).Msg("packing list generado")
	return &Document{Bytes: out, Filename: name, ContentType: contentTypes[format]}, nil
}
