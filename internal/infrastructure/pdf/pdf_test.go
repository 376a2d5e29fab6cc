package pdf_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-pactra/internal/domain"
	"github.com/jhoicas/inventario-pactra/internal/domain/packing"
	"github.com/jhoicas/inventario-pactra/internal/infrastructure/pdf"
)

func documento() packing.Document {
	return packing.NewAssembler(nil).Assemble(packing.Form{
		Client:      "DONGJIN",
		InvoiceNo:   "F-100",
		InvoiceDate: "2024-06-01",
		Model:       "KX-1",
		Lot:         "L-9",
		Pallets:     2,
		Sacks:       10,
		NetWeight:   decimal.RequireFromString("25.5"),
		Truck:       "Kenworth",
	}, packing.PDFPlaceholder)
}

func TestMarotoGenerator_GeneraPDF(t *testing.T) {
	out, err := pdf.NewMarotoGenerator().RenderPackingList(context.Background(), documento())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe iniciar con la firma PDF")
}

type fillerMock struct{ mock.Mock }

func (m *fillerMock) Render(ctx context.Context, path string, fields map[string]string) ([]byte, error) {
	args := m.Called(ctx, path, fields)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func TestOfficeRenderer_SinLibreOffice(t *testing.T) {
	filler := new(fillerMock)
	r := pdf.NewOfficeRenderer(filler, "plantilla_packing.docx", "soffice-que-no-existe-xyz")

	_, err := r.RenderPackingList(context.Background(), documento())
	assert.ErrorIs(t, err, domain.ErrRenderBackend)
	filler.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything)
}
