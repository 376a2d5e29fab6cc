package packing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-pactra/internal/domain/packing"
)

func TestGrossWeight_DiezSacos(t *testing.T) {
	got := packing.GrossWeight(10, decimal.RequireFromString("25.5"))
	assert.True(t, got.Equal(decimal.RequireFromString("255")))
	assert.Equal(t, "255.00", got.StringFixed(2))

	redondeo := packing.GrossWeight(3, decimal.RequireFromString("0.3333"))
	assert.Equal(t, "1.00", redondeo.StringFixed(2))
}

func TestAssemble_ClienteDelDirectorio(t *testing.T) {
	a := packing.NewAssembler(nil)
	doc := a.Assemble(packing.Form{
		Client:      " dongjin ",
		InvoiceNo:   "F-12",
		InvoiceDate: "2024-03-09",
		Sacks:       10,
		NetWeight:   decimal.RequireFromString("25.5"),
		GrossWeight: decimal.RequireFromString("1"),
	}, packing.DocxPlaceholder)

	assert.Equal(t, "DONGJIN TECHWIN S.A DE C.V", doc.ClientName)
	assert.Equal(t, "PESQUERIA NL", doc.City)
	assert.Contains(t, doc.ClientAddress, "Jesus Maria")
	assert.Equal(t, "09/03/2024", doc.InvoiceDate)
	assert.Equal(t, "255.00", doc.GrossWeight.StringFixed(2), "el peso bruto se recalcula")
}

func TestAssemble_ClienteDesconocidoYManuales(t *testing.T) {
	a := packing.NewAssembler(nil)
	doc := a.Assemble(packing.Form{Client: "Acme SA"}, packing.PDFPlaceholder)
	assert.Equal(t, "Acme SA", doc.ClientName)
	assert.Empty(t, doc.ClientAddress)
	assert.Empty(t, doc.City)
	assert.Equal(t, packing.PDFPlaceholder, doc.InvoiceDate)

	manual := a.Assemble(packing.Form{Client: "TAESUNG", City: "MONTERREY NL", Address: "Otra 1"}, "")
	assert.Equal(t, "TAESUNG PRECISION CO. LTRD", manual.ClientName)
	assert.Equal(t, "MONTERREY NL", manual.City)
	assert.Equal(t, "Otra 1", manual.ClientAddress)
}

func TestAssemble_PesoBrutoManualSinSacos(t *testing.T) {
	a := packing.NewAssembler(nil)
	doc := a.Assemble(packing.Form{GrossWeight: decimal.RequireFromString("812.4")}, "")
	assert.Equal(t, "812.40", doc.GrossWeight.StringFixed(2))
}

func TestAssemble_SacosNegativosNoDanPesoNegativo(t *testing.T) {
	a := packing.NewAssembler(nil)
	doc := a.Assemble(packing.Form{Sacks: -3, NetWeight: decimal.RequireFromString("25.5")}, "")
	assert.Equal(t, 0, doc.Sacks)
	assert.Equal(t, "0.00", doc.GrossWeight.StringFixed(2))

	neto := a.Assemble(packing.Form{Sacks: 4, NetWeight: decimal.RequireFromString("-2")}, "")
	assert.True(t, neto.NetWeight.IsZero())
	assert.Equal(t, "0.00", neto.GrossWeight.StringFixed(2))
}

func TestFields_Marcadores(t *testing.T) {
	a := packing.NewAssembler(nil)
	f := a.Assemble(packing.Form{
		Client: "TAESUNG", Lot: "L-1", Pallets: 2, Sacks: 4,
		NetWeight: decimal.RequireFromString("12.5"),
	}, packing.DocxPlaceholder).Fields()

	for _, k := range []string{
		"NOMBRECLIENTE", "Direccion", "Ciudad", "InvoiceNo", "InvoiceDate", "Truck", "Driver",
		"Plates", "Container", "Lote", "Pallet", "Saco", "Modelo", "Peso", "PesoBruto",
	} {
		require.Contains(t, f, k)
	}
	assert.Equal(t, "50.00", f["PesoBruto"])
	assert.Equal(t, "12.5", f["Peso"])
	assert.Equal(t, "", f["InvoiceDate"])
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "31/12/2024", packing.FormatDate("2024-12-31", ""))
	assert.Equal(t, "—", packing.FormatDate("31/12/2024", "—"))
	assert.Equal(t, "", packing.FormatDate("2024-13-40", ""))
	assert.Equal(t, "", packing.FormatDate("", ""))
	assert.Equal(t, "—", packing.FormatDate("2024-03-09basura", "—"))
}

func TestFilename(t *testing.T) {
	today := time.Date(2024, 7, 1, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "PackingList_F_12_A_2024-07-01.pdf", packing.Filename("F/12 A", today, "pdf"))
	assert.Equal(t, "PackingList_SN_2024-07-01.docx", packing.Filename("  ", today, "docx"))
}
