package packing

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Shipper remitente que encabeza todos los packing list.
type Shipper struct {
	Name          string
	Address       []string
	PortOfLoading string
}

// DefaultShipper planta de Pesquería.
var DefaultShipper = Shipper{
	Name: "Pactra Mexico S. de R.L. de C.V.",
	Address: []string{
		"Blvd. Rogelio Pérez Arrambide 4502,",
		"Centro de Pesquería, 66653 Pesquería, N.L.",
	},
	PortOfLoading: "PESQUERIA NL",
}

// Form formulario de embarque tal como lo captura el operador.
type Form struct {
	Client      string // clave del directorio o nombre libre
	Address     string // si no está vacío reemplaza la dirección del directorio
	City        string // ídem para la ciudad destino
	Model       string
	InvoiceNo   string
	InvoiceDate string // YYYY-MM-DD
	Container   string
	Lot         string
	Pallets     int
	Sacks       int
	NetWeight   decimal.Decimal // kg por saco
	GrossWeight decimal.Decimal // kg; se recalcula si hay sacos o peso neto
	Truck       string
	Driver      string
	Plates      string
	Remarks     string
}

// Document datos planos listos para cualquier plantilla.
type Document struct {
	Shipper       Shipper
	ClientName    string
	ClientAddress string
	City          string
	InvoiceNo     string
	InvoiceDate   string // DD/MM/YYYY o placeholder
	Truck         string
	Driver        string
	Plates        string
	Container     string
	Lot           string
	Model         string
	Pallets       int
	Sacks         int
	NetWeight     decimal.Decimal
	GrossWeight   decimal.Decimal
	Remarks       string
}

// Assembler combina directorio de clientes y formulario.
type Assembler struct {
	dir     Directory
	shipper Shipper
}

// NewAssembler construye el ensamblador; dir nil usa DefaultDirectory.
func NewAssembler(dir Directory) *Assembler {
	if dir == nil {
		dir = DefaultDirectory
	}
	return &Assembler{dir: dir, shipper: DefaultShipper}
}

// Directory directorio de clientes en uso.
func (a *Assembler) Directory() Directory { return a.dir }

// Assemble aplana el formulario. placeholder es el texto de fechas ausentes.
func (a *Assembler) Assemble(f Form, placeholder string) Document {
	client, _ := a.dir.Lookup(f.Client)
	if addr := strings.TrimSpace(f.Address); addr != "" {
		client.Address = addr
	}
	if city := strings.TrimSpace(f.City); city != "" {
		client.City = city
	}

	sacks := max(f.Sacks, 0)
	net := decimal.Max(f.NetWeight, decimal.Zero)
	gross := decimal.Max(f.GrossWeight, decimal.Zero)
	if sacks != 0 || !net.IsZero() {
		gross = GrossWeight(sacks, net)
	}

	return Document{
		Shipper:       a.shipper,
		ClientName:    client.Name,
		ClientAddress: client.Address,
		City:          client.City,
		InvoiceNo:     strings.TrimSpace(f.InvoiceNo),
		InvoiceDate:   FormatDate(f.InvoiceDate, placeholder),
		Truck:         strings.TrimSpace(f.Truck),
		Driver:        strings.TrimSpace(f.Driver),
		Plates:        strings.TrimSpace(f.Plates),
		Container:     strings.TrimSpace(f.Container),
		Lot:           strings.TrimSpace(f.Lot),
		Model:         strings.TrimSpace(f.Model),
		Pallets:       max(f.Pallets, 0),
		Sacks:         sacks,
		NetWeight:     net,
		GrossWeight:   gross,
		Remarks:       strings.TrimSpace(f.Remarks),
	}
}

// GrossWeight sacos × peso neto por saco, redondeado a 2 decimales.
func GrossWeight(sacks int, net decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(sacks)).Mul(net).Round(2)
}

// Fields mapa de marcadores <<Campo>> de la plantilla DOCX.
func (d Document) Fields() map[string]string {
	return map[string]string{
		"NOMBRECLIENTE": d.ClientName,
		"Direccion":     d.ClientAddress,
		"Ciudad":        d.City,
		"InvoiceNo":     d.InvoiceNo,
		"InvoiceDate":   d.InvoiceDate,
		"Truck":         d.Truck,
		"Driver":        d.Driver,
		"Plates":        d.Plates,
		"Container":     d.Container,
		"Lote":          d.Lot,
		"Pallet":        strconv.Itoa(d.Pallets),
		"Saco":          strconv.Itoa(d.Sacks),
		"Modelo":        d.Model,
		"Peso":          d.NetWeight.String(),
		"PesoBruto":     d.GrossWeight.StringFixed(2),
		"Remarks":       d.Remarks,
	}
}

var unsafeNameRe = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// Filename PackingList_{factura|SN}_{YYYY-MM-DD}.{ext}
func Filename(invoiceNo string, today time.Time, ext string) string {
	inv := unsafeNameRe.ReplaceAllString(strings.TrimSpace(invoiceNo), "_")
	if inv == "" {
		inv = "SN"
	}
	return "PackingList_" + inv + "_" + today.Format(time.DateOnly) + "." + ext
}
