package dto

import "github.com/jhoicas/inventario-pactra/internal/domain/packing"

// PackingListRequest body de POST /packing-document.
type PackingListRequest struct {
	Client      string      `json:"client"`
	Address     string      `json:"address"`
	City        string      `json:"city"`
	Model       string      `json:"model"`
	InvoiceNo   string      `json:"invoiceNo"`
	InvoiceDate string      `json:"invoiceDate"`
	Container   string      `json:"container"`
	Lot         string      `json:"lot"`
	Pallets     FlexInt     `json:"pallets"`
	Sacks       FlexInt     `json:"sacks"`
	NetWeight   FlexDecimal `json:"netWeight"`
	GrossWeight FlexDecimal `json:"grossWeight"`
	Truck       string      `json:"truck"`
	Driver      string      `json:"driver"`
	Plates      string      `json:"plates"`
	Remarks     string      `json:"remarks"`
}

// ToForm formulario del dominio.
func (r PackingListRequest) ToForm() packing.Form {
	return packing.Form{
		Client:      r.Client,
		Address:     r.Address,
		City:        r.City,
		Model:       r.Model,
		InvoiceNo:   r.InvoiceNo,
		InvoiceDate: r.InvoiceDate,
		Container:   r.Container,
		Lot:         r.Lot,
		Pallets:     int(r.Pallets),
		Sacks:       int(r.Sacks),
		NetWeight:   r.NetWeight.Decimal,
		GrossWeight: r.GrossWeight.Decimal,
		Truck:       r.Truck,
		Driver:      r.Driver,
		Plates:      r.Plates,
		Remarks:     r.Remarks,
	}
}
