// Package packing arma los datos planos del packing list a partir del formulario
// de embarque y del directorio fijo de clientes.
package packing

import (
	"slices"
	"strings"
)

// Client datos de un cliente del directorio.
type Client struct {
	Name    string
	Address string // varias líneas separadas por \n
	City    string
}

// Directory directorio de clientes indexado por clave en mayúsculas.
type Directory map[string]Client

// DefaultDirectory clientes configurados para los embarques de Pesquería.
var DefaultDirectory = Directory{
	"DONGJIN": {
		Name:    "DONGJIN TECHWIN S.A DE C.V",
		Address: "Parque Industrial Jesus Maria\nPesquería, 66616, N.L\nDaniel 8110172194",
		City:    "PESQUERIA NL",
	},
	"TAESUNG": {
		Name:    "TAESUNG PRECISION CO. LTRD",
		Address: "Av. Parque Industrial Monterrey #600\nCol. Parque Industrial Monterrey\nApodaca, N.L. CP 66603",
		City:    "APODACA NL",
	},
}

// Lookup busca la clave sin distinguir mayúsculas. Si no existe, el texto recibido
// se usa como nombre y dirección/ciudad quedan vacías.
func (d Directory) Lookup(key string) (Client, bool) {
	if c, ok := d[strings.ToUpper(strings.TrimSpace(key))]; ok {
		return c, true
	}
	return Client{Name: strings.TrimSpace(key)}, false
}

// Keys claves disponibles, ordenadas.
func (d Directory) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
