package inventory

import "io"

// SummaryExporter escribe una tabla en el formato pedido ("csv" | "xlsx").
type SummaryExporter interface {
	Export(w io.Writer, format, sheet string, headers []string, rows [][]any) error
}
