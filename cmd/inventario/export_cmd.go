package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newExportCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exportar-modelos <salida.xlsx|salida.csv>",
		Short: "Descarga el resumen por modelo en Excel o CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := args[0]
			format := strings.TrimPrefix(strings.ToLower(filepath.Ext(dest)), ".")
			if format != "csv" && format != "xlsx" {
				return fmt.Errorf("extensión %q no soportada; use .xlsx o .csv", filepath.Ext(dest))
			}
			f, err := root.client().ExportModels(cmd.Context(), format)
			if err != nil {
				return err
			}
			if err := os.WriteFile(dest, f.Bytes, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", dest, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Resumen guardado en %s (%d bytes)\n", dest, len(f.Bytes))
			return nil
		},
	}
}
