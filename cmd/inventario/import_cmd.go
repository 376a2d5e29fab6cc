package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-pactra/internal/application/dto"
	"github.com/jhoicas/inventario-pactra/internal/domain/importer"
	"github.com/jhoicas/inventario-pactra/internal/infrastructure/spreadsheet"
)

type importOptions struct {
	replace bool
	dryRun  bool
}

func newImportCmd(root *rootOptions) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "importar <archivo.xlsx|archivo.csv>",
		Short: "Importa movimientos desde una hoja de cálculo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, root, args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.replace, "replace", false, "Borra todos los movimientos antes de importar")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Solo muestra la vista previa, no envía nada")
	return cmd
}

func runImport(cmd *cobra.Command, root *rootOptions, path string, opts importOptions) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()

	grid, err := spreadsheet.NewReader().ReadGrid(filepath.Base(path), f)
	if err != nil {
		return err
	}
	res, err := importer.Normalize(grid)
	if err != nil {
		return err
	}
	movements := res.Movements()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Filas detectadas: %d\n", len(movements))
	if len(res.Ignored) > 0 {
		fmt.Fprintf(out, "Columnas ignoradas: %v\n", res.Ignored)
	}
	previewRows := 8
	if root.cfg != nil && root.cfg.Import.PreviewRows > 0 {
		previewRows = root.cfg.Import.PreviewRows
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FECHA\tTIPO\tMODELO\tCONTENEDOR\tPALLETS\tPIEZAS\tDAÑADO")
	for _, m := range movements[:min(previewRows, len(movements))] {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n", m.Date, m.Type, m.Model, m.Container, m.Pallets, m.Pieces, m.DamagedPieces)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if opts.dryRun {
		return nil
	}

	rows := make([]dto.MovementRequest, 0, len(movements))
	for _, m := range movements {
		rows = append(rows, dto.NewMovementRequest(m))
	}
	n, err := root.client().Bulk(cmd.Context(), rows, opts.replace)
	if err != nil {
		return err
	}
	root.log.Info().Int("count", n).Bool("replace", opts.replace).Str("file", path).Msg("importación enviada")
	fmt.Fprintf(out, "Importados: %d\n", n)
	return nil
}
