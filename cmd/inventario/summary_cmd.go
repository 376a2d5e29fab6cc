package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-pactra/internal/domain/entity"
	"github.com/jhoicas/inventario-pactra/pkg/client"
)

func newSummaryCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resumen",
		Short: "Muestra el tablero: totales por tipo y últimos movimientos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache := client.NewRecordCache(root.client())
			d, err := cache.Dashboard(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Movimientos: %d   Pallets: %d   Piezas: %d   Con daño: %d\n\n", d.Total, d.Pallets, d.Pieces, d.Damaged)

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIPO\tCANTIDAD\t%")
			for _, s := range d.Types {
				fmt.Fprintf(tw, "%s\t%d\t%d%%\n", s.Kind.Label(), s.Count, s.Percent)
			}
			if d.Others > 0 {
				fmt.Fprintf(tw, "Otro\t%d\t\n", d.Others)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if len(d.Recent) == 0 {
				return nil
			}
			fmt.Fprintln(out, "\nÚltimos movimientos:")
			tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, m := range d.Recent {
				fmt.Fprintf(tw, "#%d\t%s\t%s\t%s\t%d pzs\t%s\n", m.ID, m.Date, m.Type, m.Model, m.Pieces, damageMark(m))
			}
			return tw.Flush()
		},
	}
}

func damageMark(m entity.Movement) string {
	if m.Damaged {
		return "dañado"
	}
	return ""
}
