// Comando inventario: utilidades de línea de comandos sobre la API de inventario
// (importación de hojas de cálculo, resumen, exportación y descarga de la plantilla).
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-pactra/pkg/client"
	"github.com/jhoicas/inventario-pactra/pkg/config"
	"github.com/jhoicas/inventario-pactra/pkg/logger"
)

type rootOptions struct {
	apiURL string
	cfg    *config.Config
	log    *logger.Logger
}

func (o *rootOptions) client() *client.Client {
	return client.New(o.apiURL)
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "inventario",
		Short:         "Herramientas de línea de comandos del inventario Pactra",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.cfg = cfg
			if !cmd.Flags().Changed("api") {
				opts.apiURL = cfg.Client.APIURL
			}
			opts.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})
			return nil
		},
	}
	cmd.SetOut(out)
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api", "", "URL base de la API (por defecto API_URL)")

	cmd.AddCommand(
		newImportCmd(opts),
		newSummaryCmd(opts),
		newExportCmd(opts),
		newTemplateCmd(opts),
	)
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
