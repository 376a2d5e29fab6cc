package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

// Un .docx es un zip: empieza con "PK". Google devuelve HTML si el documento no es público.
var zipMagic = []byte("PK")

func newTemplateCmd(root *rootOptions) *cobra.Command {
	var dest, source string

	cmd := &cobra.Command{
		Use:   "plantilla",
		Short: "Descarga la plantilla DOCX del packing list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if source == "" {
				source = root.cfg.Packing.TemplateURL
			}
			if dest == "" {
				dest = root.cfg.Packing.TemplatePath
			}
			n, err := downloadTemplate(cmd, source, dest)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plantilla guardada en %s (%d bytes)\n", dest, n)
			return nil
		},
	}
	cmd.Flags().StringVar(&dest, "out", "", "Ruta de destino (por defecto PACKING_TEMPLATE_PATH)")
	cmd.Flags().StringVar(&source, "url", "", "URL de exportación DOCX (por defecto PACKING_TEMPLATE_URL)")
	return cmd
}

// downloadTemplate descarga a un temporal junto al destino y lo renombra al final;
// si algo falla el destino no se toca.
func downloadTemplate(cmd *cobra.Command, source, dest string) (int, error) {
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, source, nil)
	if err != nil {
		return 0, fmt.Errorf("plantilla: crear request: %w", err)
	}
	resp, err := (&http.Client{Timeout: time.Minute}).Do(req)
	if err != nil {
		return 0, fmt.Errorf("plantilla: descarga fallida: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("plantilla: la descarga respondió %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("plantilla: leer respuesta: %w", err)
	}
	if !bytes.HasPrefix(data, zipMagic) {
		return 0, fmt.Errorf("plantilla: la respuesta no es un .docx (¿el documento es público?)")
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".plantilla-*.docx")
	if err != nil {
		return 0, fmt.Errorf("plantilla: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("plantilla: escribir: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("plantilla: escribir: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return 0, fmt.Errorf("plantilla: %w", err)
	}
	return len(data), nil
}
