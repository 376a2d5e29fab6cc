package docx_test

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-pactra/internal/domain"
	"github.com/jhoicas/inventario-pactra/internal/infrastructure/docx"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:rPr><w:b/></w:rPr><w:t>Cliente: &lt;&lt;NOMBRE</w:t></w:r><w:r><w:t>CLIENTE&gt;&gt;</w:t></w:r></w:p>
<w:p><w:r><w:t>&lt;&lt; Direccion &gt;&gt;</w:t></w:r></w:p>
<w:p><w:r><w:t>Sin marcadores</w:t></w:r></w:p>
<w:p><w:r><w:t>Falta: [&lt;&lt;Inexistente&gt;&gt;]</w:t></w:r></w:p>
</w:body>
</w:document>`

const headerXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:hdr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:p><w:r><w:t>Factura &lt;&lt;InvoiceNo&gt;&gt;</w:t></w:r></w:p></w:hdr>`

func plantilla(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types/>`,
		"word/document.xml":   documentXML,
		"word/header1.xml":    headerXML,
		"word/media/logo.txt": "<<NOMBRECLIENTE>>",
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, body)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func parte(t *testing.T, pkg []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			b, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(b)
		}
	}
	t.Fatalf("parte %s no encontrada", name)
	return ""
}

func textos(t *testing.T, xml string) []string {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	var out []string
	for _, p := range doc.FindElements("//w:p") {
		var sb strings.Builder
		for _, e := range p.FindElements(".//*") {
			switch e.Tag {
			case "t":
				sb.WriteString(e.Text())
			case "br":
				sb.WriteString("\n")
			}
		}
		out = append(out, sb.String())
	}
	return out
}

func TestFill_MarcadoresPartidosYSaltosDeLinea(t *testing.T) {
	out, err := docx.NewFiller().Fill(plantilla(t), map[string]string{
		"NOMBRECLIENTE": "DONGJIN TECHWIN S.A DE C.V",
		"Direccion":     "Parque Industrial\nPesquería, N.L",
		"InvoiceNo":     "F-77",
	})
	require.NoError(t, err)

	doc := parte(t, out, "word/document.xml")
	assert.Equal(t, []string{
		"Cliente: DONGJIN TECHWIN S.A DE C.V",
		"Parque Industrial\nPesquería, N.L",
		"Sin marcadores",
		"Falta: []",
	}, textos(t, doc))
	assert.Contains(t, doc, `xml:space="preserve"`)
	assert.Contains(t, doc, "<w:b/>", "el formato de la primera corrida se conserva")

	assert.Equal(t, []string{"Factura F-77"}, textos(t, parte(t, out, "word/header1.xml")))
	assert.Equal(t, "<<NOMBRECLIENTE>>", parte(t, out, "word/media/logo.txt"), "otras partes se copian sin tocar")
}

func TestRender_PlantillaInexistente(t *testing.T) {
	_, err := docx.NewFiller().Render(context.Background(), filepath.Join(t.TempDir(), "plantilla_packing.docx"), nil)
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestFill_ArchivoInvalido(t *testing.T) {
	_, err := docx.NewFiller().Fill([]byte("no es docx"), nil)
	assert.Error(t, err)
}
