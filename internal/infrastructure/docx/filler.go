// Package docx rellena plantillas Word con marcadores <<Campo>>.
//
// Word suele partir un marcador en varias corridas (w:r) según el historial de
// edición; por eso el texto se une por párrafo antes de reemplazar. Los saltos de
// línea del valor se convierten en w:br dentro de la misma corrida.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/jhoicas/inventario-pactra/internal/domain"
)

// Partes del paquete que pueden contener marcadores.
var partRe = regexp.MustCompile(`^word/(document|header\d*|footer\d*)\.xml$`)

var placeholderRe = regexp.MustCompile(`<<\s*([\p{L}\p{N}_]+)\s*>>`)

// Filler rellena plantillas DOCX.
type Filler struct{}

// NewFiller construye el rellenador.
func NewFiller() *Filler { return &Filler{} }

// Render lee la plantilla de disco y la rellena. Si el archivo no existe devuelve
// domain.ErrTemplateNotFound.
func (f *Filler) Render(_ context.Context, templatePath string, fields map[string]string) ([]byte, error) {
	tpl, err := os.ReadFile(templatePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, templatePath)
		}
		return nil, fmt.Errorf("docx: leer plantilla: %w", err)
	}
	return f.Fill(tpl, fields)
}

// Fill devuelve una copia del paquete con los marcadores reemplazados. Los
// marcadores sin valor quedan vacíos.
func (f *Filler) Fill(template []byte, fields map[string]string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(template), int64(len(template)))
	if err != nil {
		return nil, fmt.Errorf("docx: plantilla no es un archivo .docx válido: %w", err)
	}

	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for _, entry := range zr.File {
		if !partRe.MatchString(entry.Name) {
			if err := zw.Copy(entry); err != nil {
				return nil, fmt.Errorf("docx: copiar %s: %w", entry.Name, err)
			}
			continue
		}
		data, err := readEntry(entry)
		if err != nil {
			return nil, err
		}
		filled, err := fillPart(data, fields)
		if err != nil {
			return nil, fmt.Errorf("docx: %s: %w", entry.Name, err)
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: entry.Name, Method: zip.Deflate, Modified: entry.Modified})
		if err != nil {
			return nil, fmt.Errorf("docx: escribir %s: %w", entry.Name, err)
		}
		if _, err := w.Write(filled); err != nil {
			return nil, fmt.Errorf("docx: escribir %s: %w", entry.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("docx: cerrar paquete: %w", err)
	}
	return out.Bytes(), nil
}

func readEntry(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("docx: abrir %s: %w", entry.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("docx: leer %s: %w", entry.Name, err)
	}
	return data, nil
}

func fillPart(data []byte, fields map[string]string) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("xml inválido: %w", err)
	}
	for _, p := range doc.FindElements("//w:p") {
		fillParagraph(p, fields)
	}
	return doc.WriteToBytes()
}

func fillParagraph(p *etree.Element, fields map[string]string) {
	// Solo los w:t de este párrafo, no los de cuadros de texto anidados.
	var texts []*etree.Element
	for _, t := range p.FindElements(".//w:t") {
		if owner(t) == p {
			texts = append(texts, t)
		}
	}
	if len(texts) == 0 {
		return
	}
	var full strings.Builder
	for _, t := range texts {
		full.WriteString(t.Text())
	}
	if !strings.Contains(full.String(), "<<") {
		return
	}

	replaced := placeholderRe.ReplaceAllStringFunc(full.String(), func(m string) string {
		key := placeholderRe.FindStringSubmatch(m)[1]
		return fields[key]
	})
	for _, t := range texts[1:] {
		t.SetText("")
	}
	setMultiline(texts[0], replaced)
}

// owner párrafo más cercano que contiene al elemento.
func owner(e *etree.Element) *etree.Element {
	for p := e.Parent(); p != nil; p = p.Parent() {
		if p.Space == "w" && p.Tag == "p" {
			return p
		}
	}
	return nil
}

func setMultiline(t *etree.Element, text string) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	preserve(t)
	t.SetText(lines[0])
	run := t.Parent()
	idx := t.Index()
	for _, line := range lines[1:] {
		br := etree.NewElement("w:br")
		run.InsertChildAt(idx+1, br)
		nt := etree.NewElement("w:t")
		preserve(nt)
		nt.SetText(line)
		run.InsertChildAt(idx+2, nt)
		idx += 2
	}
}

func preserve(t *etree.Element) {
	t.CreateAttr("xml:space", "preserve")
}
