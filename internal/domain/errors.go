package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")

	// ErrValidation agrupa los errores que se reportan al usuario sin escribir nada.
	ErrValidation = errors.New("datos inválidos")
	// ErrImport archivo de importación sin filas de datos utilizables.
	ErrImport = fmt.Errorf("%w: importación", ErrValidation)

	ErrStorage = errors.New("error de almacenamiento")

	// ErrTemplateNotFound la plantilla DOCX del packing list no existe en disco.
	ErrTemplateNotFound = errors.New("plantilla de packing list no encontrada")
	// ErrRenderBackend no hay motor disponible para generar el documento.
	ErrRenderBackend = errors.New("motor de generación de documentos no disponible")
)
