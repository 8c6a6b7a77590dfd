package storage

import (
	"io"
)

// ImageStore define la interfaz para guardar imágenes de productos.
type ImageStore interface {
	// Save persiste el contenido y devuelve la ruta pública servible.
	Save(filename string, r io.Reader) (string, error)
}
