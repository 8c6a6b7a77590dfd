package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// DiskImageStore guarda imágenes en disco bajo un directorio servido como
// estático. Los nombres se prefijan con el timestamp para evitar colisiones.
type DiskImageStore struct {
	dir          string
	publicPrefix string
}

func NewDiskImageStore(dir string) (*DiskImageStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("image store dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &DiskImageStore{
		dir:          dir,
		publicPrefix: "/uploads/itemImages",
	}, nil
}

func (s *DiskImageStore) Save(filename string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeFilename(filename))
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return path.Join(s.publicPrefix, name), nil
}

// sanitizeFilename descarta componentes de ruta y caracteres problemáticos.
func sanitizeFilename(filename string) string {
	base := filepath.Base(strings.TrimSpace(filename))
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "image"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
}
