package pdf

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore guarda los PDF generados en un directorio local y devuelve la ruta.
type FileStore struct {
	dir string
}

// NewFileStore construye el almacén de documentos sobre el directorio dado.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Save escribe el PDF como <dir>/<orderNumber>.pdf y devuelve la ruta final.
func (s *FileStore) Save(orderNumber string, pdf []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("crear directorio de documentos: %w", err)
	}
	path := filepath.Join(s.dir, orderNumber+".pdf")
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", fmt.Errorf("guardar documento: %w", err)
	}
	return path, nil
}
