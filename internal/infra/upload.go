package infra

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// CaminhoUpload returns where an uploaded file named nome should be stored
// under dir, creating dir when needed. The original base name is kept after a
// random prefix so concurrent uploads never overwrite each other.
func CaminhoUpload(dir, nome string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("upload: create dir: %w", err)
	}
	base := filepath.Base(strings.ReplaceAll(nome, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "arquivo.xml"
	}
	return filepath.Join(dir, uuid.NewString()+"_"+base), nil
}
