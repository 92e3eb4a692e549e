package pdf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mandolyte/mdtopdf"
)

// Render converts markdown to an A4 portrait PDF. mdtopdf only writes to a
// file, so the document is rendered into a temporary directory under dir
// (the system default when empty) and read back.
func Render(markdown []byte, dir string) ([]byte, error) {
	tmp, err := os.MkdirTemp(dir, "pdf-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	path := filepath.Join(tmp, "document.pdf")
	renderer := mdtopdf.NewPdfRenderer("P", "A4", path, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(markdown); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	return out, nil
}
