package render

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// Renderable is anything go-echarts can render: single charts and pages
// both satisfy it.
type Renderable interface {
	Render(w io.Writer) error
}

// WriteHTML renders a figure to an HTML file.
func WriteHTML(r Renderable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %v", path)
	}
	if err := r.Render(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "rendering to %v", path)
	}
	return errors.Wrapf(f.Close(), "closing %v", path)
}
