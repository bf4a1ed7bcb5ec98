package diag

import (
	"fmt"
	"io"

	"exprc/internal/source"
)

// Render writes a human-readable, one-per-line listing of the bag into w.
// Positions are resolved against fs.
func Render(w io.Writer, fs *source.FileSet, b *Bag) {
	for _, d := range b.Items() {
		if int(d.Primary.File) >= fs.Len() {
			fmt.Fprintf(w, "%s[%s]: %s\n", d.Severity, d.Code, d.Message)
			for _, n := range d.Notes {
				fmt.Fprintf(w, "  note: %s\n", n.Msg)
			}
			continue
		}
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s[%s]: %s\n",
			f.Path, start.Line, start.Col, d.Severity, d.Code, d.Message)
		for _, n := range d.Notes {
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  note %d:%d: %s\n", ns.Line, ns.Col, n.Msg)
		}
	}
}
