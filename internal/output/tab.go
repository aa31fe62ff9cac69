// Package output provides plan and highlight output formatters.
package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/vibe-structure/internal/represent"
	"github.com/inodb/vibe-structure/internal/structure"
)

// TabWriter writes representation plans in tab-delimited format.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Slot",
			"Selector",
			"Mode",
			"Colorer",
			"Color",
			"Material",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes one representation at the given slot index.
func (tw *TabWriter) Write(slot int, rep represent.Representation) error {
	// "-" means no override, '' an explicit empty one.
	color := "-"
	if rep.Color != nil {
		color = *rep.Color
		if color == "" {
			color = "''"
		}
	}

	values := []string{
		strconv.Itoa(slot),
		rep.Selector,
		rep.Mode,
		rep.Colorer,
		color,
		rep.Material,
	}

	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// WritePlan writes every representation of a plan in slot order.
func (tw *TabWriter) WritePlan(reps []represent.Representation) error {
	for i, rep := range reps {
		if err := tw.Write(i, rep); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

// WriteHighlights writes chain highlights as "#Chain Start End" rows.
func WriteHighlights(w io.Writer, hs []structure.ChainHighlight) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("#Chain\tStart\tEnd\n")
	for _, h := range hs {
		bw.WriteString(h.ChainID + "\t" + strconv.FormatInt(h.Start, 10) + "\t" + strconv.FormatInt(h.End, 10) + "\n")
	}
	return bw.Flush()
}
