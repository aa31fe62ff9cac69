package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-structure/internal/represent"
	"github.com/inodb/vibe-structure/internal/structure"
)

func TestTabWriter_WriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Flush())

	assert.Equal(t, "#Slot\tSelector\tMode\tColorer\tColor\tMaterial\n", buf.String())
}

func TestTabWriter_WritePlan(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf)

	reps := represent.Plan(represent.Options{
		Chains:      []represent.Chain{{ChainID: "A"}, {ChainID: "B"}},
		ChainFilter: "A",
		Highlights:  []structure.ChainHighlight{{ChainID: "B", Start: 3, End: 3}},
	})
	require.NoError(t, w.WritePlan(reps))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "0\tchain A\tCA\tSS\t-\tSF", lines[0])
	assert.Equal(t, "1\tchain B\tCA\tSS\t-\tGL", lines[1])
	assert.Equal(t, "2\tchain B and sequence 3:3\tCA\tUN\t''\tGL", lines[2])
	assert.Equal(t, "3\thetatm and not water\tBS\tEL\t-\tSF", lines[3])
}

func TestTabWriter_ExplicitColor(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf)

	red := "0xFF0000"
	require.NoError(t, w.Write(7, represent.Representation{Selector: "all", Mode: "LN", Colorer: "UN", Color: &red, Material: "SF"}))
	require.NoError(t, w.Flush())
	assert.Equal(t, "7\tall\tLN\tUN\t0xFF0000\tSF\n", buf.String())
}

func TestWriteHighlights(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHighlights(&buf, []structure.ChainHighlight{
		{ChainID: "A", Start: 3, End: 3},
		{ChainID: "B", Start: 1, End: 12},
	}))
	assert.Equal(t, "#Chain\tStart\tEnd\nA\t3\t3\nB\t1\t12\n", buf.String())
}
