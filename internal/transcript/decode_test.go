package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	in := `{
		"id": "ENST00000311936",
		"gene": {"id": "ENSG00000133703", "name": "KRAS", "startIndex": 1000},
		"exon": [{"start": 0, "end": 29}, {"start": 100, "end": 159}]
	}`
	tx, err := Decode(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, "ENST00000311936", tx.ID)
	require.NotNil(t, tx.Gene)
	assert.Equal(t, "KRAS", tx.Gene.Name)
	assert.Equal(t, int64(1000), tx.Gene.StartIndex)
	require.Len(t, tx.Exons, 2)
	assert.Equal(t, 2, tx.Exons[1].Number)
	assert.Equal(t, int64(159), tx.Exons[1].End)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"exon": [`))
	assert.Error(t, err)

	_, err = Decode(strings.NewReader(`{"gene": {"startIndex": 0}, "exon": [{"start": 9, "end": 3}]}`))
	assert.ErrorContains(t, err, "start 9 after end 3")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tx.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"gene":{"startIndex":1000},"exon":[{"start":0,"end":29}]}`), 0644))

	tx, err := Load(path)
	require.NoError(t, err)
	h, ok := Project(tx, &Region{StartIndex: 1010, EndIndex: 1012})
	require.True(t, ok)
	assert.Equal(t, Highlight{Start: 3, End: 4}, h)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
