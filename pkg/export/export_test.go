package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(rows int) Table {
	t := Table{Title: "Student roster", Columns: []string{"ID", "Name", "Grade"}}
	for i := 0; i < rows; i++ {
		t.Rows = append(t.Rows, []string{"1", "Emma, Johnson", "10"})
	}
	return t
}

func TestCSVExporterRender(t *testing.T) {
	table := sampleTable(1)
	table.Rows = append(table.Rows, []string{"2"})

	out, err := NewCSVExporter().Render(table)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Name,Grade", lines[0])
	assert.Equal(t, `1,"Emma, Johnson",10`, lines[1])
	assert.Equal(t, "2,,", lines[2])
}

func TestExportersRejectEmptyColumns(t *testing.T) {
	_, err := NewCSVExporter().Render(Table{})
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(Table{})
	assert.Error(t, err)
}

func TestPDFExporterRenderPaginates(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleTable(120))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Equal(t, "application/pdf", NewPDFExporter().ContentType())
}
