package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCSV(t *testing.T) {
	data := Dataset{
		Headers: []string{"short_id", "student_name", "status"},
		Rows: [][]string{
			{"a1b2c3d4", "Jane Doe", "PENDING"},
			{"e5f6a7b8", "Sam Park"},
		},
	}

	out, err := RenderCSV(data)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, data.Headers, records[0])
	assert.Equal(t, []string{"a1b2c3d4", "Jane Doe", "PENDING"}, records[1])
	// short rows are padded to the header width
	assert.Equal(t, []string{"e5f6a7b8", "Sam Park", ""}, records[2])
}

func TestRenderCSVNoHeaders(t *testing.T) {
	_, err := RenderCSV(Dataset{})
	assert.Error(t, err)
}

func TestRenderPDF(t *testing.T) {
	data := Dataset{
		Headers: []string{"short_id", "status", "cost_usd"},
		Rows: [][]string{
			{"a1b2c3d4", "COMPLETED", "5.00"},
		},
	}

	out, err := RenderPDF(data, "Job Export")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderPDFNoHeaders(t *testing.T) {
	_, err := RenderPDF(Dataset{}, "empty")
	assert.Error(t, err)
}
