package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coad-fablab/printlab-api/internal/models"
)

func TestExportCSV(t *testing.T) {
	job := uploadedJob("job-1234")
	cost := 5.00
	job.CostUSD = &cost
	svc := NewExportService(newStubJobStore(job), nil)

	result, err := svc.Export(context.Background(), models.JobFilter{}, "csv")
	require.NoError(t, err)

	assert.Equal(t, "text/csv", result.ContentType)
	assert.Contains(t, result.Filename, ".csv")

	records, err := csv.NewReader(bytes.NewReader(result.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "short_id", records[0][0])
	assert.Equal(t, "job-", records[1][0])
	assert.Contains(t, records[1], "5.00")
}

func TestExportPDF(t *testing.T) {
	svc := NewExportService(newStubJobStore(uploadedJob("job-1234")), nil)

	result, err := svc.Export(context.Background(), models.JobFilter{}, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Data, []byte("%PDF")))
}

func TestExportUnknownFormat(t *testing.T) {
	svc := NewExportService(newStubJobStore(), nil)
	_, err := svc.Export(context.Background(), models.JobFilter{}, "xlsx")
	requireStatus(t, err, http.StatusBadRequest)
}
