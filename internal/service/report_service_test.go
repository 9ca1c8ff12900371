// internal/service/report_service_test.go
package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udyamhq/udyam-backend/internal/domain"
	"github.com/udyamhq/udyam-backend/internal/repository"
	"github.com/udyamhq/udyam-backend/internal/storage"
)

// memoryArchive keeps uploaded objects in a map.
type memoryArchive struct {
	objects map[string][]byte
}

func newMemoryArchive() *memoryArchive {
	return &memoryArchive{objects: map[string][]byte{}}
}

func (m *memoryArchive) UploadObject(ctx context.Context, key string, contentType string, data []byte) error {
	m.objects[key] = data
	return nil
}

func (m *memoryArchive) DownloadObject(ctx context.Context, key string) ([]byte, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return data, nil
}

func TestGenerateProfitLossReport(t *testing.T) {
	ledger := newStubLedger()
	ledger.totals = repository.SalesTotals{TotalRevenue: 118000, TotalGST: 18000}

	archive := newMemoryArchive()
	svc := NewReportService(NewFinanceService(ledger), archive).WithClock(testClock)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	report, err := svc.Generate(context.Background(), 7, domain.ReportProfitLoss, start, end)
	require.NoError(t, err)

	assert.Equal(t, domain.ReportProfitLoss, report.Metadata.ReportType)
	assert.Equal(t, int64(7), report.Metadata.TenantID)
	assert.Equal(t, testClock(), report.Metadata.GeneratedAt)
	assert.Equal(t, 31, report.Metadata.Period.Days)
	assert.NotEmpty(t, report.Metadata.ReportID)
	assert.Contains(t, report.Metadata.DownloadKey, "reports/7/profit_loss/")

	// The archived payload is the full report JSON.
	payload, err := svc.Download(context.Background(), report.Metadata.DownloadKey)
	require.NoError(t, err)

	var archived domain.Report
	require.NoError(t, json.Unmarshal(payload, &archived))
	assert.Equal(t, report.Metadata.ReportID, archived.Metadata.ReportID)
}

func TestGenerateEachReportType(t *testing.T) {
	ledger := newStubLedger()
	archive := newMemoryArchive()
	svc := NewReportService(NewFinanceService(ledger), archive).WithClock(testClock)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	for _, rt := range domain.ValidReportTypes() {
		report, err := svc.Generate(context.Background(), 1, rt, start, end)
		require.NoError(t, err, "report type %s", rt)
		assert.NotNil(t, report.Data)
	}
	assert.Len(t, archive.objects, len(domain.ValidReportTypes()))
}

func TestGenerateUnknownReportType(t *testing.T) {
	svc := NewReportService(NewFinanceService(newStubLedger()), newMemoryArchive())

	_, err := svc.Generate(context.Background(), 1, domain.ReportType("ledger_dump"), time.Now().AddDate(0, -1, 0), time.Now())
	var typeErr *domain.UnknownReportTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Contains(t, err.Error(), "profit_loss")
	assert.True(t, domain.IsClientError(err))
}

func TestGenerateInvalidRange(t *testing.T) {
	svc := NewReportService(NewFinanceService(newStubLedger()), newMemoryArchive())

	end := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Generate(context.Background(), 1, domain.ReportProfitLoss, start, end)
	var rangeErr *domain.InvalidRangeError
	assert.ErrorAs(t, err, &rangeErr)
}

func TestDownloadMissingReport(t *testing.T) {
	svc := NewReportService(NewFinanceService(newStubLedger()), newMemoryArchive())

	_, err := svc.Download(context.Background(), "reports/1/profit_loss/missing.json")
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
}
