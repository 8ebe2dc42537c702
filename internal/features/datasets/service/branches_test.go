package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipping-analytics/internal/features/datasets/adapters"
	"shipping-analytics/internal/features/datasets/ports"
)

func newTestIngest() *IngestService {
	return NewIngestService([]ports.TableReader{
		adapters.NewExcelReader(),
		adapters.NewCSVReader(),
	})
}

// TestReadBranchFiles_MergesLatestWins verifies that when a reference appears
// in several files, the newest dated row keeps the branch.
func TestReadBranchFiles_MergesLatestWins(t *testing.T) {
	older := "Reference,Branch,Date\nORD-1,Aqiq,2026-01-02\nORD-2,WH,2026-01-03\n"
	newer := "Reference,Branch,Date\nORD-1,Tabuk,2026-01-05\n"

	result := newTestIngest().ReadBranchFiles([]NamedFile{
		{Name: "jan_a.csv", Content: strings.NewReader(older)},
		{Name: "jan_b.csv", Content: strings.NewReader(newer)},
	})

	assert.Equal(t, 2, result.FilesLoaded)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Assignments, 2)
	assert.Equal(t, "Tabuk", result.Assignments["ORD-1"].Branch)
	assert.Equal(t, "WH", result.Assignments["ORD-2"].Branch)
}

// TestReadBranchFiles_PartialFailure verifies a broken file is reported but
// does not sink the batch.
func TestReadBranchFiles_PartialFailure(t *testing.T) {
	good := "Reference,Branch,Date\nORD-1,Labn,2026-01-02\n"

	result := newTestIngest().ReadBranchFiles([]NamedFile{
		{Name: "good.csv", Content: strings.NewReader(good)},
		{Name: "bad.pdf", Content: strings.NewReader("junk")},
	})

	assert.Equal(t, 1, result.FilesLoaded)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "bad.pdf")
	assert.Equal(t, "Labn", result.Assignments["ORD-1"].Branch)
}

// TestReadBranchFiles_RowNumberColumn verifies the optional leading row
// number column is skipped.
func TestReadBranchFiles_RowNumberColumn(t *testing.T) {
	input := "#,Reference,Branch,Date\n1,ORD-9,Naseem,2026-02-01\n"

	result := newTestIngest().ReadBranchFiles([]NamedFile{
		{Name: "branches.csv", Content: strings.NewReader(input)},
	})

	require.Equal(t, 1, result.FilesLoaded)
	assert.Equal(t, "Naseem", result.Assignments["ORD-9"].Branch)
}

// TestParseBranchDate verifies accepted layouts.
func TestParseBranchDate(t *testing.T) {
	d, ok := parseBranchDate("2026-01-15")
	require.True(t, ok)
	assert.Equal(t, time.January, d.Month())

	d, ok = parseBranchDate("15/01/2026")
	require.True(t, ok)
	assert.Equal(t, 15, d.Day())

	_, ok = parseBranchDate("not a date")
	assert.False(t, ok)
}

// TestSampleTable_Deterministic verifies the demo generator is stable and
// shaped like a real export.
func TestSampleTable_Deterministic(t *testing.T) {
	today := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	a := SampleTable(50, today)
	b := SampleTable(50, today)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Len(t, a.Rows, 50)
	assert.Contains(t, a.Headers, "AWB")
	assert.Contains(t, a.Headers, "Status")

	branches := SampleBranchAssignments(a, today)
	assert.NotEmpty(t, branches)
}
