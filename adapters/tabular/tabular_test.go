package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"marathonviz/domain/results"
	"marathonviz/internal/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatXLSX, DetectFormat("out/Results.XLSX"))
	assert.Equal(t, FormatTSV, DetectFormat("a.tsv"))
	assert.Equal(t, FormatTSV, DetectFormat("a.tab"))
	assert.Equal(t, FormatCSV, DetectFormat("a.csv"))
	assert.Equal(t, FormatCSV, DetectFormat("a"))
}

func TestReadCSVWithBOM(t *testing.T) {
	path := writeFile(t, "records.csv", "\ufeffCOUNTRY, RESULT ,NAME\nKenya,2:01:39,Eliud Kipchoge\n\nEstonia, 2:11:15 ,Ivar\n")

	table, err := NewReader(nil).Read(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"COUNTRY", "RESULT", "NAME"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Kenya", table.Rows[0].Get("COUNTRY"))
	assert.Equal(t, "2:11:15", table.Rows[1].Get("RESULT"))
}

func TestReadTSVPadsShortRows(t *testing.T) {
	path := writeFile(t, "results.tsv", "KOHT\tNIMI\tTULEMUS\tVKL\n1\tTamm, Mati\t02:30:00\tM35\n2\tKask\n")

	table, err := NewReader(nil).Read(path)
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Tamm, Mati", table.Rows[0].Get("NIMI"))
	assert.Equal(t, "", table.Rows[1].Get("TULEMUS"))
	_, present := table.Rows[1]["VKL"]
	assert.True(t, present)
}

func TestReadHeaderOnly(t *testing.T) {
	path := writeFile(t, "empty.csv", "COUNTRY,RESULT\n")

	table, err := NewReader(nil).Read(path)
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}

func TestReadErrors(t *testing.T) {
	_, err := NewReader(nil).Read(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeIOError, errors.GetCode(err))

	path := writeFile(t, "blank.csv", "")
	_, err = NewReader(nil).Read(path)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func sampleTable() *results.Table {
	return &results.Table{
		Headers: []string{"COUNTRY", "SEC_PER_KM", "KM_PER_H", "MIN_PER_KM"},
		Rows: []results.Record{
			{"COUNTRY": "Kenya", "SEC_PER_KM": "172.8", "KM_PER_H": "20.83", "MIN_PER_KM": "2:52"},
			{"COUNTRY": "Median value", "SEC_PER_KM": "0.0", "KM_PER_H": "inf", "MIN_PER_KM": "0:0"},
		},
		Numeric:    map[string]bool{"SEC_PER_KM": true, "KM_PER_H": true},
		Title:      "National records",
		Identifier: "run-1",
	}
}

func TestWriteTabDelimited(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, NewWriter(nil).Write(path, sampleTable()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	expected := "COUNTRY\tSEC_PER_KM\tKM_PER_H\tMIN_PER_KM\n" +
		"Kenya\t172.8\t20.83\t2:52\n" +
		"Median value\t0.0\tinf\t0:0\n"
	assert.Equal(t, expected, string(data))
}

func TestWriteThenReadTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tsv")
	require.NoError(t, NewWriter(nil).Write(path, sampleTable()))

	table, err := NewReader(nil).Read(path)
	require.NoError(t, err)
	assert.Equal(t, sampleTable().Headers, table.Headers)
	assert.Equal(t, sampleTable().Rows, table.Rows)
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, NewWriter(nil).Write(path, sampleTable()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	props, err := f.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, "National records", props.Title)
	assert.Equal(t, "run-1", props.Identifier)

	value, err := f.GetCellValue(SheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "172.8", value)

	value, err = f.GetCellValue(SheetName, "C3")
	require.NoError(t, err)
	assert.Equal(t, "inf", value)

	table, err := NewReader(nil).Read(path)
	require.NoError(t, err)
	assert.Equal(t, sampleTable().Headers, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Kenya", table.Rows[0].Get("COUNTRY"))
	assert.Equal(t, "2:52", table.Rows[0].Get("MIN_PER_KM"))
}

func TestTypedRowKeepsNumbersNumeric(t *testing.T) {
	table := sampleTable()
	table.Headers = append(table.Headers, "SEC_TOTAL")
	table.Numeric["SEC_TOTAL"] = true

	row := typedRow(table, []string{"Kenya", "172.8", "inf", "2:52", "7299"})
	assert.Equal(t, []interface{}{"Kenya", 172.8, "inf", "2:52", int64(7299)}, row)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, os.ErrClosed }

func TestWriteRecordsReportsWriterFailure(t *testing.T) {
	err := writeRecords(failingWriter{}, sampleTable())
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestWriteDelimitedLeavesNothingOnFailure(t *testing.T) {
	dir := t.TempDir()

	// path is an existing non-empty directory, so the final rename fails
	path := filepath.Join(dir, "out.csv")
	require.NoError(t, os.Mkdir(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), []byte("x"), 0o644))

	err := NewWriter(nil).Write(path, sampleTable())
	require.Error(t, err)
	assert.Equal(t, errors.CodeIOError, errors.GetCode(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.csv", entries[0].Name())
	assert.True(t, entries[0].IsDir())

	missing := filepath.Join(dir, "absent", "out.tsv")
	err = NewWriter(nil).Write(missing, sampleTable())
	require.Error(t, err)
	assert.NoFileExists(t, missing)
}

func TestWriteDelimitedReplacesExistingFile(t *testing.T) {
	path := writeFile(t, "out.tsv", "stale content that is longer than nothing\n")

	require.NoError(t, NewWriter(nil).Write(path, sampleTable()))

	table, err := NewReader(nil).Read(path)
	require.NoError(t, err)
	assert.Equal(t, sampleTable().Headers, table.Headers)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
