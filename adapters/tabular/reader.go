// Package tabular reads and writes result tables as delimited text or XLSX.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"marathonviz/domain/results"
	"marathonviz/internal"
	"marathonviz/internal/errors"
)

// Format identifies a file layout.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat picks the format from the file extension. Anything that is
// not .xlsx or .tsv/.tab is read as comma-separated text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX
	case ".tsv", ".tab":
		return FormatTSV
	default:
		return FormatCSV
	}
}

// Reader loads result tables from CSV, TSV and XLSX files
type Reader struct {
	logger *internal.Logger
}

// NewReader creates a reader; a nil logger disables progress messages
func NewReader(logger *internal.Logger) *Reader {
	return &Reader{logger: logger}
}

// Read loads the table at path. The first row is the header; header names
// and cells are trimmed. Short rows are padded with empty cells.
func (r *Reader) Read(path string) (*results.Table, error) {
	format := DetectFormat(path)
	r.logger.Debug("[Reader] reading %s file: %s", format, path)

	if _, err := os.Stat(path); err != nil {
		return nil, errors.IOError("open", path, err)
	}

	start := time.Now()
	var rows [][]string
	var err error
	switch format {
	case FormatXLSX:
		rows, err = r.readWorkbook(path)
	case FormatTSV:
		rows, err = r.readDelimited(path, '\t')
	default:
		rows, err = r.readDelimited(path, ',')
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("%s has no header row", path))
	}

	table := processRows(rows)
	r.logger.Info("[Reader] %s read in %.2fms (%d columns, %d rows)",
		filepath.Base(path), float64(time.Since(start).Nanoseconds())/1e6, len(table.Headers), len(table.Rows))
	return table, nil
}

func (r *Reader) readDelimited(path string, comma rune) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.IOError("open", path, err)
	}
	defer file.Close()

	return readRecords(file, comma, path)
}

func readRecords(src io.Reader, comma rune, name string) ([][]string, error) {
	// Strip a UTF-8 or UTF-16 byte order mark; plain UTF-8 passes through.
	decoded := transform.NewReader(src, unicode.BOMOverride(transform.Nop))

	reader := csv.NewReader(decoded)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.IOError("parse", name, err)
	}
	return rows, nil
}

// readWorkbook reads the first sheet of an XLSX workbook
func (r *Reader) readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.IOError("open workbook", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("%s has no sheets", path))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.IOError("read sheet "+sheets[0]+" of", path, err)
	}
	r.logger.Debug("[Reader] sheet %s: %d rows", sheets[0], len(rows))
	return rows, nil
}

// processRows converts raw string rows into a table keyed by header
func processRows(rows [][]string) *results.Table {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([]results.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		rec := make(results.Record, len(headers))
		for j, header := range headers {
			if j < len(row) {
				rec[header] = strings.TrimSpace(row[j])
			} else {
				rec[header] = ""
			}
		}
		dataRows = append(dataRows, rec)
	}

	return &results.Table{Headers: headers, Rows: dataRows}
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
