package tabular

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"marathonviz/domain/results"
	"marathonviz/internal"
	"marathonviz/internal/errors"
)

// SheetName is the worksheet written to XLSX output
const SheetName = "Sheet1"

// Writer saves result tables. Paths ending in .xlsx produce a workbook;
// every other path gets tab-delimited UTF-8 text.
type Writer struct {
	logger *internal.Logger
}

// NewWriter creates a writer; a nil logger disables progress messages
func NewWriter(logger *internal.Logger) *Writer {
	return &Writer{logger: logger}
}

// Write stores table at path, replacing any existing file.
func (w *Writer) Write(path string, table *results.Table) error {
	var err error
	if DetectFormat(path) == FormatXLSX {
		err = w.writeWorkbook(path, table)
	} else {
		err = w.writeDelimited(path, table)
	}
	if err != nil {
		return err
	}
	w.logger.Info("[Writer] wrote %d rows to %s", len(table.Rows), path)
	return nil
}

// writeDelimited writes into a temporary file next to path and renames it
// into place, so a failed write leaves no file at path.
func (w *Writer) writeDelimited(path string, table *results.Table) error {
	file, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.IOError("create", path, err)
	}
	tmp := file.Name()
	defer os.Remove(tmp)

	if err := writeRecords(file, table); err != nil {
		file.Close()
		return errors.IOError("write", path, err)
	}
	if err := file.Close(); err != nil {
		return errors.IOError("close", path, err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return errors.IOError("chmod", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.IOError("rename into", path, err)
	}
	return nil
}

func writeRecords(dst io.Writer, table *results.Table) error {
	out := csv.NewWriter(dst)
	out.Comma = '\t'
	if err := out.Write(table.Headers); err != nil {
		return err
	}
	return out.WriteAll(table.Cells())
}

func (w *Writer) writeWorkbook(path string, table *results.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return errors.IOError("prepare workbook", path, err)
	}

	header := make([]interface{}, len(table.Headers))
	for i, h := range table.Headers {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return errors.IOError("write header to", path, err)
	}

	for i, row := range table.Cells() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.IOError("address row of", path, err)
		}
		if err := sw.SetRow(cell, typedRow(table, row)); err != nil {
			return errors.IOError("write row to", path, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return errors.IOError("flush", path, err)
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:      table.Title,
		Identifier: table.Identifier,
		Creator:    "marathonviz",
	}); err != nil {
		return errors.IOError("set properties of", path, err)
	}

	if err := f.SaveAs(path); err != nil {
		return errors.IOError("save", path, err)
	}
	w.logger.Debug("[Writer] workbook %q saved (title %q)", path, table.Title)
	return nil
}

// typedRow keeps numeric columns as numbers so spreadsheet tools can chart
// them; values that do not parse ("inf", "") stay text.
func typedRow(table *results.Table, row []string) []interface{} {
	out := make([]interface{}, len(row))
	for j, v := range row {
		out[j] = v
		if !table.Numeric[table.Headers[j]] {
			continue
		}
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			out[j] = n
		} else if f, err := strconv.ParseFloat(v, 64); err == nil && v != "inf" {
			out[j] = f
		}
	}
	return out
}
