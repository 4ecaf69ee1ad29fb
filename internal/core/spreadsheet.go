package core

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// MaxImportFileSize is the maximum accepted spreadsheet size (50MB).
var MaxImportFileSize int64 = 50 * 1024 * 1024

// ReadSpreadsheet reads a pricing sheet into a header row plus data
// rows. The format is picked from the file extension: .xlsx/.xlsm use
// the first worksheet, everything else is parsed as CSV.
func ReadSpreadsheet(fileName string, r io.Reader) (header []string, rows [][]string, err error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImportFileSize+1))
	if err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}
	if int64(len(data)) > MaxImportFileSize {
		return nil, nil, fmt.Errorf("%w: file too large: exceeds %dMB limit", ErrBadImportFile, MaxImportFileSize/(1024*1024))
	}
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("%w: empty file", ErrBadImportFile)
	}

	var records [][]string
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx", ".xlsm":
		records, err = readExcel(data)
	default:
		records, err = readCSV(data)
	}
	if err != nil {
		return nil, nil, err
	}

	// The header is the first row with any content; leading blank rows
	// above it are common in hand-edited sheets.
	for i, rec := range records {
		if !isEmptyRecord(rec) {
			return rec, records[i+1:], nil
		}
	}
	return nil, nil, fmt.Errorf("%w: empty file: no header row found", ErrBadImportFile)
}

func readCSV(data []byte) ([][]string, error) {
	data = stripBOM(sanitizeUTF8(data))

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid csv: %v", ErrBadImportFile, err)
	}
	return records, nil
}

func readExcel(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %v", ErrBadImportFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrBadImportFile)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// sanitizeUTF8 replaces invalid byte sequences with the replacement
// rune so csv parsing never chokes on mixed encodings.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}

// stripBOM removes a UTF-8 byte order mark, which Windows Excel puts
// at the front of exported CSVs.
func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
}

func isEmptyRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
