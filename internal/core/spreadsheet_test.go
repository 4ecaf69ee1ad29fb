package core

import (
	"errors"
	"strings"
	"testing"
)

func TestReadSpreadsheet_CSV(t *testing.T) {
	input := "a,b,c\n1,2,3\n4,5,6\n"

	header, rows, err := ReadSpreadsheet("prices.csv", strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadSpreadsheet() error: %v", err)
	}
	if len(header) != 3 || header[0] != "a" {
		t.Errorf("header = %v, want [a b c]", header)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d data rows, want 2", len(rows))
	}
	if rows[1][2] != "6" {
		t.Errorf("rows[1][2] = %q, want 6", rows[1][2])
	}
}

func TestReadSpreadsheet_StripsBOM(t *testing.T) {
	input := "\xEF\xBB\xBFage,zip\n25,80100\n"

	header, _, err := ReadSpreadsheet("prices.csv", strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadSpreadsheet() error: %v", err)
	}
	if header[0] != "age" {
		t.Errorf("header[0] = %q, want bare %q after BOM strip", header[0], "age")
	}
}

func TestReadSpreadsheet_SkipsLeadingBlankRows(t *testing.T) {
	input := ",,\n,,\nage,zip\n25,80100\n"

	header, rows, err := ReadSpreadsheet("prices.csv", strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadSpreadsheet() error: %v", err)
	}
	if header[0] != "age" {
		t.Errorf("header[0] = %q, want age", header[0])
	}
	if len(rows) != 1 {
		t.Errorf("got %d data rows, want 1", len(rows))
	}
}

func TestReadSpreadsheet_RaggedRows(t *testing.T) {
	// Hand-edited exports often have uneven row widths.
	input := "a,b,c\n1,2\n1,2,3,4\n"

	_, rows, err := ReadSpreadsheet("prices.csv", strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadSpreadsheet() error: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("got %d data rows, want 2", len(rows))
	}
}

func TestReadSpreadsheet_EmptyFile(t *testing.T) {
	_, _, err := ReadSpreadsheet("prices.csv", strings.NewReader(""))
	if err == nil {
		t.Fatal("expected error for empty file")
	}
	if !strings.Contains(err.Error(), "empty file") {
		t.Errorf("error %q does not mention empty file", err)
	}
	if !errors.Is(err, ErrBadImportFile) {
		t.Errorf("error %q is not ErrBadImportFile", err)
	}
}

func TestReadSpreadsheet_FileTooLarge(t *testing.T) {
	saved := MaxImportFileSize
	MaxImportFileSize = 16
	defer func() { MaxImportFileSize = saved }()

	input := "a,b,c\n1,2,3\n4,5,6\n"
	_, _, err := ReadSpreadsheet("prices.csv", strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error for oversized file")
	}
	if !strings.Contains(err.Error(), "file too large") {
		t.Errorf("error %q does not mention file too large", err)
	}
	if !errors.Is(err, ErrBadImportFile) {
		t.Errorf("error %q is not ErrBadImportFile", err)
	}
}

func TestReadSpreadsheet_InvalidUTF8(t *testing.T) {
	input := "name,zip\nZ\xFFrich,80100\n"

	_, rows, err := ReadSpreadsheet("prices.csv", strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadSpreadsheet() error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d data rows, want 1", len(rows))
	}
	if rows[0][1] != "80100" {
		t.Errorf("rows[0][1] = %q, want 80100", rows[0][1])
	}
}
