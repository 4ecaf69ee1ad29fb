package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"no active dataset", ErrNoActiveDataset, "QRY001"},
		{"wrapped no active dataset", fmt.Errorf("get quote: %w", ErrNoActiveDataset), "QRY001"},
		{"no quotes", ErrNoQuotes, "QRY002"},
		{"invalid request", fmt.Errorf("%w: age must be between 18 and 100", ErrInvalidRequest), "QRY003"},
		{"missing field", &RowError{Line: 4, Column: "provider_code", Reason: "missing required field"}, "IMP001"},
		{"bad integer", &RowError{Line: 2, Column: "age_min", Reason: `invalid integer "abc"`}, "IMP002"},
		{"bad money", &RowError{Line: 2, Column: "monthly_premium", Reason: `invalid number "n/a"`}, "IMP002"},
		{"oversized upload", errors.New("file too large: 60000000 bytes"), "IMP003"},
		{"csv parse failure", errors.New("invalid csv: record on line 3"), "IMP004"},
		{"empty upload", fmt.Errorf("%w: empty file", ErrBadImportFile), "IMP005"},
		{"header-only upload", fmt.Errorf("%w: no data rows after header", ErrBadImportFile), "IMP005"},
		{"db down", errors.New("dial tcp 127.0.0.1:5432: connection refused"), "DB001"},
		{"db timeout", errors.New("context deadline exceeded: timeout"), "DB002"},
		{"duplicate provider", errors.New(`duplicate key value violates unique constraint "providers_code_key"`), "DB003"},
		{"unknown error", errors.New("something else entirely"), "ERR000"},
		{"nil error", nil, "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
			if got.Message == "" || got.Action == "" {
				t.Errorf("MapError(%v) returned empty message or action", tt.err)
			}
		})
	}
}

func TestMapError_CaseInsensitive(t *testing.T) {
	got := MapError(errors.New("CONNECTION REFUSED"))
	if got.Code != "DB001" {
		t.Errorf("expected DB001 for upper-case match, got %q", got.Code)
	}
}
