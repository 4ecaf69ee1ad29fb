package core

// normalize.go turns heterogeneous spreadsheet rows into canonical
// PriceRow values. Normalization is pure: no storage access, so the
// derivation rules are testable in isolation.
//
// Column handling mirrors what pricing teams actually upload:
//   - header names in any casing, with spaces ("Age Min" == age_min)
//   - a single "age" column instead of an age_min/age_max pair
//   - a 5-digit "zip_code" instead of the 3-digit "zip_prefix"
//   - annual_premium omitted (derived as monthly x 12)
//   - accident_coverage written as yes/no, true/false, 1/0, y/n

import (
	"fmt"
	"strings"
)

// requiredColumns are the canonical fields every row must have after
// derivation. A row missing any of them aborts the whole import.
var requiredColumns = []string{
	"age_min",
	"age_max",
	"zip_prefix",
	"insurance_model",
	"deductible",
	"monthly_premium",
	"provider_name",
	"provider_code",
}

// RawRow is a spreadsheet row keyed by normalized column name.
type RawRow map[string]string

// RowError describes why a specific row was rejected. Line numbers are
// 1-based and count the header row.
type RowError struct {
	Line   int
	Column string
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %q: %s", e.Line, e.Column, e.Reason)
}

// NormalizeHeader canonicalizes a column name: case-folded, trimmed,
// inner spaces replaced with underscores.
func NormalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, " ", "_")
}

// BuildRawRows pairs a header row with data rows, producing RawRows
// keyed by normalized header. Cells beyond the header width are
// dropped; missing trailing cells read as empty.
func BuildRawRows(header []string, rows [][]string) []RawRow {
	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = NormalizeHeader(CleanCell(h))
	}

	out := make([]RawRow, 0, len(rows))
	for _, row := range rows {
		raw := make(RawRow, len(keys))
		for i, key := range keys {
			if key == "" {
				continue
			}
			if i < len(row) {
				raw[key] = CleanCell(row[i])
			} else {
				raw[key] = ""
			}
		}
		out = append(out, raw)
	}
	return out
}

// NormalizeRow converts one raw row into a canonical PriceRow, applying
// the derivation rules and validating required fields. line is the
// 1-based spreadsheet line for error reporting.
func NormalizeRow(raw RawRow, line int) (PriceRow, error) {
	row := make(RawRow, len(raw)+3)
	for k, v := range raw {
		row[k] = v
	}

	// Single "age" column stands in for both bounds.
	if row["age_min"] == "" {
		if age := row["age"]; age != "" {
			row["age_min"] = age
			row["age_max"] = age
		}
	}

	// 5-digit zip_code collapses to its 3-character prefix.
	if row["zip_prefix"] == "" {
		if zip := row["zip_code"]; len(zip) >= 3 {
			row["zip_prefix"] = zip[:3]
		}
	}

	for _, col := range requiredColumns {
		if row[col] == "" {
			return PriceRow{}, &RowError{Line: line, Column: col, Reason: "missing required field"}
		}
	}

	ageMin, err := ParseInt(row["age_min"])
	if err != nil {
		return PriceRow{}, &RowError{Line: line, Column: "age_min", Reason: err.Error()}
	}
	ageMax, err := ParseInt(row["age_max"])
	if err != nil {
		return PriceRow{}, &RowError{Line: line, Column: "age_max", Reason: err.Error()}
	}
	if ageMin > ageMax {
		return PriceRow{}, &RowError{Line: line, Column: "age_min", Reason: fmt.Sprintf("age_min %d exceeds age_max %d", ageMin, ageMax)}
	}

	zipPrefix := row["zip_prefix"]
	if len(zipPrefix) != 3 {
		return PriceRow{}, &RowError{Line: line, Column: "zip_prefix", Reason: fmt.Sprintf("must be exactly 3 characters, got %q", zipPrefix)}
	}

	deductible, err := ParseInt(row["deductible"])
	if err != nil {
		return PriceRow{}, &RowError{Line: line, Column: "deductible", Reason: err.Error()}
	}
	if deductible <= 0 {
		return PriceRow{}, &RowError{Line: line, Column: "deductible", Reason: "must be positive"}
	}

	monthly, err := ParseMoney(row["monthly_premium"])
	if err != nil {
		return PriceRow{}, &RowError{Line: line, Column: "monthly_premium", Reason: err.Error()}
	}
	if monthly < 0 {
		return PriceRow{}, &RowError{Line: line, Column: "monthly_premium", Reason: "must be non-negative"}
	}

	// Annual premium derives from monthly when the sheet omits it.
	annual := monthly * 12
	if v := row["annual_premium"]; v != "" {
		annual, err = ParseMoney(v)
		if err != nil {
			return PriceRow{}, &RowError{Line: line, Column: "annual_premium", Reason: err.Error()}
		}
		if annual < 0 {
			return PriceRow{}, &RowError{Line: line, Column: "annual_premium", Reason: "must be non-negative"}
		}
	}

	return PriceRow{
		AgeMin:           ageMin,
		AgeMax:           ageMax,
		ZipPrefix:        zipPrefix,
		InsuranceModel:   strings.ToLower(row["insurance_model"]),
		Deductible:       deductible,
		AccidentCoverage: ParseTruthy(row["accident_coverage"]),
		MonthlyPremium:   monthly,
		AnnualPremium:    annual,
		ProviderName:     row["provider_name"],
		ProviderCode:     row["provider_code"],
	}, nil
}

// NormalizeRows converts a whole sheet. The first error aborts the
// batch: imports are all-or-nothing, so there is no point collecting
// rows past a rejection.
func NormalizeRows(header []string, rows [][]string) ([]PriceRow, error) {
	raws := BuildRawRows(header, rows)

	out := make([]PriceRow, 0, len(raws))
	for i, raw := range raws {
		if isEmptyRaw(raw) {
			continue
		}
		// Line 1 is the header, so data row i lives on line i+2.
		row, err := NormalizeRow(raw, i+2)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func isEmptyRaw(raw RawRow) bool {
	for _, v := range raw {
		if v != "" {
			return false
		}
	}
	return true
}
