package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Age Min", "age_min"},
		{"  MONTHLY PREMIUM  ", "monthly_premium"},
		{"zip_prefix", "zip_prefix"},
		{"Provider Code", "provider_code"},
		{"Insurance Model", "insurance_model"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeHeader(tt.in), "input %q", tt.in)
	}
}

func fullRow(overrides map[string]string) RawRow {
	row := RawRow{
		"age_min":         "18",
		"age_max":         "25",
		"zip_prefix":      "801",
		"insurance_model": "basic",
		"deductible":      "300",
		"monthly_premium": "250.00",
		"provider_name":   "Helsana",
		"provider_code":   "HEL",
	}
	for k, v := range overrides {
		if v == "" {
			delete(row, k)
		} else {
			row[k] = v
		}
	}
	return row
}

func TestNormalizeRow_Complete(t *testing.T) {
	got, err := NormalizeRow(fullRow(nil), 2)
	require.NoError(t, err)

	assert.Equal(t, 18, got.AgeMin)
	assert.Equal(t, 25, got.AgeMax)
	assert.Equal(t, "801", got.ZipPrefix)
	assert.Equal(t, "basic", got.InsuranceModel)
	assert.Equal(t, 300, got.Deductible)
	assert.False(t, got.AccidentCoverage)
	assert.InDelta(t, 250.00, got.MonthlyPremium, 1e-9)
	assert.InDelta(t, 3000.00, got.AnnualPremium, 1e-9, "annual derives from monthly x 12")
	assert.Equal(t, "Helsana", got.ProviderName)
	assert.Equal(t, "HEL", got.ProviderCode)
}

func TestNormalizeRow_DerivesAgeFromSingleColumn(t *testing.T) {
	row := fullRow(map[string]string{"age_min": "", "age_max": "", "age": "30"})

	got, err := NormalizeRow(row, 2)
	require.NoError(t, err)
	assert.Equal(t, 30, got.AgeMin)
	assert.Equal(t, 30, got.AgeMax)
}

func TestNormalizeRow_DerivesZipPrefixFromZipCode(t *testing.T) {
	row := fullRow(map[string]string{"zip_prefix": "", "zip_code": "80199"})

	got, err := NormalizeRow(row, 2)
	require.NoError(t, err)
	assert.Equal(t, "801", got.ZipPrefix)
}

func TestNormalizeRow_ExplicitAnnualPremiumWins(t *testing.T) {
	row := fullRow(map[string]string{"annual_premium": "2900.00"})

	got, err := NormalizeRow(row, 2)
	require.NoError(t, err)
	assert.InDelta(t, 2900.00, got.AnnualPremium, 1e-9)
}

func TestNormalizeRow_AccidentCoverageVocabulary(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"yes", true},
		{"YES", true},
		{"true", true},
		{"1", true},
		{"y", true},
		{"no", false},
		{"false", false},
		{"0", false},
		{"maybe", false},
		{"", false},
	}

	for _, tt := range tests {
		row := fullRow(map[string]string{"accident_coverage": tt.value})
		got, err := NormalizeRow(row, 2)
		require.NoError(t, err, "value %q", tt.value)
		assert.Equal(t, tt.want, got.AccidentCoverage, "value %q", tt.value)
	}
}

func TestNormalizeRow_LowercasesModel(t *testing.T) {
	row := fullRow(map[string]string{"insurance_model": "PREMIUM"})

	got, err := NormalizeRow(row, 2)
	require.NoError(t, err)
	assert.Equal(t, "premium", got.InsuranceModel)
}

func TestNormalizeRow_MissingRequiredField(t *testing.T) {
	for _, col := range []string{
		"age_min", "zip_prefix", "insurance_model", "deductible",
		"monthly_premium", "provider_name", "provider_code",
	} {
		row := fullRow(map[string]string{col: ""})
		if col == "age_min" {
			delete(row, "age_max")
		}

		_, err := NormalizeRow(row, 5)
		require.Error(t, err, "column %s", col)

		var rowErr *RowError
		require.True(t, errors.As(err, &rowErr), "column %s", col)
		assert.Equal(t, 5, rowErr.Line)
	}
}

func TestNormalizeRow_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		column    string
	}{
		{"non-numeric age", map[string]string{"age_min": "abc"}, "age_min"},
		{"age_min above age_max", map[string]string{"age_min": "40", "age_max": "30"}, "age_min"},
		{"short zip prefix", map[string]string{"zip_prefix": "80"}, "zip_prefix"},
		{"zero deductible", map[string]string{"deductible": "0"}, "deductible"},
		{"negative deductible", map[string]string{"deductible": "-300"}, "deductible"},
		{"malformed premium", map[string]string{"monthly_premium": "lots"}, "monthly_premium"},
		{"negative premium", map[string]string{"monthly_premium": "-5"}, "monthly_premium"},
		{"malformed annual premium", map[string]string{"annual_premium": "x"}, "annual_premium"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeRow(fullRow(tt.overrides), 3)
			require.Error(t, err)

			var rowErr *RowError
			require.True(t, errors.As(err, &rowErr))
			assert.Equal(t, tt.column, rowErr.Column)
			assert.Equal(t, 3, rowErr.Line)
		})
	}
}

func TestNormalizeRows_RoundTrip(t *testing.T) {
	// Sheet with only "age" and "zip_code" columns. age_min = age_max =
	// age, zip_prefix = zip_code[:3].
	header := []string{"Age", "Zip Code", "Insurance Model", "Deductible", "Monthly Premium", "Provider Name", "Provider Code"}
	data := [][]string{
		{"20", "80199", "Basic", "300", "250.00", "Helsana", "HEL"},
		{"45", "90210", "standard", "500", "$310.50", "CSS", "CSS"},
	}

	rows, err := NormalizeRows(header, data)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 20, rows[0].AgeMin)
	assert.Equal(t, 20, rows[0].AgeMax)
	assert.Equal(t, "801", rows[0].ZipPrefix)
	assert.Equal(t, "basic", rows[0].InsuranceModel)
	assert.InDelta(t, 3000.00, rows[0].AnnualPremium, 1e-9)

	assert.Equal(t, "902", rows[1].ZipPrefix)
	assert.InDelta(t, 310.50, rows[1].MonthlyPremium, 1e-9)
}

func TestNormalizeRows_SkipsEmptyRows(t *testing.T) {
	header := []string{"age", "zip_code", "insurance_model", "deductible", "monthly_premium", "provider_name", "provider_code"}
	data := [][]string{
		{"20", "80199", "basic", "300", "250", "Helsana", "HEL"},
		{"", "", "", "", "", "", ""},
		{"30", "80299", "basic", "300", "260", "CSS", "CSS"},
	}

	rows, err := NormalizeRows(header, data)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestNormalizeRows_AbortsOnFirstBadRow(t *testing.T) {
	header := []string{"age", "zip_code", "insurance_model", "deductible", "monthly_premium", "provider_name", "provider_code"}
	data := [][]string{
		{"20", "80199", "basic", "300", "250", "Helsana", "HEL"},
		{"30", "80299", "basic", "300", "260", "CSS", ""}, // provider_code missing
	}

	rows, err := NormalizeRows(header, data)
	require.Error(t, err)
	assert.Nil(t, rows, "a single bad row rejects the whole batch")

	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, "provider_code", rowErr.Column)
	assert.Equal(t, 3, rowErr.Line, "line counts the header row")
}
