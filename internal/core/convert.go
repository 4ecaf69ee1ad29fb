package core

// convert.go provides cell-level parsing for spreadsheet data.
//
// These functions handle the messy reality of user-provided pricing
// sheets: currency symbols and thousand separators in premiums, various
// truthy representations for the accident flag, and Excel formula
// prefixes (="value") left behind by exports.

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericRegex validates that a string is a valid numeric format after
// cleanup. Matches integers and decimals.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// truthyValues is the accepted vocabulary for accident_coverage.
// Anything else, including an absent column, means false.
var truthyValues = map[string]bool{
	"yes":  true,
	"true": true,
	"1":    true,
	"y":    true,
}

// ParseMoney parses a premium amount. Currency symbols, thousands
// separators and accounting parentheses are stripped before parsing.
func ParseMoney(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, "CHF", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if negative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return 0, fmt.Errorf("invalid number: %q", s)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %q", s)
	}
	return v, nil
}

// ParseInt parses an integer cell. A trailing ".0" from spreadsheet
// exports is tolerated.
func ParseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}

	if i, err := strconv.Atoi(s); err == nil {
		return i, nil
	}

	// Excel frequently exports integers as "25.0".
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid integer: %q", s)
	}
	return int(f), nil
}

// ParseTruthy reports whether a cell belongs to the accident-coverage
// truthy vocabulary: "yes", "true", "1", "y" (case-insensitive).
func ParseTruthy(s string) bool {
	return truthyValues[strings.ToLower(strings.TrimSpace(s))]
}

// Round2 rounds a premium to 2 decimal places for output.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CleanCell removes common spreadsheet artifacts from a cell value:
// surrounding whitespace, Excel formula prefix (="..."), stray quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}
