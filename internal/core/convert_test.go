package core

import "testing"

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "plain integer", input: "250", want: 250},
		{name: "decimal", input: "250.50", want: 250.50},
		{name: "dollar sign", input: "$1,234.56", want: 1234.56},
		{name: "euro sign", input: "€199.90", want: 199.90},
		{name: "chf prefix", input: "CHF 280.00", want: 280},
		{name: "thousands separators", input: "1,000,000", want: 1000000},
		{name: "accounting negative", input: "(123.45)", want: -123.45},
		{name: "leading decimal point", input: ".99", want: 0.99},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "text", input: "free", wantErr: true},
		{name: "double decimal", input: "1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMoney(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMoney(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMoney(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMoney(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "plain", input: "25", want: 25},
		{name: "padded", input: " 25 ", want: 25},
		{name: "excel float export", input: "25.0", want: 25},
		{name: "negative", input: "-5", want: -5},
		{name: "empty", input: "", wantErr: true},
		{name: "fractional", input: "25.5", wantErr: true},
		{name: "text", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInt(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseInt(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseInt(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseInt(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTruthy(t *testing.T) {
	truthy := []string{"yes", "Yes", "YES", "true", "TRUE", "1", "y", "Y", " yes "}
	for _, in := range truthy {
		if !ParseTruthy(in) {
			t.Errorf("ParseTruthy(%q) = false, want true", in)
		}
	}

	falsy := []string{"no", "false", "0", "n", "", "maybe", "2", "ja"}
	for _, in := range falsy {
		if ParseTruthy(in) {
			t.Errorf("ParseTruthy(%q) = true, want false", in)
		}
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`  padded  `, "padded"},
		{`="80199"`, "80199"},
		{`=80199`, "80199"},
		{`"quoted"`, "quoted"},
		{`'single'`, "single"},
		{``, ``},
	}

	for _, tt := range tests {
		if got := CleanCell(tt.input); got != tt.want {
			t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		input float64
		want  float64
	}{
		{250.005, 250.01},
		{250.004, 250.00},
		{3000, 3000},
		{199.999, 200.00},
	}

	for _, tt := range tests {
		if got := Round2(tt.input); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
