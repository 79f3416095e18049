package pfm

import "testing"

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		name  string
		in    string
		want  string
		valid bool
	}{
		{name: "plain", in: "42", want: "42", valid: true},
		{name: "decimal dot", in: "10.50", want: "10.5", valid: true},
		{name: "dollar with thousands dots", in: "$1.000.000", want: "1000000", valid: true},
		{name: "single thousands dot", in: "1.000", want: "1000", valid: true},
		{name: "euro with spaces", in: "€ 1 250", want: "1250", valid: true},
		{name: "decimal comma", in: "1.250,50", want: "1250.5", valid: true},
		{name: "comma only", in: "300,25", want: "300.25", valid: true},
		{name: "negative", in: "-12.5", want: "-12.5", valid: true},
		{name: "sub-cent rounds to cents", in: "10.0049", want: "10", valid: true},
		{name: "sub-cent rounds up", in: "10.005", want: "10.01", valid: true},
		{name: "empty", in: "", valid: false},
		{name: "currency only", in: "$", valid: false},
		{name: "text", in: "twelve", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAmount(tc.in)
			if tc.valid != (err == nil) {
				t.Fatalf("ParseAmount(%q) error = %v, want valid=%v", tc.in, err, tc.valid)
			}
			if tc.valid && got.String() != tc.want {
				t.Errorf("ParseAmount(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	testCases := []struct {
		in    string
		want  Kind
		valid bool
	}{
		{in: "income", want: Income, valid: true},
		{in: "Income", want: Income, valid: true},
		{in: "EXPENSE", want: Expense, valid: true},
		{in: " expense ", want: Expense, valid: true},
		{in: "expensive", want: Expense, valid: true}, // legacy spelling
		{in: "transfer", valid: false},
		{in: "", valid: false},
	}

	for _, tc := range testCases {
		got, err := ParseKind(tc.in)
		if tc.valid != (err == nil) {
			t.Fatalf("ParseKind(%q) error = %v, want valid=%v", tc.in, err, tc.valid)
		}
		if tc.valid && got != tc.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
