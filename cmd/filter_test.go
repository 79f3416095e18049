package cmd

import (
	"testing"
	"time"

	"github.com/etnz/pfm"
)

func TestFilterFlagsParse(t *testing.T) {
	p := filterFlags{year: 2025, month: 1, start: "11/01/2025", category: "food"}

	filter, err := p.parse()
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}
	if filter.Year != 2025 || filter.Month != time.January || filter.Category != "food" {
		t.Errorf("parse() = %+v, want year 2025, month January, category food", filter)
	}
	if got, want := filter.Start, pfm.MustParseDate("2025-01-11"); got != want {
		t.Errorf("parse() Start = %s, want %s (day-first)", got, want)
	}
	if !filter.End.IsZero() {
		t.Errorf("parse() End = %s, want zero", filter.End)
	}
}

func TestFilterFlagsParseBadDate(t *testing.T) {
	p := filterFlags{end: "not-a-date"}
	if _, err := p.parse(); err == nil {
		t.Fatal("parse() expected an error for a bad end date")
	}
}
