package cmd

import (
	"flag"
	"fmt"
	"time"

	"github.com/etnz/pfm"
)

// filterFlags holds the date and category filtering flags shared by the
// reporting commands.
type filterFlags struct {
	year     int
	month    int
	day      int
	start    string
	end      string
	category string
}

func (p *filterFlags) setFlags(f *flag.FlagSet) {
	f.IntVar(&p.year, "y", 0, "Restrict to this calendar year")
	f.IntVar(&p.month, "m", 0, "Restrict to this month number (1-12)")
	f.IntVar(&p.day, "day", 0, "Restrict to this day of month")
	f.StringVar(&p.start, "s", "", "Inclusive start date")
	f.StringVar(&p.end, "e", "", "Inclusive end date")
	f.StringVar(&p.category, "c", "", `Category substring to match; "all" matches everything`)
}

func (p *filterFlags) parse() (pfm.Filter, error) {
	filter := pfm.Filter{
		Year:     p.year,
		Month:    time.Month(p.month),
		Day:      p.day,
		Category: p.category,
	}
	var err error
	if p.start != "" {
		if filter.Start, err = pfm.ParseDate(p.start); err != nil {
			return filter, fmt.Errorf("invalid start date: %w", err)
		}
	}
	if p.end != "" {
		if filter.End, err = pfm.ParseDate(p.end); err != nil {
			return filter, fmt.Errorf("invalid end date: %w", err)
		}
	}
	return filter, nil
}
