package pfm

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// This file handles the persisted format of the ledger: a ';'-delimited
// UTF-8 text table with a header row. On read, column order is irrelevant
// and headers are matched by name after trimming; an identifier column is
// optional and synthesized when absent. On write, the canonical column
// order is id, description, kind, amount, category, date.

// canonical column names, in write order.
const (
	colID          = "id"
	colDescription = "description"
	colKind        = "kind"
	colAmount      = "amount"
	colCategory    = "category"
	colDate        = "date"
)

// headerAliases maps legacy header spellings to canonical column names.
// Historical files name the kind column "Income/expensive".
var headerAliases = map[string]string{
	"income/expensive": colKind,
	"type":             colKind,
	"identifier":       colID,
}

// DecodeLedger normalizes the raw bytes of a delimited ledger table into a
// canonical record set.
//
// A missing business column is a hard failure (*SchemaError). A malformed
// row value is a data-quality filter, not an error: the row is silently
// excluded and counted in Ledger.Dropped. Rows with a blank identifier
// receive a freshly generated one and Ledger.NeedsRewrite reports true so
// the caller can persist once to stamp them back to storage.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot parse ledger table: %w", err)
	}
	if len(rows) == 0 {
		return nil, &SchemaError{Missing: []string{colDescription, colKind, colAmount, colCategory, colDate}}
	}

	// Resolve each header cell to a canonical column, keeping unknown
	// columns (with their original trimmed name) as passthrough extras.
	columns := make(map[string]int) // canonical name -> column index
	extras := make(map[int]string)  // column index -> original name
	for i, cell := range rows[0] {
		name := strings.TrimSpace(cell)
		key := strings.ToLower(name)
		if alias, ok := headerAliases[key]; ok {
			key = alias
		}
		switch key {
		case colID, colDescription, colKind, colAmount, colCategory, colDate:
			columns[key] = i
		default:
			if name != "" {
				extras[i] = name
			}
		}
	}

	var missing []string
	for _, name := range []string{colDescription, colKind, colAmount, colCategory, colDate} {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	idCol, hasID := columns[colID]

	field := func(row []string, i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	ledger := NewLedger()
	for _, row := range rows[1:] {
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue // skip blank lines
		}
		amount, err := ParseAmount(field(row, columns[colAmount]))
		if err != nil {
			ledger.dropped++
			continue
		}
		day, err := ParseDate(field(row, columns[colDate]))
		if err != nil {
			ledger.dropped++
			continue
		}
		kind, err := ParseKind(field(row, columns[colKind]))
		if err != nil {
			ledger.dropped++
			continue
		}

		tx := Transaction{
			Description: field(row, columns[colDescription]),
			Kind:        kind,
			Amount:      amount,
			Category:    field(row, columns[colCategory]),
			Date:        day,
		}
		if hasID {
			tx.ID = field(row, idCol)
		}
		if tx.ID == "" {
			tx.ID = NewID()
			ledger.needsRewrite = true
		}
		for i, name := range extras {
			if v := field(row, i); v != "" {
				if tx.Extra == nil {
					tx.Extra = make(map[string]string)
				}
				tx.Extra[name] = v
			}
		}
		ledger.Append(tx)
	}
	return ledger, nil
}

// EncodeLedger serializes the whole record set back to the canonical
// delimited format: identifier column first, then the five business
// columns in fixed order, dates as YYYY-MM-DD and amounts to the cent.
// Extra columns encountered on read follow in sorted order, so no data is
// silently lost on rewrite.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	extraNames := make(map[string]struct{})
	for _, tx := range ledger.transactions {
		for name := range tx.Extra {
			extraNames[name] = struct{}{}
		}
	}
	extras := slices.Sorted(maps.Keys(extraNames))

	cw := csv.NewWriter(w)
	cw.Comma = ';'

	header := append([]string{colID, colDescription, colKind, colAmount, colCategory, colDate}, extras...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cannot write ledger header: %w", err)
	}
	for _, tx := range ledger.transactions {
		row := []string{
			tx.ID,
			tx.Description,
			string(tx.Kind),
			tx.Amount.StringFixed(2),
			tx.Category,
			tx.Date.String(),
		}
		for _, name := range extras {
			row = append(row, tx.Extra[name])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write ledger row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
