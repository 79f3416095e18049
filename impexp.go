package pfm

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// This file handles the import format: JSON exports produced by banking
// apps. The record array is rarely at the document root, so the caller
// locates it with a JSONPath expression (e.g. "$.transactions[*]").

// ImportJSON reads a JSON document from r, extracts the records matched by
// the given JSONPath expression and maps them to transaction fields, ready
// to be validated and appended through Store.AddBatch.
//
// Each matched record must be a JSON object; its keys are matched
// case-insensitively against the five business fields. Numeric amounts are
// rendered back to text so they go through the same amount normalization
// as every other ingest path.
func ImportJSON(r io.Reader, path string) ([]TransactionFields, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot parse JSON import: %w", err)
	}

	matched, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("cannot evaluate JSONPath %q: %w", path, err)
	}
	// jsonpath returns either a list of matches or a single one.
	records, ok := matched.([]any)
	if !ok {
		records = []any{matched}
	}

	fields := make([]TransactionFields, 0, len(records))
	for i, record := range records {
		obj, ok := record.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d matched by %q is not an object", i+1, path)
		}
		var f TransactionFields
		for key, value := range obj {
			text := asText(value)
			switch canonicalField(key) {
			case colDescription:
				f.Description = text
			case colKind:
				f.Kind = text
			case colAmount:
				f.Amount = text
			case colCategory:
				f.Category = text
			case colDate:
				f.Date = text
			}
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// canonicalField resolves a JSON key to a canonical column name, reusing
// the header aliases of the delimited format.
func canonicalField(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	if alias, ok := headerAliases[k]; ok {
		return alias
	}
	return k
}

func asText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		// encoding/json decodes all numbers as float64.
		return fmt.Sprintf("%g", v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
