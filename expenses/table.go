package expenses

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"google.golang.org/api/sheets/v4"
)

// Table is a worksheet converted to header-keyed records. Header holds the non-blank
// column names of the first row, in sheet order.
type Table struct {
	Header  []string
	Records []Record
}

// MakeTable builds a Table from a worksheet value range. The first row is the header row;
// entirely blank rows are skipped and cells beyond the end of a short row read as "".
func MakeTable(data *sheets.ValueRange) (*Table, error) {
	if data == nil || len(data.Values) == 0 {
		return nil, fmt.Errorf("Empty sheet")
	}

	// .. build index
	index := map[string]int{}
	header := []string{}
	for i, v := range data.Values[0] {
		k := clean(stringify(v))
		if k == "" {
			continue
		}

		if _, ok := index[k]; ok {
			return nil, fmt.Errorf("Duplicate column name '%s'", k)
		}

		index[k] = i
		header = append(header, k)
	}

	if len(header) == 0 {
		return nil, fmt.Errorf("Missing/invalid header row")
	}

	// ... records
	records := []Record{}
	for _, row := range data.Values[1:] {
		if blank(row) {
			continue
		}

		record := make(Record, 0, len(header))
		for _, h := range header {
			v := ""
			if ix := index[h]; ix < len(row) {
				v = stringify(row[ix])
			}

			record = append(record, Field{Name: h, Value: v})
		}

		records = append(records, record)
	}

	return &Table{
		Header:  header,
		Records: records,
	}, nil
}

func blank(row []any) bool {
	for _, v := range row {
		if clean(stringify(v)) != "" {
			return false
		}
	}

	return true
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", v)
	}
}

func clean(v string) string {
	return strings.TrimSpace(v)
}

// normalise folds case and strips whitespace and underscores so that 'Cost_Center',
// 'cost center' and 'COSTCENTER' compare equal.
func normalise(v string) string {
	folded := cases.Fold().String(v)

	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '_' {
			return -1
		}
		return r
	}, folded)
}
