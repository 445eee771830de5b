package expenses

import (
	"fmt"
)

// Column selects a display column, either by header name or, if Name is blank, by its
// zero-based position in the full header list. Label, if set, replaces the header name as
// the output key.
type Column struct {
	Name  string
	Index int
	Label string
}

func (c Column) resolve(header []string) (key string, label string) {
	key = c.Name
	if key == "" && c.Index >= 0 && c.Index < len(header) {
		key = header[c.Index]
	}

	label = c.Label
	switch {
	case label != "":
	case key != "":
		label = key
	default:
		label = fmt.Sprintf("%d", c.Index)
	}

	return
}

// ProjectedHeader returns the output keys for a column selection, or the header unchanged
// if there is no selection. A label that repeats an earlier one is dropped.
func ProjectedHeader(header []string, columns []Column) []string {
	if len(columns) == 0 {
		return header
	}

	labels := []string{}
	for _, c := range selection(header, columns) {
		labels = append(labels, c.label)
	}

	return labels
}

// ProjectColumns narrows each record to the selected columns. Columns missing from a record
// project as "" and a column whose label repeats an earlier one is skipped, so every output
// key is unique.
func ProjectColumns(records []Record, header []string, columns []Column) []Record {
	if len(columns) == 0 {
		return records
	}

	selected := selection(header, columns)
	projected := make([]Record, 0, len(records))
	for _, record := range records {
		r := make(Record, 0, len(selected))
		for _, c := range selected {
			v := ""
			if c.key != "" {
				v = record.Get(c.key)
			}

			r = append(r, Field{Name: c.label, Value: v})
		}

		projected = append(projected, r)
	}

	return projected
}

type selected struct {
	key   string
	label string
}

func selection(header []string, columns []Column) []selected {
	list := make([]selected, 0, len(columns))
	labels := map[string]bool{}

	for _, c := range columns {
		key, label := c.resolve(header)
		if !labels[label] {
			labels[label] = true
			list = append(list, selected{key, label})
		}
	}

	return list
}
