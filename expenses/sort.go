package expenses

import (
	"regexp"
	"sort"
	"strconv"
	"time"
)

var separators = regexp.MustCompile(`[/.\-]`)

// ParseDate parses a day-first DD/MM/YYYY date, accepting '/', '.' or '-' as the separator.
// Out of range days and months roll over into the following month/year.
func ParseDate(s string) (time.Time, bool) {
	tokens := separators.Split(clean(s), -1)
	if len(tokens) != 3 {
		return time.Time{}, false
	}

	parts := [3]int{}
	for i, t := range tokens {
		v, err := strconv.Atoi(clean(t))
		if err != nil {
			return time.Time{}, false
		}
		parts[i] = v
	}

	day, month, year := parts[0], parts[1], parts[2]

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), true
}

// SortByDate returns a copy of the records sorted by the date in the named column, oldest
// first. Records without a parseable date are placed at the end in their original order.
func SortByDate(records []Record, column string) []Record {
	type dated struct {
		record Record
		date   time.Time
		ok     bool
	}

	list := make([]dated, len(records))
	for i, r := range records {
		date, ok := ParseDate(r.Get(column))
		list[i] = dated{r, date, ok}
	}

	sort.SliceStable(list, func(i, j int) bool {
		p, q := list[i], list[j]
		switch {
		case p.ok && q.ok:
			return p.date.Before(q.date)
		case p.ok:
			return true
		default:
			return false
		}
	})

	sorted := make([]Record, len(list))
	for i, v := range list {
		sorted[i] = v.record
	}

	return sorted
}
