package expenses

import (
	"encoding/csv"
	"fmt"
	"io"
)

// MakeTSV writes the records as tab separated values with the header as the first line.
func MakeTSV(f io.Writer, header []string, records []Record) error {
	if len(header) == 0 {
		return fmt.Errorf("Missing/invalid header row")
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(header); err != nil {
		return err
	}

	for _, record := range records {
		row := make([]string, len(header))
		for i, h := range header {
			row[i] = clean(record.Get(h))
		}

		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}
