package expenses

import (
	"fmt"
	"strings"
)

const (
	DefaultCostCenterHeader = "cost center"
	DefaultStatusHeader     = "status"
)

// PendingStatuses are the expense statuses that still need action from the cost center
// ('awaiting receipt' and 'awaiting acknowledgment').
var PendingStatuses = []string{"รอแนบใบเสร็จ", "รอแนบใบตอบรับ"}

// Headers holds the text searched for in the expense worksheet header row to locate the cost
// center and status columns. Empty fields use the defaults.
type Headers struct {
	CostCenter string
	Status     string
}

// FindHeader returns the first header whose normalised text contains the normalised needle.
func FindHeader(header []string, needle string) (string, error) {
	k := normalise(needle)
	for _, h := range header {
		if strings.Contains(normalise(h), k) {
			return h, nil
		}
	}

	return "", &ConfigurationError{
		Message: fmt.Sprintf("Missing '%s' column in expense sheet", needle),
	}
}

// FilterVisibleExpenses returns the expense records whose cost center is in the access set
// and whose status is one of the target statuses, in their original order. The table is
// not modified.
func FilterVisibleExpenses(table *Table, access AccessSet, statuses []string, headers Headers) ([]Record, error) {
	if table == nil {
		return nil, &ConfigurationError{Message: "Missing expense sheet"}
	}

	if headers.CostCenter == "" {
		headers.CostCenter = DefaultCostCenterHeader
	}

	if headers.Status == "" {
		headers.Status = DefaultStatusHeader
	}

	costCenter, err := FindHeader(table.Header, headers.CostCenter)
	if err != nil {
		return nil, err
	}

	status, err := FindHeader(table.Header, headers.Status)
	if err != nil {
		return nil, err
	}

	visible := []Record{}
	for _, record := range table.Records {
		if !access.Contains(clean(record.Get(costCenter))) {
			continue
		}

		if !contains(statuses, clean(record.Get(status))) {
			continue
		}

		visible = append(visible, record)
	}

	return visible, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}

	return false
}
