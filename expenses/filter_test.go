package expenses

import (
	"errors"
	"reflect"
	"testing"
)

var expenses = Table{
	Header: []string{"Doc No", "Cost_Center", "Expense Status", "Date"},
	Records: []Record{
		{{"Doc No", "1"}, {"Cost_Center", "B"}, {"Expense Status", "รอแนบใบเสร็จ"}, {"Date", "01/02/2024"}},
		{{"Doc No", "2"}, {"Cost_Center", "Z"}, {"Expense Status", "รอแนบใบเสร็จ"}, {"Date", "02/02/2024"}},
		{{"Doc No", "3"}, {"Cost_Center", " A "}, {"Expense Status", " รอแนบใบตอบรับ "}, {"Date", "N/A"}},
		{{"Doc No", "4"}, {"Cost_Center", "A"}, {"Expense Status", "ปิดแล้ว"}, {"Date", "31/01/2024"}},
		{{"Doc No", "5"}, {"Cost_Center", "C"}, {"Expense Status", "รอแนบใบตอบรับ"}, {"Date", "31/01/2024"}},
	},
}

func TestFilterVisibleExpenses(t *testing.T) {
	expected := []Record{expenses.Records[0], expenses.Records[2], expenses.Records[4]}

	visible, err := FilterVisibleExpenses(&expenses, AccessSet{"A", "B", "C"}, PendingStatuses, Headers{})
	if err != nil {
		t.Fatalf("Unexpected error filtering expenses (%v)", err)
	}

	if !reflect.DeepEqual(visible, expected) {
		t.Errorf("Incorrect visible expenses\n   expected: %v\n   got:      %v\n", expected, visible)
	}
}

func TestFilterVisibleExpensesScenario(t *testing.T) {
	perms := Table{
		Header:  []string{"CostCenter", "Extra"},
		Records: []Record{{{"CostCenter", "A"}, {"Extra", "B,C"}}},
	}

	table := Table{
		Header: []string{"CostCenter", "Status"},
		Records: []Record{
			{{"CostCenter", "B"}, {"Status", "รอแนบใบเสร็จ"}},
			{{"CostCenter", "Z"}, {"Status", "รอแนบใบเสร็จ"}},
		},
	}

	expected := []Record{table.Records[0]}

	access := ResolveAccessibleCostCenters("A", &perms, PermissionColumns{})
	visible, err := FilterVisibleExpenses(&table, access, PendingStatuses, Headers{})
	if err != nil {
		t.Fatalf("Unexpected error filtering expenses (%v)", err)
	}

	if !reflect.DeepEqual(visible, expected) {
		t.Errorf("Incorrect visible expenses\n   expected: %v\n   got:      %v\n", expected, visible)
	}
}

func TestFilterVisibleExpensesIsIdempotent(t *testing.T) {
	access := AccessSet{"A", "B"}

	once, err := FilterVisibleExpenses(&expenses, access, PendingStatuses, Headers{})
	if err != nil {
		t.Fatalf("Unexpected error filtering expenses (%v)", err)
	}

	twice, err := FilterVisibleExpenses(&Table{Header: expenses.Header, Records: once}, access, PendingStatuses, Headers{})
	if err != nil {
		t.Fatalf("Unexpected error filtering expenses (%v)", err)
	}

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Filter is not idempotent\n   once:  %v\n   twice: %v\n", once, twice)
	}
}

func TestFilterVisibleExpensesDoesNotModifyTable(t *testing.T) {
	before := len(expenses.Records)
	first := expenses.Records[0]

	if _, err := FilterVisibleExpenses(&expenses, AccessSet{"Z"}, PendingStatuses, Headers{}); err != nil {
		t.Fatalf("Unexpected error filtering expenses (%v)", err)
	}

	if len(expenses.Records) != before || !reflect.DeepEqual(expenses.Records[0], first) {
		t.Errorf("Expense table modified by filter")
	}
}

func TestFilterVisibleExpensesWithEmptyAccessSet(t *testing.T) {
	visible, err := FilterVisibleExpenses(&expenses, AccessSet{}, PendingStatuses, Headers{})
	if err != nil {
		t.Fatalf("Unexpected error filtering expenses (%v)", err)
	}

	if visible == nil || len(visible) != 0 {
		t.Errorf("Expected empty list for empty access set, got %v", visible)
	}
}

func TestFilterVisibleExpensesNeverLeaksOtherCostCenters(t *testing.T) {
	for _, access := range []AccessSet{{}, {"A"}, {"B", "Z"}, {"A", "B", "C", "Q"}} {
		visible, err := FilterVisibleExpenses(&expenses, access, PendingStatuses, Headers{})
		if err != nil {
			t.Fatalf("Unexpected error filtering expenses (%v)", err)
		}

		for _, r := range visible {
			if cc := clean(r.Get("Cost_Center")); !access.Contains(cc) {
				t.Errorf("Access set %v - unexpected record for cost center '%v'", access, cc)
			}
		}
	}
}

func TestFilterVisibleExpensesWithMissingCostCenterHeader(t *testing.T) {
	table := Table{
		Header: []string{"Center", "Status"},
	}

	_, err := FilterVisibleExpenses(&table, AccessSet{"A"}, PendingStatuses, Headers{})

	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("Expected ConfigurationError for missing 'cost center' column, got %v", err)
	}
}

func TestFilterVisibleExpensesWithMissingStatusHeader(t *testing.T) {
	table := Table{
		Header: []string{"Cost Center", "State"},
	}

	_, err := FilterVisibleExpenses(&table, AccessSet{"A"}, PendingStatuses, Headers{})

	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("Expected ConfigurationError for missing 'status' column, got %v", err)
	}
}

func TestFilterVisibleExpensesWithConfiguredHeaders(t *testing.T) {
	table := Table{
		Header: []string{"Owner", "Stage"},
		Records: []Record{
			{{"Owner", "A"}, {"Stage", "open"}},
			{{"Owner", "A"}, {"Stage", "closed"}},
		},
	}

	expected := []Record{table.Records[0]}

	visible, err := FilterVisibleExpenses(&table, AccessSet{"A"}, []string{"open"}, Headers{CostCenter: "owner", Status: "STAGE"})
	if err != nil {
		t.Fatalf("Unexpected error filtering expenses (%v)", err)
	}

	if !reflect.DeepEqual(visible, expected) {
		t.Errorf("Incorrect visible expenses\n   expected: %v\n   got:      %v\n", expected, visible)
	}
}

func TestFindHeader(t *testing.T) {
	header := []string{"No", "COST CENTER (CC)", "Cost Center 2", "Status"}

	h, err := FindHeader(header, "cost center")
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if h != "COST CENTER (CC)" {
		t.Errorf("Incorrect header - expected:%v, got:%v", "COST CENTER (CC)", h)
	}
}
