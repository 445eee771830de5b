package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/pending-expense/pending-expense-app/expenses"
)

func clearenv(t *testing.T) {
	for _, k := range []string{
		"PENDING_EXPENSE_CONFIG",
		"GOOGLE_SERVICE_ACCOUNT_CREDS_JSON",
		"GOOGLE_SERVICE_ACCOUNT_CREDS_FILE",
		"USER_SHEET_ID",
		"PERMISSION_SHEET_ID",
		"EXPENSE_SHEET_ID",
		"SESSION_SECRET",
		"HTTP_BIND",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearenv(t)

	t.Setenv("GOOGLE_SERVICE_ACCOUNT_CREDS_JSON", `{"client_email":"x","private_key":"y"}`)
	t.Setenv("USER_SHEET_ID", "users")
	t.Setenv("PERMISSION_SHEET_ID", "https://docs.google.com/spreadsheets/d/1LXyGjplIU6WZPF/edit#gid=0")
	t.Setenv("EXPENSE_SHEET_ID", " expenses ")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Unexpected error loading configuration (%v)", err)
	}

	if err := c.Validate(); err != nil {
		t.Fatalf("Unexpected validation error (%v)", err)
	}

	if c.Sheets.UserSheet() != "users" {
		t.Errorf("Incorrect user sheet - expected:%v, got:%v", "users", c.Sheets.UserSheet())
	}

	if c.Sheets.PermissionSheet() != "1LXyGjplIU6WZPF" {
		t.Errorf("Incorrect permission sheet - expected:%v, got:%v", "1LXyGjplIU6WZPF", c.Sheets.PermissionSheet())
	}

	if c.Sheets.ExpenseSheet() != "expenses" {
		t.Errorf("Incorrect expense sheet - expected:%v, got:%v", "expenses", c.Sheets.ExpenseSheet())
	}

	if !reflect.DeepEqual(c.Expenses.Statuses, expenses.PendingStatuses) {
		t.Errorf("Incorrect default statuses - expected:%v, got:%v", expenses.PendingStatuses, c.Expenses.Statuses)
	}

	if c.Expenses.LastUpdate.Cell != "AB2" || c.Expenses.LastUpdate.Default != "ไม่ระบุ" {
		t.Errorf("Incorrect default last update configuration %+v", c.Expenses.LastUpdate)
	}

	if key, err := c.Key(); err != nil || string(key) != `{"client_email":"x","private_key":"y"}` {
		t.Errorf("Incorrect credentials - got:%s (%v)", key, err)
	}
}

func TestValidateWithMissingSheets(t *testing.T) {
	clearenv(t)

	c, err := Load("")
	if err != nil {
		t.Fatalf("Unexpected error loading configuration (%v)", err)
	}

	var cerr *expenses.ConfigurationError
	if err := c.Validate(); !errors.As(err, &cerr) {
		t.Errorf("Expected ConfigurationError for missing sheet IDs, got %v", err)
	}
}

func TestKeyWithoutCredentials(t *testing.T) {
	clearenv(t)

	c := Default()

	var cerr *expenses.ConfigurationError
	if _, err := c.Key(); !errors.As(err, &cerr) {
		t.Errorf("Expected ConfigurationError for missing credentials, got %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	clearenv(t)
	t.Setenv("EXPENSE_SHEET_ID", "from-env")

	yaml := `
credentials: /etc/pending-expense/credentials.json
sheets:
  users: users-sheet
  permissions: permissions-sheet
  expenses: expenses-sheet
permissions:
  identity: Cost Center
  access:
    - ดูข้อมูลของCost Center อื่นได้
expenses:
  statuses: [รอแนบใบเสร็จ]
  sort-by: Date
  last-update:
    source: drive
  columns:
    - Date
    - 3
    - name: Amount
      label: จำนวนเงิน
session:
  secret: 0123456789abcdef
  ttl: 2h
`

	path := filepath.Join(t.TempDir(), "pending-expense.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0600); err != nil {
		t.Fatalf("Error writing configuration file (%v)", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error loading configuration (%v)", err)
	}

	if err := c.Validate(); err != nil {
		t.Fatalf("Unexpected validation error (%v)", err)
	}

	if c.CredentialsFile != "/etc/pending-expense/credentials.json" {
		t.Errorf("Incorrect credentials file - got:%v", c.CredentialsFile)
	}

	if c.Sheets.Expenses != "from-env" || c.Sheets.Users != "users-sheet" {
		t.Errorf("Incorrect sheets %+v", c.Sheets)
	}

	expected := expenses.PermissionColumns{
		Identity: "Cost Center",
		Access:   []string{"ดูข้อมูลของCost Center อื่นได้"},
	}

	if !reflect.DeepEqual(c.Permissions.Columns(), expected) {
		t.Errorf("Incorrect permission columns\n   expected: %v\n   got:      %v\n", expected, c.Permissions.Columns())
	}

	if !reflect.DeepEqual(c.Expenses.Statuses, []string{"รอแนบใบเสร็จ"}) {
		t.Errorf("Incorrect statuses - got:%v", c.Expenses.Statuses)
	}

	if c.Expenses.LastUpdate.Source != SOURCE_DRIVE || c.Expenses.LastUpdate.Cell != "AB2" {
		t.Errorf("Incorrect last update configuration %+v", c.Expenses.LastUpdate)
	}

	columns := []expenses.Column{
		{Name: "Date"},
		{Index: 3},
		{Name: "Amount", Label: "จำนวนเงิน"},
	}

	if !reflect.DeepEqual(c.Expenses.Display(), columns) {
		t.Errorf("Incorrect display columns\n   expected: %v\n   got:      %v\n", columns, c.Expenses.Display())
	}

	if c.Session.TTL.Duration != 2*time.Hour {
		t.Errorf("Incorrect session TTL - expected:%v, got:%v", 2*time.Hour, c.Session.TTL)
	}
}

func TestLoadJSONC(t *testing.T) {
	clearenv(t)

	jsonc := `{
  // spreadsheet IDs
  "sheets": {
    "users": "users-sheet",
    "permissions": "permissions-sheet",
    "expenses": "expenses-sheet",
  },
  "users": { "username": "Cost Center", "password": "PIN" },
  "expenses": {
    "columns": ["Date", 2, { "index": 0, "label": "No." }],
  },
  "session": { "ttl": "30m" },
}`

	path := filepath.Join(t.TempDir(), "pending-expense.jsonc")
	if err := os.WriteFile(path, []byte(jsonc), 0600); err != nil {
		t.Fatalf("Error writing configuration file (%v)", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error loading configuration (%v)", err)
	}

	if err := c.Validate(); err != nil {
		t.Fatalf("Unexpected validation error (%v)", err)
	}

	if c.Users.Columns() != (expenses.UserColumns{Username: "Cost Center", Password: "PIN"}) {
		t.Errorf("Incorrect user columns %+v", c.Users.Columns())
	}

	columns := []expenses.Column{
		{Name: "Date"},
		{Index: 2},
		{Index: 0, Label: "No."},
	}

	if !reflect.DeepEqual(c.Expenses.Display(), columns) {
		t.Errorf("Incorrect display columns\n   expected: %v\n   got:      %v\n", columns, c.Expenses.Display())
	}

	if c.Session.TTL.Duration != 30*time.Minute {
		t.Errorf("Incorrect session TTL - expected:%v, got:%v", 30*time.Minute, c.Session.TTL)
	}
}

func TestLoadWithInvalidLastUpdateSource(t *testing.T) {
	clearenv(t)

	t.Setenv("USER_SHEET_ID", "users")
	t.Setenv("PERMISSION_SHEET_ID", "permissions")
	t.Setenv("EXPENSE_SHEET_ID", "expenses")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Unexpected error loading configuration (%v)", err)
	}

	c.Expenses.LastUpdate.Source = "cache"

	if err := c.Validate(); err == nil {
		t.Errorf("Expected validation error for last update source 'cache'")
	}
}

func TestLoadWithUnsupportedFormat(t *testing.T) {
	clearenv(t)

	path := filepath.Join(t.TempDir(), "pending-expense.toml")
	if err := os.WriteFile(path, []byte(`[sheets]`), 0600); err != nil {
		t.Fatalf("Error writing configuration file (%v)", err)
	}

	if _, err := Load(path); err == nil {
		t.Errorf("Expected error loading TOML configuration file")
	}
}
