// Package config loads the pending-expense-app configuration.
//
// Configuration is assembled from built-in defaults, an optional YAML or JSONC file (given
// by --config or PENDING_EXPENSE_CONFIG) and finally the environment, which always wins. The
// environment carries the deployment secrets:
//
//   - GOOGLE_SERVICE_ACCOUNT_CREDS_JSON: service account key (JSON)
//   - GOOGLE_SERVICE_ACCOUNT_CREDS_FILE: path to a service account key or OAuth client file
//   - USER_SHEET_ID, PERMISSION_SHEET_ID, EXPENSE_SHEET_ID: spreadsheet IDs or URLs
//   - SESSION_SECRET: enables signed session tokens
//   - HTTP_BIND: listen address for the local server
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/pending-expense/pending-expense-app/expenses"
)

const (
	SOURCE_CELL  = "cell"
	SOURCE_DRIVE = "drive"
)

type Config struct {
	// Credentials is the service account key JSON. Only ever set from the environment.
	Credentials string `yaml:"-" json:"-"`

	// CredentialsFile is a path to a service account key or OAuth client credentials file,
	// used if Credentials is not set.
	CredentialsFile string `yaml:"credentials" json:"credentials"`

	Sheets      Sheets      `yaml:"sheets" json:"sheets"`
	Users       Users       `yaml:"users" json:"users"`
	Permissions Permissions `yaml:"permissions" json:"permissions"`
	Expenses    Expenses    `yaml:"expenses" json:"expenses"`
	Session     Session     `yaml:"session" json:"session"`
	HTTP        HTTP        `yaml:"http" json:"http"`
}

// Sheets identifies the user, permission and expense spreadsheets.
type Sheets struct {
	Users       string `yaml:"users" json:"users" validate:"required"`
	Permissions string `yaml:"permissions" json:"permissions" validate:"required"`
	Expenses    string `yaml:"expenses" json:"expenses" validate:"required"`
}

// Users names the username and password columns of the user sheet. Blank means the first
// and second columns.
type Users struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Permissions names the identity column of the permission sheet and the columns holding
// the comma separated lists of additional cost centers. Blank identity means the first
// column and an empty access list means every other column.
type Permissions struct {
	Identity string   `yaml:"identity" json:"identity"`
	Access   []string `yaml:"access" json:"access"`
}

type Expenses struct {
	CostCenter string     `yaml:"cost-center" json:"cost-center" validate:"required"`
	Status     string     `yaml:"status" json:"status" validate:"required"`
	Statuses   []string   `yaml:"statuses" json:"statuses" validate:"min=1,dive,required"`
	LastUpdate LastUpdate `yaml:"last-update" json:"last-update"`
	SortBy     string     `yaml:"sort-by" json:"sort-by"`
	Columns    []Column   `yaml:"columns" json:"columns"`
}

// LastUpdate configures the 'last updated' value returned with the expense data: either the
// formatted value of a worksheet cell or the time of the latest Drive revision.
type LastUpdate struct {
	Source  string `yaml:"source" json:"source" validate:"oneof=cell drive"`
	Cell    string `yaml:"cell" json:"cell" validate:"required_if=Source cell"`
	Format  string `yaml:"format" json:"format"`
	Default string `yaml:"default" json:"default"`
}

type Session struct {
	Secret string   `yaml:"secret" json:"secret" validate:"omitempty,min=16"`
	TTL    Duration `yaml:"ttl" json:"ttl"`
}

type HTTP struct {
	Bind  string   `yaml:"bind" json:"bind" validate:"required"`
	Paths []string `yaml:"paths" json:"paths" validate:"min=1"`
}

// Duration is a time.Duration that decodes from strings like '12h'.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}

	d.Duration = v

	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Expenses: Expenses{
			CostCenter: expenses.DefaultCostCenterHeader,
			Status:     expenses.DefaultStatusHeader,
			Statuses:   append([]string{}, expenses.PendingStatuses...),
			LastUpdate: LastUpdate{
				Source:  SOURCE_CELL,
				Cell:    "AB2",
				Format:  "02/01/2006 15:04",
				Default: "ไม่ระบุ",
			},
		},
		Session: Session{
			TTL: Duration{12 * time.Hour},
		},
		HTTP: HTTP{
			Bind:  ":8080",
			Paths: []string{"/api", "/.netlify/functions/api"},
		},
	}
}

// Load returns the default configuration overlaid with the configuration file (if any) and
// then the environment. An empty path falls back to PENDING_EXPENSE_CONFIG.
func Load(path string) (*Config, error) {
	c := Default()

	if path == "" {
		path = os.Getenv("PENDING_EXPENSE_CONFIG")
	}

	if path != "" {
		bytes, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("Could not read configuration file %s (%w)", path, err)
		}

		if err := c.decode(bytes, filepath.Ext(path)); err != nil {
			return nil, fmt.Errorf("Invalid configuration file %s (%w)", path, err)
		}
	}

	c.environment()

	return c, nil
}

func (c *Config) decode(bytes []byte, ext string) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(bytes, c)

	case ".json", ".jsonc":
		return json.Unmarshal(jsonc.ToJSON(bytes), c)

	default:
		return fmt.Errorf("unsupported configuration file format '%s'", ext)
	}
}

func (c *Config) environment() {
	c.Credentials = getenv("GOOGLE_SERVICE_ACCOUNT_CREDS_JSON", c.Credentials)
	c.CredentialsFile = getenv("GOOGLE_SERVICE_ACCOUNT_CREDS_FILE", c.CredentialsFile)
	c.Sheets.Users = getenv("USER_SHEET_ID", c.Sheets.Users)
	c.Sheets.Permissions = getenv("PERMISSION_SHEET_ID", c.Sheets.Permissions)
	c.Sheets.Expenses = getenv("EXPENSE_SHEET_ID", c.Sheets.Expenses)
	c.Session.Secret = getenv("SESSION_SECRET", c.Session.Secret)
	c.HTTP.Bind = getenv("HTTP_BIND", c.HTTP.Bind)
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}

	return def
}

// Validate checks that the configuration is complete. Problems are reported as an
// expenses.ConfigurationError.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return &expenses.ConfigurationError{
			Message: "Invalid configuration",
			Err:     err,
		}
	}

	return nil
}

// Key returns the credentials JSON, either directly from the environment or read from the
// credentials file.
func (c *Config) Key() ([]byte, error) {
	if strings.TrimSpace(c.Credentials) != "" {
		return []byte(c.Credentials), nil
	}

	if strings.TrimSpace(c.CredentialsFile) != "" {
		bytes, err := os.ReadFile(c.CredentialsFile)
		if err != nil {
			return nil, &expenses.ConfigurationError{
				Message: "Service Account credentials are not configured correctly.",
				Err:     err,
			}
		}

		return bytes, nil
	}

	return nil, &expenses.ConfigurationError{
		Message: "Service Account credentials are not configured correctly.",
	}
}

// SpreadsheetID extracts the spreadsheet ID from a Google Sheets URL. Anything that is not
// a spreadsheet URL is assumed to be an ID already.
func SpreadsheetID(v string) string {
	v = strings.TrimSpace(v)

	match := regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`).FindStringSubmatch(v)
	if len(match) < 2 {
		return v
	}

	return match[1]
}

func (s Sheets) UserSheet() string {
	return SpreadsheetID(s.Users)
}

func (s Sheets) PermissionSheet() string {
	return SpreadsheetID(s.Permissions)
}

func (s Sheets) ExpenseSheet() string {
	return SpreadsheetID(s.Expenses)
}

func (u Users) Columns() expenses.UserColumns {
	return expenses.UserColumns{
		Username: u.Username,
		Password: u.Password,
	}
}

func (p Permissions) Columns() expenses.PermissionColumns {
	return expenses.PermissionColumns{
		Identity: p.Identity,
		Access:   p.Access,
	}
}

func (e Expenses) Headers() expenses.Headers {
	return expenses.Headers{
		CostCenter: e.CostCenter,
		Status:     e.Status,
	}
}

func (e Expenses) Display() []expenses.Column {
	columns := make([]expenses.Column, 0, len(e.Columns))
	for _, c := range e.Columns {
		columns = append(columns, expenses.Column(c))
	}

	return columns
}
