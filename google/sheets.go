package google

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/pending-expense/pending-expense-app/expenses"
)

// Sheets reads worksheets and revision history using the Google Sheets and Drive APIs. It
// implements expenses.Source.
type Sheets struct {
	sheets *sheets.Service
	drive  *drive.Service

	mutex  sync.Mutex
	titles map[string]string
}

type version struct {
	revision string
	modified time.Time
}

// NewSheets creates a Google Sheets/Drive reader using an authorised HTTP client.
func NewSheets(ctx context.Context, client *http.Client) (*Sheets, error) {
	return newSheets(ctx, option.WithHTTPClient(client))
}

func newSheets(ctx context.Context, options ...option.ClientOption) (*Sheets, error) {
	google, err := sheets.NewService(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("Unable to create new Sheets client (%w)", err)
	}

	gdrive, err := drive.NewService(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("Unable to create new Drive client (%w)", err)
	}

	return &Sheets{
		sheets: google,
		drive:  gdrive,
		titles: map[string]string{},
	}, nil
}

// Table retrieves the first worksheet of the spreadsheet.
func (s *Sheets) Table(ctx context.Context, spreadsheet string) (*expenses.Table, error) {
	title, err := s.firstSheet(ctx, spreadsheet)
	if err != nil {
		return nil, err
	}

	response, err := s.sheets.Spreadsheets.Values.Get(spreadsheet, quote(title)).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("Unable to retrieve data from sheet (%w)", err)
	}

	table, err := expenses.MakeTable(response)
	if err != nil {
		return nil, fmt.Errorf("Error creating table from worksheet '%s' (%w)", title, err)
	}

	return table, nil
}

// Cell retrieves the formatted value of a single cell (e.g. 'AB2') on the first worksheet
// of the spreadsheet. An empty cell returns "".
func (s *Sheets) Cell(ctx context.Context, spreadsheet string, cell string) (string, error) {
	title, err := s.firstSheet(ctx, spreadsheet)
	if err != nil {
		return "", err
	}

	area := fmt.Sprintf("%s!%s", quote(title), cell)
	response, err := s.sheets.Spreadsheets.Values.Get(spreadsheet, area).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("Unable to retrieve cell %s from sheet (%w)", cell, err)
	}

	if len(response.Values) == 0 || len(response.Values[0]) == 0 {
		return "", nil
	}

	return fmt.Sprintf("%v", response.Values[0][0]), nil
}

// Modified returns the modification time of the latest revision of the spreadsheet.
func (s *Sheets) Modified(ctx context.Context, spreadsheet string) (time.Time, error) {
	v, err := s.getVersion(ctx, spreadsheet)
	if err != nil {
		return time.Time{}, err
	}

	return v.modified, nil
}

// firstSheet returns the title of the first worksheet, fetching the spreadsheet properties
// only once per spreadsheet.
func (s *Sheets) firstSheet(ctx context.Context, spreadsheet string) (string, error) {
	s.mutex.Lock()
	title, ok := s.titles[spreadsheet]
	s.mutex.Unlock()

	if ok {
		return title, nil
	}

	response, err := s.sheets.Spreadsheets.Get(spreadsheet).
		Fields("sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("Failed to fetch spreadsheet (%w)", err)
	}

	var first *sheets.SheetProperties
	for _, sheet := range response.Sheets {
		if p := sheet.Properties; p != nil && (first == nil || p.Index < first.Index) {
			first = p
		}
	}

	if first == nil {
		return "", fmt.Errorf("Unable to identify worksheet for spreadsheet %s", spreadsheet)
	}

	s.mutex.Lock()
	s.titles[spreadsheet] = first.Title
	s.mutex.Unlock()

	return first.Title, nil
}

func (s *Sheets) getVersion(ctx context.Context, fileId string) (*version, error) {
	page := ""
	latest := version{
		revision: "",
		modified: time.Time{},
	}

	for {
		call := s.drive.Revisions.List(fileId).Context(ctx)
		if page != "" {
			call.PageToken(page)
		}

		revisions, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("Unable to retrieve revisions for file ID %s (%w)", fileId, err)
		}

		for _, revision := range revisions.Revisions {
			datetime, err := time.Parse(time.RFC3339, revision.ModifiedTime)
			if err != nil {
				return nil, err
			}

			if latest.modified.Before(datetime) {
				latest.revision = revision.Id
				latest.modified = datetime
			}
		}

		if page = revisions.NextPageToken; page == "" {
			break
		}
	}

	if latest.modified.IsZero() {
		return nil, fmt.Errorf("Unable to identify latest revision for file ID %s", fileId)
	}

	return &latest, nil
}

// quote returns the worksheet title as an A1 notation sheet reference.
func quote(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
