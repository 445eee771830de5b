package expenses

import (
	"context"
	"time"
)

//go:generate mockgen -source=source.go -destination=../mocks/mock_source.go -package=mocks

// Source supplies worksheet data. Table returns the first worksheet of a spreadsheet, Cell
// the formatted value of a single A1 cell on that worksheet and Modified the time of the
// latest revision of the spreadsheet.
type Source interface {
	Table(ctx context.Context, spreadsheet string) (*Table, error)
	Cell(ctx context.Context, spreadsheet string, cell string) (string, error)
	Modified(ctx context.Context, spreadsheet string) (time.Time, error)
}
