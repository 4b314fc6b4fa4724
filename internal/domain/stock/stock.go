package stock

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

type Type string

const (
	TypeBasic Type = "basic"
	TypeExact Type = "exact"
)

// Length limits, in characters.
const (
	MaxNameLength = 100
	MaxUnitLength = 20
)

// DefaultPercentage is reported for a stock that has no history yet.
const DefaultPercentage = 100.0

var (
	ErrEmptyName       = errors.New("stock name cannot be empty")
	ErrInvalidType     = errors.New("stock type must be basic or exact")
	ErrPercentageRange = errors.New("percentage must be between 0 and 100")
	ErrFullValue       = errors.New("full value must be greater than 0")
	ErrNameTooLong     = errors.New("stock name cannot be longer than 100 characters")
	ErrUnitTooLong     = errors.New("unit cannot be longer than 20 characters")
)

func (t Type) Valid() bool {
	return t == TypeBasic || t == TypeExact
}

// Stock is a tracked inventory item. FullValue and Unit are only set for
// exact stocks.
type Stock struct {
	ID         int64
	Name       string
	CategoryID int64
	Type       Type
	FullValue  *float64
	Unit       *string
}

// Input carries the fields of a stock create or update together with the
// percentage recorded in the new history entry.
// A zero CategoryID means "Uncategorized".
type Input struct {
	Name       string
	CategoryID int64
	Type       Type
	FullValue  *float64
	Unit       *string
	Percentage float64
}

// Normalize trims the name and unit and drops the measurement fields of a
// basic stock.
func (in *Input) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	if in.Type == "" {
		in.Type = TypeBasic
	}
	if in.Type == TypeBasic {
		in.FullValue = nil
		in.Unit = nil
		return
	}
	if in.Unit != nil {
		u := strings.TrimSpace(*in.Unit)
		if u == "" {
			in.Unit = nil
		} else {
			in.Unit = &u
		}
	}
}

func (in *Input) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Name)) > MaxNameLength {
		return ErrNameTooLong
	}
	if in.Unit != nil && utf8.RuneCountInString(strings.TrimSpace(*in.Unit)) > MaxUnitLength {
		return ErrUnitTooLong
	}
	if !in.Type.Valid() {
		return ErrInvalidType
	}
	if in.Percentage < 0 || in.Percentage > 100 {
		return ErrPercentageRange
	}
	if in.Type == TypeExact && (in.FullValue == nil || *in.FullValue <= 0) {
		return ErrFullValue
	}
	return nil
}

// Stock builds the persisted representation of the input.
func (in *Input) Stock(id int64) *Stock {
	return &Stock{
		ID:         id,
		Name:       in.Name,
		CategoryID: in.CategoryID,
		Type:       in.Type,
		FullValue:  in.FullValue,
		Unit:       in.Unit,
	}
}

// View is a stock joined with its category name and current percentage.
type View struct {
	ID           int64
	Name         string
	CategoryID   int64
	CategoryName string
	Type         Type
	FullValue    *float64
	Unit         *string
	Percentage   float64
	HasHistory   bool
}

func (v View) Band() Band {
	return BandOf(v.Percentage)
}

// HistoryEntry is an immutable record of a stock's percentage at a point in time.
type HistoryEntry struct {
	ID         int64
	StockID    int64
	Timestamp  time.Time
	Percentage float64
}

// HistoryRow is a history entry joined with the owning stock's current name.
type HistoryRow struct {
	StockID    int64
	StockName  string
	Timestamp  time.Time
	Percentage float64
}
