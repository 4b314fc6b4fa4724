package stock

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Level is one of the preset fill levels offered for basic stocks.
type Level string

const (
	LevelFull   Level = "full"
	LevelHalf   Level = "half"
	LevelRefill Level = "refill"
)

var (
	ErrInvalidLevel       = errors.New("level must be full, half or refill")
	ErrCurrentRange       = errors.New("current amount cannot be negative")
	ErrCurrentExceedsFull = errors.New("current amount cannot be greater than full value")
)

var levelPercentages = map[Level]float64{
	LevelFull:   100,
	LevelHalf:   50,
	LevelRefill: 10,
}

func (l Level) Percentage() (float64, error) {
	p, ok := levelPercentages[l]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, string(l))
	}
	return p, nil
}

// LevelFor picks the preset closest to pct from below, used to prefill an
// edit form.
func LevelFor(pct float64) Level {
	switch {
	case pct >= 90:
		return LevelFull
	case pct >= 50:
		return LevelHalf
	default:
		return LevelRefill
	}
}

var hundred = decimal.NewFromInt(100)

// PercentageOf converts an exact measurement into a percentage rounded to
// two decimals.
func PercentageOf(current, full float64) (float64, error) {
	if full <= 0 {
		return 0, ErrFullValue
	}
	if current < 0 {
		return 0, ErrCurrentRange
	}
	if current > full {
		return 0, ErrCurrentExceedsFull
	}
	p := decimal.NewFromFloat(current).
		Div(decimal.NewFromFloat(full)).
		Mul(hundred).
		Round(2)
	return p.InexactFloat64(), nil
}

// AmountAt is the inverse of PercentageOf.
func AmountAt(pct, full float64) float64 {
	return decimal.NewFromFloat(pct).
		Mul(decimal.NewFromFloat(full)).
		Div(hundred).
		Round(2).
		InexactFloat64()
}
