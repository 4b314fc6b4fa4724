package stock_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/pantry-it/backend/internal/domain/stock"
)

func ptr[T any](v T) *T { return &v }

func TestInputValidate(t *testing.T) {
	tests := []struct {
		name  string
		input stock.Input
		want  error
	}{
		{"basic ok", stock.Input{Name: "Rice", Type: stock.TypeBasic, Percentage: 50}, nil},
		{"exact ok", stock.Input{Name: "Milk", Type: stock.TypeExact, FullValue: ptr(1.5), Percentage: 20}, nil},
		{"empty name", stock.Input{Name: "  ", Type: stock.TypeBasic, Percentage: 50}, stock.ErrEmptyName},
		{"bad type", stock.Input{Name: "Rice", Type: "bulk", Percentage: 50}, stock.ErrInvalidType},
		{"negative", stock.Input{Name: "Rice", Type: stock.TypeBasic, Percentage: -1}, stock.ErrPercentageRange},
		{"over 100", stock.Input{Name: "Rice", Type: stock.TypeBasic, Percentage: 100.5}, stock.ErrPercentageRange},
		{"exact without full", stock.Input{Name: "Milk", Type: stock.TypeExact, Percentage: 20}, stock.ErrFullValue},
		{"exact zero full", stock.Input{Name: "Milk", Type: stock.TypeExact, FullValue: ptr(0.0), Percentage: 20}, stock.ErrFullValue},
		{"name at limit", stock.Input{Name: strings.Repeat("é", 100), Type: stock.TypeBasic, Percentage: 50}, nil},
		{"name too long", stock.Input{Name: strings.Repeat("a", 101), Type: stock.TypeBasic, Percentage: 50}, stock.ErrNameTooLong},
		{"unit too long", stock.Input{Name: "Milk", Type: stock.TypeExact, FullValue: ptr(1.0), Unit: ptr(strings.Repeat("l", 21)), Percentage: 20}, stock.ErrUnitTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestInputNormalize_BasicDropsMeasurement(t *testing.T) {
	in := stock.Input{Name: " Rice ", Type: stock.TypeBasic, FullValue: ptr(2.0), Unit: ptr("kg")}
	in.Normalize()

	if in.Name != "Rice" {
		t.Errorf("expected trimmed name, got %q", in.Name)
	}
	if in.FullValue != nil || in.Unit != nil {
		t.Error("expected basic stock to have no full value or unit")
	}
}

func TestInputNormalize_ExactBlankUnit(t *testing.T) {
	in := stock.Input{Name: "Milk", Type: stock.TypeExact, FullValue: ptr(2.0), Unit: ptr("  ")}
	in.Normalize()

	if in.Unit != nil {
		t.Errorf("expected blank unit to be dropped, got %q", *in.Unit)
	}
	if in.FullValue == nil || *in.FullValue != 2 {
		t.Error("expected full value to be kept")
	}
}

func TestInputNormalize_DefaultsToBasic(t *testing.T) {
	in := stock.Input{Name: "Rice"}
	in.Normalize()

	if in.Type != stock.TypeBasic {
		t.Errorf("expected type basic, got %q", in.Type)
	}
}

func TestLevelPercentage(t *testing.T) {
	tests := map[stock.Level]float64{
		stock.LevelFull:   100,
		stock.LevelHalf:   50,
		stock.LevelRefill: 10,
	}
	for level, want := range tests {
		got, err := level.Percentage()
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", level, err)
		}
		if got != want {
			t.Errorf("%s: expected %v, got %v", level, want, got)
		}
	}

	if _, err := stock.Level("empty").Percentage(); !errors.Is(err, stock.ErrInvalidLevel) {
		t.Errorf("expected ErrInvalidLevel, got %v", err)
	}
}

func TestLevelFor(t *testing.T) {
	if got := stock.LevelFor(100); got != stock.LevelFull {
		t.Errorf("expected full, got %s", got)
	}
	if got := stock.LevelFor(50); got != stock.LevelHalf {
		t.Errorf("expected half, got %s", got)
	}
	if got := stock.LevelFor(10); got != stock.LevelRefill {
		t.Errorf("expected refill, got %s", got)
	}
}

func TestPercentageOf(t *testing.T) {
	got, err := stock.PercentageOf(1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 33.33 {
		t.Errorf("expected 33.33, got %v", got)
	}

	got, err = stock.PercentageOf(250, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 50 {
		t.Errorf("expected 50, got %v", got)
	}
}

func TestPercentageOf_Invalid(t *testing.T) {
	if _, err := stock.PercentageOf(1, 0); !errors.Is(err, stock.ErrFullValue) {
		t.Errorf("expected ErrFullValue, got %v", err)
	}
	if _, err := stock.PercentageOf(-1, 10); !errors.Is(err, stock.ErrCurrentRange) {
		t.Errorf("expected ErrCurrentRange, got %v", err)
	}
	if _, err := stock.PercentageOf(11, 10); !errors.Is(err, stock.ErrCurrentExceedsFull) {
		t.Errorf("expected ErrCurrentExceedsFull, got %v", err)
	}
}

func TestAmountAt(t *testing.T) {
	if got := stock.AmountAt(50, 500); got != 250 {
		t.Errorf("expected 250, got %v", got)
	}
	if got := stock.AmountAt(33.33, 3); got != 1 {
		t.Errorf("expected 1, got %v", got)
	}
}

func TestBandOf(t *testing.T) {
	tests := []struct {
		pct  float64
		want stock.Band
	}{
		{0, stock.BandNeedsRefill},
		{49.99, stock.BandNeedsRefill},
		{50, stock.BandGettingLow},
		{89.9, stock.BandGettingLow},
		{90, stock.BandWellStocked},
		{100, stock.BandWellStocked},
	}
	for _, tt := range tests {
		if got := stock.BandOf(tt.pct); got != tt.want {
			t.Errorf("BandOf(%v) = %s, want %s", tt.pct, got, tt.want)
		}
	}
}
