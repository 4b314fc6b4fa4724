package stock

// Band is the read-time classification of a stock's current percentage.
type Band int

const (
	BandNeedsRefill Band = iota // < 50
	BandGettingLow              // 50–89
	BandWellStocked             // >= 90
)

func BandOf(pct float64) Band {
	switch {
	case pct >= 90:
		return BandWellStocked
	case pct >= 50:
		return BandGettingLow
	default:
		return BandNeedsRefill
	}
}

func (b Band) String() string {
	switch b {
	case BandNeedsRefill:
		return "Needs Refill"
	case BandGettingLow:
		return "Getting Low"
	case BandWellStocked:
		return "Well Stocked"
	}
	return "Unknown"
}
