package commodity

import "fmt"

// Weight is a cargo weight. Stored in pounds; constructors and accessors
// convert between ounces, pounds, and short tons.
type Weight struct {
	Lbs float64 `json:"lbs"`
}

// FromOz builds a weight from ounces.
func FromOz(qty float64) Weight {
	return Weight{Lbs: qty / 16}
}

// FromLbs builds a weight from pounds.
func FromLbs(qty float64) Weight {
	return Weight{Lbs: qty}
}

// FromTons builds a weight from short tons.
func FromTons(qty float64) Weight {
	return Weight{Lbs: qty * 2000}
}

// InOz returns the weight in ounces.
func (w Weight) InOz() float64 { return w.Lbs * 16 }

// InLbs returns the weight in pounds.
func (w Weight) InLbs() float64 { return w.Lbs }

// InTons returns the weight in short tons.
func (w Weight) InTons() float64 { return w.Lbs / 2000 }

// Times scales the weight by a (possibly negative) factor.
func (w Weight) Times(scalar float64) Weight {
	return Weight{Lbs: w.Lbs * scalar}
}

// Plus adds two weights.
func (w Weight) Plus(other Weight) Weight {
	return Weight{Lbs: w.Lbs + other.Lbs}
}

// String picks the most readable unit for display.
func (w Weight) String() string {
	switch {
	case w.InOz() < 15.5:
		return fmt.Sprintf("%.2f oz", w.InOz())
	case w.InTons() >= 1:
		return fmt.Sprintf("%.1f tn", w.InTons())
	default:
		return fmt.Sprintf("%.1f lbs", w.InLbs())
	}
}
