// Package commodity provides the closed catalog of tradeable goods:
// units of measure, unit weights, and 1860-era base prices.
package commodity

import (
	"fmt"
)

// Commodity enumerates the tradeable goods. The set is closed; every
// accessor below matches exhaustively.
type Commodity uint8

const (
	Feed Commodity = iota
	Grain
	Textiles
	Ammunition
	Firearms
	HeavyMachinery
	MedicalSupplies
	Potatoes
	Sugar
	Salt
	Tobacco
	Lumber
	Spirits
	Coal
	Flour
	Wine
	SaltedMeat
	Cheese
	Wool
	Iron
	Copper
	Nickel
	Gold
	Clothing

	numCommodities
)

// All returns every commodity in catalog order.
func All() []Commodity {
	out := make([]Commodity, 0, numCommodities)
	for c := Commodity(0); c < numCommodities; c++ {
		out = append(out, c)
	}
	return out
}

// Count is the number of commodities in the catalog.
const Count = int(numCommodities)

var names = [numCommodities]string{
	Feed:            "feed",
	Grain:           "grain",
	Textiles:        "textiles",
	Ammunition:      "ammunition",
	Firearms:        "firearms",
	HeavyMachinery:  "heavy machinery",
	MedicalSupplies: "medical supplies",
	Potatoes:        "potatoes",
	Sugar:           "sugar",
	Salt:            "salt",
	Tobacco:         "tobacco",
	Lumber:          "lumber",
	Spirits:         "spirits",
	Coal:            "coal",
	Flour:           "flour",
	Wine:            "wine",
	SaltedMeat:      "salted meat",
	Cheese:          "cheese",
	Wool:            "wool",
	Iron:            "iron",
	Copper:          "copper",
	Nickel:          "nickel",
	Gold:            "gold",
	Clothing:        "clothing",
}

var byName = func() map[string]Commodity {
	m := make(map[string]Commodity, numCommodities)
	for c, n := range names {
		m[n] = Commodity(c)
	}
	return m
}()

// String returns the display name, e.g. "salted meat".
func (c Commodity) String() string {
	if c >= numCommodities {
		return fmt.Sprintf("commodity(%d)", uint8(c))
	}
	return names[c]
}

// Parse resolves a display name back to its commodity.
func Parse(name string) (Commodity, bool) {
	c, ok := byName[name]
	return c, ok
}

// MarshalText encodes the commodity as its display name, so maps keyed
// by Commodity serialize with readable JSON keys.
func (c Commodity) MarshalText() ([]byte, error) {
	if c >= numCommodities {
		return nil, fmt.Errorf("unknown commodity %d", uint8(c))
	}
	return []byte(names[c]), nil
}

// UnmarshalText decodes a display name.
func (c *Commodity) UnmarshalText(text []byte) error {
	parsed, ok := byName[string(text)]
	if !ok {
		return fmt.Errorf("unknown commodity %q", string(text))
	}
	*c = parsed
	return nil
}

// Unit is a commodity's unit of measure in long and abbreviated form.
type Unit struct {
	Long  string `json:"long"`
	Short string `json:"short"`
}

// UnitOf returns the unit of measure a commodity trades in.
func UnitOf(c Commodity) Unit {
	switch c {
	case Wool:
		return Unit{Long: "skeins", Short: "sk"}
	case Textiles:
		return Unit{Long: "yards", Short: "yd"}
	case Iron, Copper, Nickel:
		return Unit{Long: "ingot", Short: "ing"}
	case Gold:
		return Unit{Long: "ounce", Short: "oz"}
	case Flour, Cheese, SaltedMeat, Sugar, Salt:
		return Unit{Long: "pounds", Short: "lbs"}
	case Feed, Grain, Potatoes:
		return Unit{Long: "bushel", Short: "bsh"}
	case Tobacco:
		return Unit{Long: "farm-bales", Short: "bale"}
	case MedicalSupplies:
		return Unit{Long: "crates", Short: "crate"}
	case Clothing, Firearms, HeavyMachinery:
		return Unit{Long: "pieces", Short: "pc"}
	case Lumber:
		return Unit{Long: "board-feet", Short: "bdft"}
	case Ammunition, Wine, Spirits:
		return Unit{Long: "cases", Short: "case"}
	case Coal:
		return Unit{Long: "tons", Short: "tn"}
	}
	return Unit{}
}

// Abbrev returns the compact display name used in narrow table columns.
func Abbrev(c Commodity) string {
	switch c {
	case Feed:
		return "feed"
	case Grain:
		return "grain"
	case Textiles:
		return "txtl."
	case Ammunition:
		return "amm."
	case Firearms:
		return "arms"
	case HeavyMachinery:
		return "mchnr."
	case MedicalSupplies:
		return "meds"
	case Potatoes:
		return "ptoe."
	case Sugar:
		return "sugr."
	case Salt:
		return "salt"
	case Tobacco:
		return "tbcco."
	case Lumber:
		return "lmbr."
	case Spirits:
		return "sprts."
	case Coal:
		return "coal"
	case Flour:
		return "flour"
	case Wine:
		return "wine"
	case SaltedMeat:
		return "sltdmt."
	case Cheese:
		return "chse."
	case Wool:
		return "wool"
	case Iron:
		return "iron"
	case Copper:
		return "cppr."
	case Nickel:
		return "nckl."
	case Gold:
		return "gold"
	case Clothing:
		return "clthg."
	}
	return c.String()
}

// deflationFactor converts 2024 dollars to 1860 dollars.
const deflationFactor = 100.0 / 3803.18

// Dollars2024To1860 deflates a 2024-dollar figure to its 1860 equivalent.
func Dollars2024To1860(dollars2024 float64) float64 {
	return deflationFactor * dollars2024
}

// BasePrice1860 returns a commodity's base unit price in 1860 dollars.
// The 2024 figures are per trading unit (see UnitOf).
func BasePrice1860(c Commodity) float64 {
	var dollars2024 float64
	switch c {
	case Grain:
		dollars2024 = 1.10 / 5.0 * 60 // 60lbs per bushel (if wheat)
	case Feed:
		dollars2024 = 0.85 * 1.10 / 5.0 * 32 // 32lbs per bushel (if oats)
	case Flour:
		dollars2024 = 2.75 / 5.0
	case Spirits: // 12 bottles per case
		dollars2024 = 10.50 * 12
	case Wine: // 12 bottles per case
		dollars2024 = 14.00 * 12
	case Sugar:
		dollars2024 = 3.0 / 2.0
	case Salt:
		dollars2024 = 1.75 / 1.625
	case SaltedMeat:
		dollars2024 = 4.595
	case Potatoes:
		dollars2024 = 0.935 * 60 // 60lbs per bushel
	case Tobacco:
		dollars2024 = 2.35 * 75 // per farm-bale (75lbs)
	case Cheese:
		dollars2024 = 5.731 * 55.0 // per pound * 55 pounds per wheel
	case Lumber:
		dollars2024 = 15.55 / 4.0 // 1x12x4ft board
	case HeavyMachinery:
		dollars2024 = 400 // price of a Vulcan plow
	case Ammunition:
		dollars2024 = 450.0 // 1000 rounds of .45 ACP
	case Firearms:
		dollars2024 = 600.0 // midrange handgun
	case Textiles:
		dollars2024 = 6.0 // canvas fabric
	case Wool:
		dollars2024 = 9.0 // skein of yarn
	case Clothing:
		dollars2024 = 30.0 // a shirt
	case Iron:
		dollars2024 = 0.23 // per 1000cm^3
	case Copper:
		dollars2024 = 80.0 // per 1000cm^3
	case Nickel:
		dollars2024 = 203.0 // per 1000cm^3
	case Gold:
		dollars2024 = 2653.70 // per oz
	case Coal:
		dollars2024 = 118.70 // per ton
	case MedicalSupplies:
		dollars2024 = 95.00 // a medkit crate
	}
	return Dollars2024To1860(dollars2024)
}

// UnitWeight returns the shipping weight of one trading unit.
func UnitWeight(c Commodity) Weight {
	switch c {
	case Wool:
		return FromLbs(1)
	case Textiles:
		return FromOz(2)
	case Iron:
		return FromLbs(17.35)
	case Copper:
		return FromLbs(19.75)
	case Nickel:
		return FromLbs(19.64)
	case Gold:
		return FromOz(1)
	case Flour, Cheese, SaltedMeat, Sugar, Salt:
		return FromLbs(1)
	case Feed: // assuming oats
		return FromLbs(32)
	case Grain, Potatoes: // both 60lbs per bushel
		return FromLbs(60)
	case Tobacco:
		return FromLbs(75) // defn of farm-bale
	case MedicalSupplies:
		return FromLbs(45)
	case Clothing:
		return FromLbs(1.5)
	case Firearms:
		return FromLbs(12)
	case HeavyMachinery:
		return FromLbs(130) // weight of a Vulcan plow
	case Lumber:
		return FromOz(50) // maple, 1 bd-ft at 0.6g/cm^3
	case Ammunition:
		return FromLbs(50)
	case Wine, Spirits: // 12 bottles per case, 750ml per bottle
		return FromLbs(20)
	case Coal:
		return FromTons(1)
	}
	return Weight{}
}

// FormatUnitPrice renders a deviated unit price the way the bill of sale
// prints it: cents for cheap goods, $k for expensive ones.
func FormatUnitPrice(c Commodity, unitPrice float64) string {
	base := BasePrice1860(c)
	short := UnitOf(c).Short
	switch {
	case base < 0.01:
		return fmt.Sprintf("%.0f¢/100%s", unitPrice*100*100, short)
	case base < 1.00:
		return fmt.Sprintf("%.0f¢/%s", unitPrice*100, short)
	case base > 1000.0:
		return fmt.Sprintf("$%.1fk/%s", unitPrice/1000.0, short)
	default:
		return fmt.Sprintf("$%.2f/%s", unitPrice, short)
	}
}
