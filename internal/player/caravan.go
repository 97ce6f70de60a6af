// Package player provides the player-owned state: cargo inventory,
// caravan, and identity.
package player

import (
	"github.com/talgya/silt-road/internal/commodity"
)

// DraftAnimal enumerates the animals that can pull a caravan.
type DraftAnimal uint8

const (
	Horse DraftAnimal = iota
	Ox
	Mule

	numDraftAnimals
)

var draftAnimalNames = [numDraftAnimals]string{
	Horse: "horse",
	Ox:    "ox",
	Mule:  "mule",
}

func (d DraftAnimal) String() string {
	if d >= numDraftAnimals {
		return "draft animal"
	}
	return draftAnimalNames[d]
}

// Pluralize returns the display name for a count of animals.
func (d DraftAnimal) Pluralize(qty int) string {
	if qty == 1 {
		return d.String()
	}
	switch d {
	case Horse:
		return "horses"
	case Ox:
		return "oxen"
	case Mule:
		return "mules"
	}
	return d.String()
}

// MarshalText serializes the animal as its name for JSON map keys.
func (d DraftAnimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses an animal name.
func (d *DraftAnimal) UnmarshalText(text []byte) error {
	for i, n := range draftAnimalNames {
		if n == string(text) {
			*d = DraftAnimal(i)
			return nil
		}
	}
	return errUnknownName("draft animal", string(text))
}

// Wagon enumerates the wagon kinds a caravan can include.
type Wagon uint8

const (
	// Conestoga is the classic covered wagon.
	Conestoga Wagon = iota
	// TeamWagon is the largest cargo wagon. Needs a lot of draft animals.
	TeamWagon
	// Flatbed is a medium-sized cargo wagon.
	Flatbed
	// Cart is a two-wheeled cart.
	Cart
	// ChuckWagon carries food and cooking equipment.
	ChuckWagon

	numWagons
)

var wagonNames = [numWagons]string{
	Conestoga:  "conestoga",
	TeamWagon:  "team wagon",
	Flatbed:    "flatbed",
	Cart:       "cart",
	ChuckWagon: "chuck wagon",
}

func (w Wagon) String() string {
	if w >= numWagons {
		return "wagon"
	}
	return wagonNames[w]
}

// Display returns the long-form wagon name.
func (w Wagon) Display() string {
	switch w {
	case Conestoga:
		return "Conestoga wagon"
	case TeamWagon:
		return "team wagon"
	case Flatbed:
		return "flatbed wagon"
	case Cart:
		return "cart"
	case ChuckWagon:
		return "chuck wagon"
	}
	return w.String()
}

// MarshalText serializes the wagon as its name for JSON map keys.
func (w Wagon) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalText parses a wagon name.
func (w *Wagon) UnmarshalText(text []byte) error {
	for i, n := range wagonNames {
		if n == string(text) {
			*w = Wagon(i)
			return nil
		}
	}
	return errUnknownName("wagon", string(text))
}

// CargoCapacity returns how much weight one wagon of this kind can haul.
func (w Wagon) CargoCapacity() commodity.Weight {
	switch w {
	case Conestoga:
		return commodity.FromTons(8)
	case TeamWagon:
		return commodity.FromTons(10)
	case Flatbed:
		return commodity.FromTons(4)
	case Cart:
		return commodity.FromTons(1)
	case ChuckWagon:
		return commodity.FromTons(1.5)
	}
	return commodity.Weight{}
}

// Caravan is the player's stable of draft animals and wagons.
type Caravan struct {
	DraftAnimals map[DraftAnimal]int `json:"draft_animals"`
	Wagons       map[Wagon]int       `json:"wagons"`
}

// SeedCaravan returns the starting caravan: a couple of horses, a team of
// oxen, and two wagons.
func SeedCaravan() *Caravan {
	return &Caravan{
		DraftAnimals: map[DraftAnimal]int{
			Horse: 2,
			Ox:    6,
		},
		Wagons: map[Wagon]int{
			Conestoga: 1,
			Flatbed:   1,
		},
	}
}

// CargoCapacity sums the capacity of every wagon in the caravan.
func (c *Caravan) CargoCapacity() commodity.Weight {
	var total commodity.Weight
	for kind, count := range c.Wagons {
		total = total.Plus(kind.CargoCapacity().Times(float64(count)))
	}
	return total
}

// Add merges purchased animals and wagons into the caravan.
func (c *Caravan) Add(animals map[DraftAnimal]int, wagons map[Wagon]int) {
	if c.DraftAnimals == nil {
		c.DraftAnimals = make(map[DraftAnimal]int)
	}
	if c.Wagons == nil {
		c.Wagons = make(map[Wagon]int)
	}
	for animal, qty := range animals {
		c.DraftAnimals[animal] += qty
	}
	for wagon, qty := range wagons {
		c.Wagons[wagon] += qty
	}
}
