// Package world provides the overland map: towns, their positions, and
// the player's location.
package world

import (
	"fmt"
	"math"
)

// Town is a map pin: a name and coordinates on the 100x100 overland grid.
type Town struct {
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// Map holds every town and where the player currently is.
type Map struct {
	PlayerLocation string `json:"player_location"`
	Towns          []Town `json:"towns"`
}

// Town looks a town up by name.
func (m *Map) Town(name string) (Town, bool) {
	for _, t := range m.Towns {
		if t.Name == name {
			return t, true
		}
	}
	return Town{}, false
}

// SetPlayerLocation moves the player to a town on the map.
func (m *Map) SetPlayerLocation(town string) error {
	if _, ok := m.Town(town); !ok {
		return fmt.Errorf("no town %q on the map", town)
	}
	m.PlayerLocation = town
	return nil
}

// Distance returns the straight-line distance between two towns in grid
// units.
func Distance(a, b Town) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// TravelDays converts a map distance to whole days on the trail. A loaded
// caravan covers about 15 grid units a day; every leg takes at least one.
func TravelDays(dist float64) int {
	days := int(math.Ceil(dist / 15.0))
	if days < 1 {
		days = 1
	}
	return days
}

// Seed returns the classic five-town layout the game shipped with.
func Seed() *Map {
	return &Map{
		PlayerLocation: "Rattsville",
		Towns: []Town{
			{Name: "Rattsville", X: 50, Y: 50},
			{Name: "Fodder Crick", X: 7, Y: 30},
			{Name: "Damnation", X: 50, Y: 90},
			{Name: "Cornucopia Falls", X: 15, Y: 70},
			{Name: "Langston", X: 95, Y: 20},
		},
	}
}
