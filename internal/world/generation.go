// World generation using layered simplex noise: towns settle on habitable
// ground, away from badlands and from each other.
package world

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/silt-road/internal/namegen"
)

// GenConfig holds world generation parameters.
type GenConfig struct {
	Towns      int     // Number of towns to place
	Seed       int64   // Random seed (0 = random)
	Habitable  float64 // Terrain threshold below which a site is badlands
	MinSpacing float64 // Minimum distance between towns in grid units
}

// DefaultGenConfig returns the layout parameters for a fresh save.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Towns:      5,
		Seed:       0,
		Habitable:  0.35,
		MinSpacing: 18,
	}
}

// Generate rolls a new overland map: a terrain field from two noise
// layers, then towns dropped on habitable sites with minimum spacing.
// The player starts in the first town placed.
func Generate(cfg GenConfig) *Map {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	terrainNoise := opensimplex.NewNormalized(seed)
	waterNoise := opensimplex.NewNormalized(seed + 1)
	rng := rand.New(rand.NewSource(seed + 2))

	m := &Map{}
	used := make(map[string]bool)

	// Rejection-sample town sites. The attempt cap keeps a hostile noise
	// field from looping forever; leftover towns go wherever fits.
	for attempts := 0; len(m.Towns) < cfg.Towns && attempts < 4000; attempts++ {
		x := rng.Intn(96) + 2
		y := rng.Intn(96) + 2

		habitability := terrainNoise.Eval2(float64(x)*0.035, float64(y)*0.035)*0.7 +
			waterNoise.Eval2(float64(x)*0.09, float64(y)*0.09)*0.3
		if habitability < cfg.Habitable && attempts < 3000 {
			continue
		}

		site := Town{X: x, Y: y}
		if tooClose(m.Towns, site, cfg.MinSpacing) {
			continue
		}

		name := namegen.TownName(rng)
		for used[name] {
			name = namegen.TownName(rng)
		}
		used[name] = true
		site.Name = name

		m.Towns = append(m.Towns, site)
	}

	if len(m.Towns) > 0 {
		m.PlayerLocation = m.Towns[0].Name
	}
	return m
}

func tooClose(placed []Town, site Town, minSpacing float64) bool {
	for _, t := range placed {
		if Distance(t, site) < minSpacing {
			return true
		}
	}
	return false
}
