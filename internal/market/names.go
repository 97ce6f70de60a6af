package market

import (
	"math/rand"

	"github.com/talgya/silt-road/internal/namegen"
)

// marketName rolls a flavor name for a town's market. Short town names get
// place-based names; long ones get proprietor-based names to keep displays
// narrow.
func marketName(town string, rng *rand.Rand) string {
	if len(town) < 12 {
		return namegen.Choice(rng, []string{
			"Markets at " + town,
			town + " General Market",
			town + " Plaza",
			town + " Co-Op.",
			town + "'s Market",
			town + "'s Trade Goods",
			"Traders at " + town,
		})
	}
	if rng.Float64() < 0.5 {
		return "Trader " + namegen.FirstName(rng) + "'s"
	}
	return namegen.LastName(rng) + namegen.Choice(rng, []string{
		" & Son's",
		"'s Market",
		"'s Trade Goods",
	})
}
