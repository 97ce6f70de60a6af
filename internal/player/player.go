package player

import (
	"fmt"

	"github.com/talgya/silt-road/internal/commodity"
)

func errUnknownName(kind, name string) error {
	return fmt.Errorf("unknown %s %q", kind, name)
}

// Info identifies the player and their outfit.
type Info struct {
	PlayerName  string `json:"player_name"`
	CompanyName string `json:"company_name"`
}

// SeedInfo returns the default player identity.
func SeedInfo() Info {
	return Info{
		PlayerName:  "Homer S. McCoy",
		CompanyName: "McCoy & Sons Conveyance Co.",
	}
}

// SeedInventory returns the starting cargo.
func SeedInventory() commodity.Inventory {
	return commodity.Inventory{
		commodity.Feed:     3,
		commodity.Grain:    2,
		commodity.Textiles: 20,
	}
}
