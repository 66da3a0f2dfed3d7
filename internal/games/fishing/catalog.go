package fishing

import "github.com/vovakirdan/pixel-island/internal/scene"

// Tier is a rarity bucket of the catch catalog.
type Tier int

const (
	Common Tier = iota
	Uncommon
	Rare
	Epic
)

func (t Tier) String() string {
	switch t {
	case Common:
		return "Common"
	case Uncommon:
		return "Uncommon"
	case Rare:
		return "Rare"
	case Epic:
		return "Epic"
	default:
		return "Unknown"
	}
}

// Fish is one catchable species. ID doubles as the sprite frame name and
// the progress collection key.
type Fish struct {
	ID   string
	Name string
	Tier Tier
}

// Catalog lists every fish that can be caught.
var Catalog = []Fish{
	{ID: "fish_blue", Name: "Blue Fish", Tier: Common},
	{ID: "fish_yellow", Name: "Yellow Fish", Tier: Common},
	{ID: "fish_orange", Name: "Orange Fish", Tier: Common},
	{ID: "fish_red", Name: "Red Fish", Tier: Uncommon},
	{ID: "fish_green", Name: "Green Fish", Tier: Uncommon},
	{ID: "fish_purple", Name: "Purple Fish", Tier: Rare},
	{ID: "fish_gray", Name: "Gray Fish", Tier: Uncommon},
	{ID: "fish_spotted", Name: "Spotted Fish", Tier: Rare},
	{ID: "angelfish", Name: "Angelfish", Tier: Rare},
	{ID: "fish_shark_small", Name: "Small Shark", Tier: Epic},
	{ID: "octopus_orange", Name: "Orange Octopus", Tier: Epic},
	{ID: "crab_blue", Name: "Blue Crab", Tier: Uncommon},
}

// ByTier returns the catalog entries of one tier, in catalog order.
func ByTier(t Tier) []Fish {
	var out []Fish
	for _, f := range Catalog {
		if f.Tier == t {
			out = append(out, f)
		}
	}
	return out
}

// TierFor maps a roll in [0, 1) onto the 50/30/15/5 rarity split.
func TierFor(r float64) Tier {
	switch {
	case r < 0.5:
		return Common
	case r < 0.8:
		return Uncommon
	case r < 0.95:
		return Rare
	default:
		return Epic
	}
}

// SelectCatch rolls a tier, then picks a fish of that tier uniformly.
func SelectCatch(rnd scene.Rand) Fish {
	pool := ByTier(TierFor(rnd.Float64()))
	return pool[rnd.IntN(len(pool))]
}
