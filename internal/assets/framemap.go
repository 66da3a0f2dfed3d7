package assets

// frameMap maps the original semantic sprite names to the keys of the
// 64x64 grid atlases.
//
//	fish_characters.png: 7 cols x 2 rows = fish_0 to fish_13
//	terrain_flora.png:   7 cols x 3 rows = terrain_0 to terrain_20
var frameMap = map[string]string{
	"char_child":       "fish_0",
	"char_adult":       "fish_1",
	"fish_blue":        "fish_2",
	"fish_yellow":      "fish_3",
	"fish_orange":      "fish_4",
	"fish_red":         "fish_5",
	"fish_green":       "fish_6",
	"fish_purple":      "fish_7",
	"fish_gray":        "fish_8",
	"fish_spotted":     "fish_9",
	"angelfish":        "fish_10",
	"fish_shark_small": "fish_11",
	"octopus_orange":   "fish_12",
	"crab_blue":        "fish_13",
	"seahorse_yellow":  "fish_13", // no dedicated tile
	"seahorse_green":   "fish_12", // no dedicated tile

	"palm_big":       "terrain_0",
	"palm_small":     "terrain_1",
	"bush_large":     "terrain_2",
	"bush_medium":    "terrain_3",
	"bush_small":     "terrain_4",
	"rock_cluster":   "terrain_5",
	"rock_small_1":   "terrain_6",
	"rock_small_2":   "terrain_7",
	"wave_shallow":   "terrain_8",
	"wave_deep":      "terrain_9",
	"sand_irregular": "terrain_10",
	"sand_rect":      "terrain_11",
	"log_large":      "terrain_12",
	"branch_1":       "terrain_13",
	"branch_2":       "terrain_14",
	"branch_3":       "terrain_15",
}

// MapFrameName returns the grid key for a semantic frame name.
// Names without a mapping are returned unchanged.
func MapFrameName(name string) string {
	if mapped, ok := frameMap[name]; ok {
		return mapped
	}
	return name
}
