package matching

import "strings"

// Regional equivalence groups: territories in the same group are considered
// the same sales region.
var territoryGroups = [][]string{
	{"north america", "na", "usa", "us", "united states", "canada"},
	{"europe", "eu", "emea"},
	{"asia pacific", "apac", "asia"},
	{"latin america", "latam", "south america"},
	{"middle east", "mea", "africa"},
}

// TerritoriesOverlap reports whether two territory labels name the same sales
// region, by exact match or regional equivalence.
func TerritoriesOverlap(a, b string) bool {
	ta := strings.ToLower(strings.TrimSpace(a))
	tb := strings.ToLower(strings.TrimSpace(b))
	if ta == "" || tb == "" {
		return false
	}
	if ta == tb {
		return true
	}
	for _, group := range territoryGroups {
		if containsTerritory(group, ta) && containsTerritory(group, tb) {
			return true
		}
	}
	return false
}

func containsTerritory(group []string, t string) bool {
	for _, g := range group {
		if g == t {
			return true
		}
	}
	return false
}
