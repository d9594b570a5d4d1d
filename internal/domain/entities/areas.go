package entities

import "strings"

// FallbackArea is assigned when an address matches no known district
const FallbackArea = "Dubai"

// DubaiAreas is the controlled vocabulary of district names. Order matters:
// address extraction takes the first match, so an address mentioning two
// districts resolves to whichever appears earlier in this list. The same
// list drives per-area routing on the site, so additions must be mirrored
// there.
var DubaiAreas = []string{
	"Dubai Marina", "JBR", "Jumeirah Beach Residence", "JLT", "Jumeirah Lakes Towers",
	"Business Bay", "Downtown", "Downtown Dubai", "DIFC", "Jumeirah", "Jumeirah 1",
	"Jumeirah 2", "Jumeirah 3", "Al Barsha", "Deira", "Bur Dubai", "Karama",
	"Al Qusais", "Silicon Oasis", "Dubai Silicon Oasis", "International City",
	"Palm Jumeirah", "JVC", "Jumeirah Village Circle", "Sports City", "Motor City",
	"Dubai Hills", "Arabian Ranches", "Mirdif", "Al Nahda", "Discovery Gardens",
	"Tecom", "Sheikh Zayed Road", "Satwa", "Oud Metha", "Healthcare City",
	"Dubai Healthcare City", "Festival City", "Dubai Festival City", "Al Rashidiya",
	"Al Warqa", "Muhaisnah", "Dubai Investment Park", "Jebel Ali", "Marina",
	"The Greens", "The Views", "Emirates Hills", "Springs", "Meadows",
	"Al Safa", "Al Wasl", "Umm Suqeim", "Barsha Heights", "Media City",
	"Internet City", "Knowledge Village", "Academic City",
}

// ExtractArea resolves an address to a district by case-insensitive
// substring match, falling back to FallbackArea when nothing matches.
func ExtractArea(address string) string {
	if address == "" {
		return FallbackArea
	}

	lowered := strings.ToLower(address)
	for _, area := range DubaiAreas {
		if strings.Contains(lowered, strings.ToLower(area)) {
			return area
		}
	}

	return FallbackArea
}

// AreaSlug returns the URL-safe form of a district name
func AreaSlug(area string) string {
	return Slugify(area)
}
