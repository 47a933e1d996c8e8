package survey

import (
	"fmt"
	"strings"

	"github.com/hearthops/intake/pkg/constants"
)

// FormatCapabilities renders answered capability levels as a single line,
// in canonical area order: "Cleaning: L2, Laundry: L1". Opted-out areas are
// omitted.
func FormatCapabilities(caps map[Area]Level) string {
	var parts []string
	for _, area := range Areas {
		lvl := caps[area]
		if !lvl.Answered() || lvl == LevelNA {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", area, lvl))
	}
	return strings.Join(parts, ", ")
}

// FormatPets renders structured pet entries as a human-readable enumeration:
// "2 dogs — Golden Retriever (60lbs), Lab (70lbs)". Species groups are
// separated by semicolons.
func FormatPets(pets []Pet) string {
	type group struct {
		species string
		entries []Pet
	}
	var groups []*group
	index := make(map[string]*group)

	for _, p := range pets {
		g, ok := index[p.Species]
		if !ok {
			g = &group{species: p.Species}
			index[p.Species] = g
			groups = append(groups, g)
		}
		g.entries = append(g.entries, p)
	}

	var parts []string
	for _, g := range groups {
		head := fmt.Sprintf("%d %s", len(g.entries), pluralize(g.species, len(g.entries)))

		var breeds []string
		for _, p := range g.entries {
			if p.Breed == "" {
				continue
			}
			if p.Size != "" {
				breeds = append(breeds, fmt.Sprintf("%s (%s)", p.Breed, p.Size))
			} else {
				breeds = append(breeds, p.Breed)
			}
		}
		if len(breeds) > 0 {
			head += " — " + strings.Join(breeds, ", ")
		}
		parts = append(parts, head)
	}
	return strings.Join(parts, "; ")
}

// FormatHousehold renders structured member entries:
// "1 partner, 2 kids (5, 8)".
func FormatHousehold(members []Member) string {
	type group struct {
		role string
		ages []string
		n    int
	}
	var groups []*group
	index := make(map[string]*group)

	for _, m := range members {
		g, ok := index[m.Role]
		if !ok {
			g = &group{role: m.Role}
			index[m.Role] = g
			groups = append(groups, g)
		}
		g.n++
		if m.Age != "" {
			g.ages = append(g.ages, m.Age)
		}
	}

	var parts []string
	for _, g := range groups {
		part := fmt.Sprintf("%d %s", g.n, pluralize(g.role, g.n))
		if len(g.ages) > 0 {
			part += fmt.Sprintf(" (%s)", strings.Join(g.ages, ", "))
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}

// FormatProfile renders the onboarding-profile field body: structured groups
// first, then the accumulated catch-all notes.
func FormatProfile(p Profile) string {
	var lines []string
	if len(p.Household) > 0 {
		lines = append(lines, "Household: "+FormatHousehold(p.Household))
	}
	if len(p.Pets) > 0 {
		lines = append(lines, "Pets: "+FormatPets(p.Pets))
	}
	if p.Notes != "" {
		lines = append(lines, p.Notes)
	}
	return strings.Join(lines, "\n")
}

// Truncate caps a rendered value at the record store's rich-text limit.
// Returns the (possibly shortened) value and whether truncation occurred.
// Truncation never fails a run; callers record a warning instead.
func Truncate(s string) (string, bool) {
	runes := []rune(s)
	if len(runes) <= constants.MaxRichTextLength {
		return s, false
	}
	return string(runes[:constants.MaxRichTextLength]), true
}

// pluralize naively pluralizes a species or role name.
func pluralize(word string, n int) string {
	if n == 1 || word == "" || word == "fish" {
		return word
	}
	return word + "s"
}
