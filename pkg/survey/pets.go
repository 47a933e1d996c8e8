package survey

import (
	"regexp"
	"strconv"
	"strings"
)

// Pet is one structured entry decoded from a free-text pet description.
type Pet struct {
	Species string // singular, lowercase: "dog", "cat"
	Breed   string // as written: "Golden Retriever"
	Size    string // normalized: "60lbs", empty if unknown
}

// Member is one structured entry decoded from a household-composition answer.
type Member struct {
	Role string // singular, lowercase: "partner", "kid", "adult"
	Age  string // as written, empty if unknown
}

var (
	speciesPattern = regexp.MustCompile(`(?i)\b(\d+)?\s*(dog|cat|bird|fish|rabbit|hamster|horse|chicken)s?\b`)
	breedPattern   = regexp.MustCompile(`(?i)^\s*([^()]+?)\s*(?:\(\s*(\d+)\s*(?:lbs?|pounds?)\s*\))?\s*$`)
	rolePattern    = regexp.MustCompile(`(?i)\b(\d+)?\s*(partner|spouse|husband|wife|adult|kid|child|son|daughter|toddler|baby|infant)s?(?:ren)?\b`)
	agePattern     = regexp.MustCompile(`\b(\d{1,2})\b`)
)

// ParsePets leniently decodes a free-text pet description such as
// "2 dogs — Golden Retriever (60lbs), Lab (70lbs)" into structured entries.
// Returns nil when nothing resembling a pet is found; callers should then
// fall back to raw-text capture.
func ParsePets(text string) []Pet {
	var pets []Pet
	for _, chunk := range splitEntries(text) {
		species, count, rest := findSpecies(chunk)
		if species == "" {
			continue
		}

		breeds := parseBreeds(rest)
		if len(breeds) == 0 {
			if count < 1 {
				count = 1
			}
			for i := 0; i < count; i++ {
				pets = append(pets, Pet{Species: species})
			}
			continue
		}
		for _, b := range breeds {
			b.Species = species
			pets = append(pets, b)
		}
	}
	return pets
}

// ParseHousehold leniently decodes a household-composition answer such as
// "Partner Alex, kids 5 and 8" into structured member entries. Returns nil
// when no recognizable members are found.
func ParseHousehold(text string) []Member {
	var members []Member
	chunks := strings.FieldsFunc(text, func(r rune) bool {
		return r == ';' || r == ',' || r == '\n'
	})
	for _, chunk := range chunks {
		m := rolePattern.FindStringSubmatch(chunk)
		if m == nil {
			continue
		}
		role := normalizeRole(strings.ToLower(m[2]))
		count := 1
		if m[1] != "" {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				count = n
			}
		}

		// Ages trailing the role mention, e.g. "kids 5 and 8"
		rest := chunk[strings.Index(chunk, m[0])+len(m[0]):]
		ages := agePattern.FindAllString(rest, -1)

		if len(ages) > count {
			count = len(ages)
		}
		for i := 0; i < count; i++ {
			member := Member{Role: role}
			if i < len(ages) {
				member.Age = ages[i]
			}
			members = append(members, member)
		}
	}
	return members
}

// splitEntries breaks free text into candidate entries on semicolons and
// newlines. Commas are kept intact since breed lists use them.
func splitEntries(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ';' || r == '\n'
	})
}

// findSpecies locates the first species mention in a chunk, returning the
// singular species, the leading count (0 when absent), and the remainder of
// the chunk after the mention.
func findSpecies(chunk string) (species string, count int, rest string) {
	loc := speciesPattern.FindStringSubmatchIndex(chunk)
	if loc == nil {
		return "", 0, ""
	}
	m := speciesPattern.FindStringSubmatch(chunk)
	if m[1] != "" {
		count, _ = strconv.Atoi(m[1])
	}
	return strings.ToLower(m[2]), count, chunk[loc[1]:]
}

// parseBreeds decodes the breed list that follows a species mention, e.g.
// "— Golden Retriever (60lbs), Lab (70lbs)".
func parseBreeds(rest string) []Pet {
	rest = strings.TrimSpace(rest)
	rest = strings.TrimLeft(rest, "—-–: ")
	if rest == "" {
		return nil
	}

	var pets []Pet
	for _, item := range strings.Split(rest, ",") {
		m := breedPattern.FindStringSubmatch(item)
		if m == nil || strings.TrimSpace(m[1]) == "" {
			continue
		}
		pet := Pet{Breed: strings.TrimSpace(m[1])}
		if m[2] != "" {
			pet.Size = m[2] + "lbs"
		}
		pets = append(pets, pet)
	}
	return pets
}

// normalizeRole collapses role synonyms to a canonical singular form.
func normalizeRole(role string) string {
	switch role {
	case "husband", "wife", "spouse":
		return "partner"
	case "child", "son", "daughter":
		return "kid"
	case "infant":
		return "baby"
	default:
		return role
	}
}
