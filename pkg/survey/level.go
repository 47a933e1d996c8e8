package survey

import (
	"regexp"
	"strings"
)

// Area is one of the nine fixed capability areas covered by the survey.
type Area string

// Capability areas, in report order.
const (
	AreaCleaning     Area = "Cleaning"
	AreaLaundry      Area = "Laundry"
	AreaCooking      Area = "Cooking"
	AreaPetCare      Area = "Pet Care"
	AreaChildcare    Area = "Childcare"
	AreaGrocery      Area = "Grocery"
	AreaVehicle      Area = "Vehicle"
	AreaOrganization Area = "Organization"
	AreaHouseMgmt    Area = "House Mgmt"
)

// Areas lists all capability areas in canonical order.
var Areas = []Area{
	AreaCleaning,
	AreaLaundry,
	AreaCooking,
	AreaPetCare,
	AreaChildcare,
	AreaGrocery,
	AreaVehicle,
	AreaOrganization,
	AreaHouseMgmt,
}

// Level is the ordinal support level chosen for a capability area.
type Level string

// Capability levels. LevelNA means the respondent opted out of the area
// ("don't have pets", "don't need cooking support").
const (
	LevelNone Level = ""
	LevelNA   Level = "N/A"
	Level1    Level = "L1"
	Level2    Level = "L2"
	Level3    Level = "L3"
)

var levelPattern = regexp.MustCompile(`^Level (\d)`)

// ParseLevel extracts a capability level from a choice label such as
// "Level 2: Full Household Support". Labels declining the area map to
// LevelNA; anything unrecognized maps to LevelNone.
func ParseLevel(label string) Level {
	if label == "" {
		return LevelNone
	}
	lower := strings.ToLower(label)
	if strings.Contains(lower, "don't have") || strings.Contains(lower, "don't need") {
		return LevelNA
	}
	if m := levelPattern.FindStringSubmatch(label); m != nil {
		return Level("L" + m[1])
	}
	return LevelNone
}

// Answered reports whether the level carries information (including an
// explicit opt-out).
func (l Level) Answered() bool {
	return l != LevelNone
}
