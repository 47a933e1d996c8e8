package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePetsWithBreedsAndSizes(t *testing.T) {
	pets := ParsePets("2 dogs — Golden Retriever (60lbs), Lab (70lbs)")
	require.Len(t, pets, 2)

	assert.Equal(t, Pet{Species: "dog", Breed: "Golden Retriever", Size: "60lbs"}, pets[0])
	assert.Equal(t, Pet{Species: "dog", Breed: "Lab", Size: "70lbs"}, pets[1])
}

func TestParsePetsCountOnly(t *testing.T) {
	pets := ParsePets("We have 3 cats")
	require.Len(t, pets, 3)
	for _, p := range pets {
		assert.Equal(t, "cat", p.Species)
		assert.Empty(t, p.Breed)
	}
}

func TestParsePetsMultipleSpecies(t *testing.T) {
	pets := ParsePets("1 dog — Poodle (40 lbs); 2 birds")
	require.Len(t, pets, 3)
	assert.Equal(t, Pet{Species: "dog", Breed: "Poodle", Size: "40lbs"}, pets[0])
	assert.Equal(t, "bird", pets[1].Species)
	assert.Equal(t, "bird", pets[2].Species)
}

func TestParsePetsUnparseable(t *testing.T) {
	assert.Nil(t, ParsePets("no pets here, thanks!"))
	assert.Nil(t, ParsePets(""))
}

// TestPetsRoundTrip checks that a formatted pet list re-parses to the same
// structured entries: render and parse are inverses for well-formed data.
func TestPetsRoundTrip(t *testing.T) {
	original := []Pet{
		{Species: "dog", Breed: "Golden Retriever", Size: "60lbs"},
		{Species: "dog", Breed: "Lab", Size: "70lbs"},
	}

	rendered := FormatPets(original)
	assert.Equal(t, "2 dogs — Golden Retriever (60lbs), Lab (70lbs)", rendered)

	reparsed := ParsePets(rendered)
	assert.Equal(t, original, reparsed)
}

func TestFormatPetsWithoutBreeds(t *testing.T) {
	assert.Equal(t, "1 cat", FormatPets([]Pet{{Species: "cat"}}))
	assert.Equal(t, "2 fish", FormatPets([]Pet{{Species: "fish"}, {Species: "fish"}}))
}

func TestParseHousehold(t *testing.T) {
	members := ParseHousehold("Partner Alex, kids 5 and 8")
	require.Len(t, members, 3)
	assert.Equal(t, Member{Role: "partner"}, members[0])
	assert.Equal(t, Member{Role: "kid", Age: "5"}, members[1])
	assert.Equal(t, Member{Role: "kid", Age: "8"}, members[2])
}

func TestParseHouseholdSynonyms(t *testing.T) {
	members := ParseHousehold("husband; 1 daughter 4")
	require.Len(t, members, 2)
	assert.Equal(t, "partner", members[0].Role)
	assert.Equal(t, Member{Role: "kid", Age: "4"}, members[1])
}

func TestParseHouseholdUnparseable(t *testing.T) {
	assert.Nil(t, ParseHousehold("just me and my plants"))
}

func TestFormatHousehold(t *testing.T) {
	got := FormatHousehold([]Member{
		{Role: "partner"},
		{Role: "kid", Age: "5"},
		{Role: "kid", Age: "8"},
	})
	assert.Equal(t, "1 partner, 2 kids (5, 8)", got)
}
