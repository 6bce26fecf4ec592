package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"relman/api"
)

func TestPersonSummary(t *testing.T) {
	assert.Equal(t, "30 years • Lisbon", personSummary(api.Person{Age: 30, City: "Lisbon"}))
	assert.Equal(t, "1 year • Not provided", personSummary(api.Person{Age: 1}))
	assert.Equal(t, "0 years • Not provided", personSummary(api.Person{City: "  "}))
}

func TestJoinOrNone(t *testing.T) {
	assert.Equal(t, "None", joinOrNone(nil))
	assert.Equal(t, "music, chess", joinOrNone([]string{"music", "chess"}))
}

func TestStatsLabels(t *testing.T) {
	assert.Equal(t, "0.25", formatDensity(0.25))
	assert.Equal(t, "0", formatDensity(0))
	assert.Equal(t, "music (3), chess (1)", topInterestsLabel([]api.InterestCount{
		{Interest: "music", Count: 3},
		{Interest: "chess", Count: 1},
	}))
	assert.Equal(t, "", topInterestsLabel(nil))
	assert.Equal(t, "Porto (2)", topCitiesLabel([]api.CityCount{{City: "Porto", Count: 2}}))
}

func TestSearchSummary(t *testing.T) {
	assert.Equal(t, `No one found with the interest "go".`, searchSummary("go", 0))
	assert.Equal(t, `1 person found with "go":`, searchSummary("go", 1))
	assert.Equal(t, `4 people found with "go":`, searchSummary("go", 4))
}

func TestPathLabel(t *testing.T) {
	assert.Equal(t, "No path.", pathLabel(api.Path{}))
	assert.Equal(t, "Ana → Bruno (1 degree of separation)",
		pathLabel(api.Path{Names: []string{"Ana", "Bruno"}, Degrees: 1}))
	assert.Equal(t, "Ana → Bruno → Carla (2 degrees of separation)",
		pathLabel(api.Path{Names: []string{"Ana", "Bruno", "Carla"}, Degrees: 2}))
}

func TestParseID(t *testing.T) {
	assert.Equal(t, int64(12), parseID(" 12 "))
	assert.Equal(t, int64(0), parseID(""))
	assert.Equal(t, int64(0), parseID("abc"))
	assert.Equal(t, int64(0), parseID("-3"))
}

func TestLevelColor(t *testing.T) {
	assert.Equal(t, "var(--md-sys-color-error)", levelColor("error"))
	assert.Equal(t, "#FBC02D", levelColor("WARN"))
	assert.Equal(t, "var(--md-sys-color-on-surface)", levelColor("info"))
}

func TestSimilarNote(t *testing.T) {
	s := api.SimilarPerson{CommonInterests: []string{"music"}}
	assert.Equal(t, "Common interests: music", similarNote(s))

	s.Score = 2
	assert.Equal(t, "Common interests: music (score 2)", similarNote(s))
}
