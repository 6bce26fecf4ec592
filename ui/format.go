package ui

import (
	"fmt"
	"strconv"
	"strings"

	"relman/api"
)

const noCity = "Not provided"

func cityOrDefault(city string) string {
	if strings.TrimSpace(city) == "" {
		return noCity
	}
	return city
}

func ageLabel(age int) string {
	if age == 1 {
		return "1 year"
	}
	return strconv.Itoa(age) + " years"
}

// personSummary is the "30 years • Lisbon" line under a name.
func personSummary(p api.Person) string {
	return ageLabel(p.Age) + " • " + cityOrDefault(p.City)
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}

func formatDensity(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}

func topInterestsLabel(items []api.InterestCount) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s (%d)", it.Interest, it.Count))
	}
	return strings.Join(parts, ", ")
}

func topCitiesLabel(items []api.CityCount) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s (%d)", it.City, it.Count))
	}
	return strings.Join(parts, ", ")
}

func searchSummary(interest string, n int) string {
	if n == 0 {
		return fmt.Sprintf("No one found with the interest %q.", interest)
	}
	if n == 1 {
		return fmt.Sprintf("1 person found with %q:", interest)
	}
	return fmt.Sprintf("%d people found with %q:", n, interest)
}

func pathLabel(p api.Path) string {
	if len(p.Names) == 0 {
		return "No path."
	}
	degrees := "degrees"
	if p.Degrees == 1 {
		degrees = "degree"
	}
	return fmt.Sprintf("%s (%d %s of separation)", strings.Join(p.Names, " → "), p.Degrees, degrees)
}

func levelColor(level string) string {
	switch strings.ToUpper(level) {
	case "ERROR":
		return "var(--md-sys-color-error)"
	case "WARN":
		return "#FBC02D"
	default:
		return "var(--md-sys-color-on-surface)"
	}
}

// parseID reads a person id from a select value; anything unusable is 0.
func parseID(s string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
