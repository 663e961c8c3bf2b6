package agent

import (
	"fmt"
	"strings"

	"github.com/aerowise/aerowise-go/internal/model"
)

// descriptionSnippetLen is the length of the description excerpt shown in
// high-risk species listings.
const descriptionSnippetLen = 80

// handleAnalytical answers conservation and risk questions through three
// mutually exclusive branches tested in order: threatened plants, high
// collision-risk birds, then a clarification prompt.
func (a *Agent) handleAnalytical(question string) (string, map[string]any) {
	q := strings.ToLower(question)

	mentionsPlant := strings.Contains(q, "plant") // also matches French "plante"
	mentionsThreat := strings.Contains(q, "threatened") ||
		strings.Contains(q, "menac") ||
		strings.Contains(q, "danger")

	switch {
	case mentionsPlant && mentionsThreat:
		return a.threatenedPlants()
	case strings.Contains(q, "bird") || strings.Contains(q, "oiseau") ||
		strings.Contains(q, "risk") || strings.Contains(q, "risque"):
		return a.highRiskBirds()
	default:
		answer := "I can help you analyze threatened or at-risk species. " +
			"Please narrow your search (threatened plants, high-risk birds, ...)."
		return answer, map[string]any{}
	}
}

// threatenedPlants reports the first threatened plant in detail plus the
// full filtered list in the payload.
func (a *Agent) threatenedPlants() (string, map[string]any) {
	var plants []model.Species
	for _, sp := range a.store.Species() {
		if sp.Class == model.ClassPlant && sp.IsThreatened() {
			plants = append(plants, sp)
		}
	}

	if len(plants) == 0 {
		return "No threatened plant identified in the current dataset.", map[string]any{}
	}

	plant := plants[0]
	var b strings.Builder
	b.WriteString("A plant species threatened by airport operations is:\n\n")
	fmt.Fprintf(&b, "**%s** (*%s*)\n\n", plant.CommonName, plant.ScientificName)
	fmt.Fprintf(&b, "%s\n\n", plant.Description)
	fmt.Fprintf(&b, "Conservation status: %s\n", plant.ConservationStatus)
	if plant.PreferredHabitat != "" {
		fmt.Fprintf(&b, "Habitat: %s\n", plant.PreferredHabitat)
	}
	b.WriteString("\n*This species is particularly sensitive to airport activities " +
		"such as intensive mowing and drainage.*")

	return b.String(), map[string]any{
		"species":               plant,
		"all_threatened_plants": plants,
	}
}

// highRiskBirds lists every bird with a high collision risk, with a
// truncated description excerpt per species.
func (a *Agent) highRiskBirds() (string, map[string]any) {
	var birds []model.Species
	for _, sp := range a.store.Species() {
		if sp.IsBird() && sp.CollisionRisk == model.RiskHigh {
			birds = append(birds, sp)
		}
	}

	var b strings.Builder
	b.WriteString("Bird species with a **high** collision risk:\n\n")
	for _, bird := range birds {
		fmt.Fprintf(&b, "- **%s** (*%s*) - %s...\n",
			bird.CommonName, bird.ScientificName, snippet(bird.Description, descriptionSnippetLen))
	}
	fmt.Fprintf(&b, "\n*Total: %d species to monitor with priority.*", len(birds))

	return b.String(), map[string]any{"high_risk_species": birds}
}

// snippet truncates s to at most n runes.
func snippet(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
