package agent

import (
	"fmt"
	"strings"

	"github.com/aerowise/aerowise-go/internal/model"
)

// suggestedSpeciesLimit caps the suggestion list when no species name
// matches the question.
const suggestedSpeciesLimit = 5

// handleDescriptive answers species description questions. The first species
// in table order whose common or scientific name appears in the question
// wins; there is no best-match ranking.
func (a *Agent) handleDescriptive(question string) (string, map[string]any) {
	q := strings.ToLower(question)

	var target *model.Species
	species := a.store.Species()
	for i := range species {
		sp := &species[i]
		if strings.Contains(q, strings.ToLower(sp.CommonName)) ||
			strings.Contains(q, strings.ToLower(sp.ScientificName)) {
			target = sp
			break
		}
	}

	if target == nil {
		return a.suggestSpecies()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s** (*%s*)\n\n", target.CommonName, target.ScientificName)
	fmt.Fprintf(&b, "Description: %s\n\n", target.Description)
	if target.IsBird() {
		risk := string(target.CollisionRisk)
		if risk == "" {
			risk = "unassessed"
		}
		fmt.Fprintf(&b, "Collision risk: %s\n", risk)
	}
	status := string(target.ConservationStatus)
	if status == "" {
		status = "not evaluated"
	}
	fmt.Fprintf(&b, "Conservation status: %s\n", status)
	habitat := target.PreferredHabitat
	if habitat == "" {
		habitat = "variable"
	}
	fmt.Fprintf(&b, "Preferred habitat: %s", habitat)

	return b.String(), map[string]any{"species": *target}
}

// suggestSpecies lists the first species in table order when no name
// matched, so the user can retry with a known name.
func (a *Agent) suggestSpecies() (string, map[string]any) {
	sample := a.store.Species()
	if len(sample) > suggestedSpeciesLimit {
		sample = sample[:suggestedSpeciesLimit]
	}

	var b strings.Builder
	b.WriteString("I could not identify a specific species in your question. Here are some available species:\n\n")
	for _, sp := range sample {
		fmt.Fprintf(&b, "- **%s** (*%s*)\n", sp.CommonName, sp.ScientificName)
	}

	return b.String(), map[string]any{"available_species": sample}
}
