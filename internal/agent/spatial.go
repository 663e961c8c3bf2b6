package agent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aerowise/aerowise-go/internal/model"
)

const answerDateFormat = "02/01/2006"

// recentObservationLimit caps the fallback list when no zone phrase matches.
const recentObservationLimit = 5

// zonePhrases maps question phrases to zone ids, checked in order. Every
// substring in a rule must be present for the rule to fire. English and
// French phrasings map to the same zones.
var zonePhrases = []struct {
	zoneID   string
	required []string
}{
	{"zone_002", []string{"runway 2"}},
	{"zone_002", []string{"runway two"}},
	{"zone_002", []string{"piste 2"}},
	{"zone_002", []string{"piste deux"}},
	{"zone_001", []string{"runway 1"}},
	{"zone_001", []string{"runway one"}},
	{"zone_001", []string{"piste 1"}},
	{"zone_001", []string{"piste un"}},
	{"zone_003", []string{"northern grassland"}},
	{"zone_003", []string{"prairie", "nord"}},
	{"zone_004", []string{"eastern wetland"}},
	{"zone_004", []string{"zone humide", "est"}},
}

// resolveZonePhrase returns the first zone whose phrase rule fully matches
// the lowercased question, or "" when none does.
func resolveZonePhrase(q string) string {
	for _, rule := range zonePhrases {
		matched := true
		for _, substr := range rule.required {
			if !strings.Contains(q, substr) {
				matched = false
				break
			}
		}
		if matched {
			return rule.zoneID
		}
	}
	return ""
}

// handleSpatial answers location questions: birds observed in a resolved
// zone, or the most recent observations system-wide when no zone phrase
// matches.
func (a *Agent) handleSpatial(question string) (string, map[string]any) {
	q := strings.ToLower(question)

	zoneID := resolveZonePhrase(q)
	if zoneID == "" {
		return a.recentObservations()
	}

	zoneName := a.zoneName(zoneID)

	var obsInZone []model.Observation
	seen := make(map[string]bool)
	for _, obs := range a.store.Observations() {
		if obs.ZoneID == zoneID {
			obsInZone = append(obsInZone, obs)
			seen[obs.SpeciesID] = true
		}
	}

	// Restrict to bird species, in species table order.
	var birds []model.Species
	for _, sp := range a.store.Species() {
		if seen[sp.ID] && sp.IsBird() {
			birds = append(birds, sp)
		}
	}

	payload := map[string]any{
		"species": birds,
	}
	if zone, ok := a.store.ZoneByID(zoneID); ok {
		payload["zone"] = zone
	}

	if len(birds) == 0 {
		payload["species"] = []model.Species{}
		return fmt.Sprintf("No bird observed in zone **%s** recently.", zoneName), payload
	}

	var b strings.Builder
	fmt.Fprintf(&b, "In zone **%s**, the following birds have been observed recently:\n\n", zoneName)
	for _, bird := range birds {
		fmt.Fprintf(&b, "- **%s** (%s)\n", bird.CommonName, bird.ScientificName)
	}
	fmt.Fprintf(&b, "\n*Total: %d species observed*", len(birds))

	payload["observation_count"] = len(obsInZone)
	return b.String(), payload
}

// recentObservations is the no-zone fallback: the most recent observations
// across the whole airfield, ties broken by load order.
func (a *Agent) recentObservations() (string, map[string]any) {
	recent := make([]model.Observation, len(a.store.Observations()))
	copy(recent, a.store.Observations())
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Timestamp.After(recent[j].Timestamp)
	})
	if len(recent) > recentObservationLimit {
		recent = recent[:recentObservationLimit]
	}

	var b strings.Builder
	b.WriteString("I could not identify a specific zone. Here are the most recent observations:\n\n")
	for _, obs := range recent {
		fmt.Fprintf(&b, "- **%s** (%d individuals) - %s - %s\n",
			a.speciesName(obs.SpeciesID),
			obs.Count,
			a.zoneName(obs.ZoneID),
			obs.Timestamp.Format(answerDateFormat),
		)
	}

	return b.String(), map[string]any{"observations": recent}
}
