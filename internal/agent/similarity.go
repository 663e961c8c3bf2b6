package agent

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aerowise/aerowise-go/internal/model"
)

// similarObservationLimit caps the list of same-species observations.
const similarObservationLimit = 5

// obsNumberRe extracts the first run of digits, optionally preceded by '#'.
var obsNumberRe = regexp.MustCompile(`#?(\d+)`)

// handleSimilarity finds observations of the same species as a referenced
// observation. The reference is an observation number in the question,
// zero-padded to three digits to form the id.
func (a *Agent) handleSimilarity(question string) (string, map[string]any) {
	match := obsNumberRe.FindStringSubmatch(question)
	if match == nil {
		answer := "To search for similar observations, please specify an observation number (e.g. #123)."
		return answer, nil
	}

	num := match[1]
	for len(num) < 3 {
		num = "0" + num
	}
	obsID := "obs_" + num

	target, ok := a.store.ObservationByID(obsID)
	if !ok {
		answer := fmt.Sprintf("Observation %s not found. Please check the identifier.", obsID)
		return answer, map[string]any{}
	}

	// Same species, self excluded, table order, no further sorting.
	var similar []model.Observation
	for _, obs := range a.store.Observations() {
		if obs.SpeciesID == target.SpeciesID && obs.ID != target.ID {
			similar = append(similar, obs)
			if len(similar) == similarObservationLimit {
				break
			}
		}
	}

	name := a.speciesName(target.SpeciesID)
	payload := map[string]any{
		"reference_observation": *target,
		"similar_observations":  similar,
	}

	if len(similar) == 0 {
		return fmt.Sprintf("No other observation of **%s** found in the dataset.", name), payload
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Observations similar to **%s** (**%s**):\n\n", target.ID, name)
	for _, obs := range similar {
		fmt.Fprintf(&b, "- **%s** - %s - %s (%d individuals)\n",
			obs.ID,
			a.zoneName(obs.ZoneID),
			obs.Timestamp.Format(answerDateFormat),
			obs.Count,
		)
	}

	return b.String(), payload
}
