package agent

import (
	"fmt"
	"strings"

	"github.com/aerowise/aerowise-go/internal/model"
)

// alertWindowDays is the length of the rolling incident window.
const alertWindowDays = 7

// alertRecommendation is appended whenever high-severity incidents exist in
// the window.
const alertRecommendation = "Recommendation: reinforce surveillance and wildlife dispersal in high-risk zones."

// alertAllClear is reported when the window holds no high-severity incident.
const alertAllClear = "No critical alert this week. Maintain routine vigilance."

// handleAlert reports incidents within the rolling window ending at the
// agent clock's current time, highlighting high-severity ones. The payload
// always carries the window contents and counts, even when empty.
func (a *Agent) handleAlert(string) (string, map[string]any) {
	now := a.now()
	weekAgo := now.AddDate(0, 0, -alertWindowDays)

	recent := []model.Incident{}
	high := []model.Incident{}
	for _, inc := range a.store.Incidents() {
		if inc.Timestamp.Before(weekAgo) {
			continue
		}
		recent = append(recent, inc)
		if inc.Severity == model.SeverityHigh {
			high = append(high, inc)
		}
	}

	var b strings.Builder
	b.WriteString("**Risk analysis for the past week**:\n\n")
	fmt.Fprintf(&b, "- %d incident(s) reported in the last %d days\n", len(recent), alertWindowDays)
	fmt.Fprintf(&b, "- including %d of **high severity**\n\n", len(high))

	if len(high) > 0 {
		b.WriteString("**ALERTS**:\n\n")
		for _, inc := range high {
			name := unknownSpeciesLabel
			if inc.SpeciesID != "" {
				name = a.speciesName(inc.SpeciesID)
			}
			fmt.Fprintf(&b, "- **%s**: %s (%s)\n",
				inc.Timestamp.Format(answerDateFormat), inc.Description, name)
		}
		b.WriteString("\n" + alertRecommendation)
	} else {
		b.WriteString(alertAllClear)
	}

	payload := map[string]any{
		"recent_incidents":    recent,
		"high_severity_count": len(high),
		"total_count":         len(recent),
	}

	return b.String(), payload
}
