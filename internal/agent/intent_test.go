package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		question string
		want     Intent
	}{
		{"spatial english", "Which birds were observed near runway 2?", IntentSpatial},
		{"spatial french", "Quels oiseaux ont été observés près de la piste 2 ?", IntentSpatial},
		{"spatial zone keyword", "What lives in the wetland zone?", IntentSpatial},
		{"descriptive english", "Give me the description of the Lapwing", IntentDescriptive},
		{"descriptive what is", "What is a Herring Gull?", IntentDescriptive},
		{"descriptive french", "Décris le Vanneau huppé", IntentDescriptive},
		{"analytical threatened", "Which plants are threatened by the airport?", IntentAnalytical},
		{"analytical french", "Quelles espèces sont menacées ?", IntentAnalytical},
		{"similarity english", "Show me observations similar to #5", IntentSimilarity},
		{"similarity french no digits", "Observations similaires", IntentSimilarity},
		{"alert english", "Any alerts for the coming days?", IntentAlert},
		{"alert this week", "Anything notable this week?", IntentAlert},
		{"alert french", "Des alertes cette semaine ?", IntentAlert},
		{"unknown", "Tell me a joke", IntentUnknown},
		{"empty", "", IntentUnknown},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Classify(tt.question))
		})
	}
}

// Overlapping keywords must resolve by priority order: analytical comes
// before alert, so questions carrying keywords from both always classify as
// analytical.
func TestClassifyPriorityOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		question string
		want     Intent
	}{
		{"risk is analytical first", "What is the collision risk situation?", IntentDescriptive},
		{"risk without earlier keywords", "High collision risk species?", IntentAnalytical},
		{"danger is analytical", "Any danger for aircraft?", IntentAnalytical},
		{"analytical beats alert keyword", "Are protected species involved this week?", IntentAnalytical},
		{"french risks beats semaine", "Y a-t-il des risques particuliers cette semaine ?", IntentAnalytical},
		{"spatial beats everything", "Threatened species observed near the runway?", IntentSpatial},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Classify(tt.question))
		})
	}
}
