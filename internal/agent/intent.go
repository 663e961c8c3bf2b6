package agent

import "strings"

// Intent is the inferred category of a question. It is a closed set; the
// dispatch table in agent.go covers every value including IntentUnknown.
type Intent string

const (
	IntentSpatial     Intent = "spatial"
	IntentDescriptive Intent = "descriptive"
	IntentAnalytical  Intent = "analytical"
	IntentSimilarity  Intent = "similarity"
	IntentAlert       Intent = "alert"
	IntentUnknown     Intent = "unknown"
)

// intentKeywords lists the keyword set for each intent in classification
// priority order. Several keywords overlap between categories ("risk" and
// "danger" appear in both analytical and alert); the first matching category
// wins, so such questions always classify as analytical. This ordering is
// load-bearing and must not be rearranged.
//
// Keywords carry both English and French forms since field teams ask in
// either language. Some entries are stems ("menac", "observé") so that
// inflected forms match through plain substring tests.
var intentKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{IntentSpatial, []string{
		"near", "près", "runway", "piste", "zone", "sector", "secteur",
		"observed", "observé", "where", "où",
	}},
	{IntentDescriptive, []string{
		"description", "describe", "décris", "what is", "qu'est-ce que", "c'est quoi",
	}},
	{IntentAnalytical, []string{
		"threatened", "menac", "danger", "protected", "protég", "conservation",
		"risk", "risque",
	}},
	{IntentSimilarity, []string{
		"similar", "resembles", "ressemble", "comparable", "close to", "proche",
	}},
	{IntentAlert, []string{
		"alert", "risk", "risque", "danger", "recommendation", "recommandation",
		"this week", "semaine",
	}},
}

// Classify maps a raw question to an intent by case-folded substring
// matching against the keyword sets, first match wins. Questions matching no
// set classify as IntentUnknown.
func Classify(question string) Intent {
	q := strings.ToLower(question)
	for _, set := range intentKeywords {
		for _, keyword := range set.keywords {
			if strings.Contains(q, keyword) {
				return set.intent
			}
		}
	}
	return IntentUnknown
}
