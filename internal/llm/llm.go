// Package llm implements the Claude-backed responder, an alternative to the
// rule-based agent. It builds a data context from the record store for each
// question and lets the model compose the answer.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
	gocache "github.com/patrickmn/go-cache"

	"github.com/aerowise/aerowise-go/internal/conf"
	"github.com/aerowise/aerowise-go/internal/datastore"
	"github.com/aerowise/aerowise-go/internal/logging"
	"github.com/aerowise/aerowise-go/internal/model"
)

// Error kinds distinguish the ways a responder call can fail.
const (
	KindMissingAPIKey = "missing-api-key"
	KindRequestFailed = "request-failed"
	KindEmptyResponse = "empty-response"
)

// ResponderError is the typed error returned by the responder. Kind is one of
// the Kind constants above.
type ResponderError struct {
	Kind string
	Err  error
}

func (e *ResponderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("llm responder: %s: %v", e.Kind, e.Err)
	}
	return "llm responder: " + e.Kind
}

func (e *ResponderError) Unwrap() error { return e.Err }

// maxContextEntries caps how many species blocks a single context carries.
const maxContextEntries = 3

// Responder answers questions through the Anthropic Messages API, feeding the
// model a context block extracted from the record store. Identical questions
// within the cache TTL are answered from cache without an API call.
type Responder struct {
	client       *anthropic.Client
	store        *datastore.Store
	log          *slog.Logger
	cache        *gocache.Cache
	systemPrompt string

	model       string
	temperature float32
	maxTokens   int
}

// Option adjusts responder construction.
type Option func(*options)

type options struct {
	httpClient *http.Client
}

// WithHTTPClient overrides the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// NewResponder builds a responder from the LLM settings. The API key is
// required; every other field has a configured default.
func NewResponder(store *datastore.Store, settings *conf.Settings, opts ...Option) (*Responder, error) {
	if settings.LLM.APIKey == "" {
		return nil, &ResponderError{Kind: KindMissingAPIKey}
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var clientOpts []anthropic.ClientOption
	if o.httpClient != nil {
		clientOpts = append(clientOpts, anthropic.WithHTTPClient(o.httpClient))
	}

	r := &Responder{
		client:      anthropic.NewClient(settings.LLM.APIKey, clientOpts...),
		store:       store,
		log:         logging.ForService("llm"),
		model:       settings.LLM.Model,
		temperature: settings.LLM.Temperature,
		maxTokens:   settings.LLM.MaxTokens,
	}
	if settings.LLM.CacheTTL > 0 {
		ttl := time.Duration(settings.LLM.CacheTTL) * time.Minute
		r.cache = gocache.New(ttl, 2*ttl)
	}
	r.systemPrompt = buildSystemPrompt(store)
	return r, nil
}

// Ask sends the question with its data context to the model and returns the
// answer text.
func (r *Responder) Ask(ctx context.Context, question string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(question))
	if r.cache != nil {
		if cached, ok := r.cache.Get(key); ok {
			r.log.Debug("llm cache hit", "question", question)
			return cached.(string), nil
		}
	}

	prompt := fmt.Sprintf(`AVAILABLE DATA CONTEXT:
%s

USER QUESTION:
%s

Answer the question using the context above and following your directives.`,
		r.buildContext(question), question)

	temp := r.temperature
	resp, err := r.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(r.model),
		MaxTokens:   r.maxTokens,
		Temperature: &temp,
		System:      r.systemPrompt,
		Messages: []anthropic.Message{
			{Role: anthropic.RoleUser, Content: []anthropic.MessageContent{
				{Type: "text", Text: &prompt},
			}},
		},
	})
	if err != nil {
		r.log.Error("messages request failed", "model", r.model, "error", err)
		return "", &ResponderError{Kind: KindRequestFailed, Err: err}
	}

	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != nil && *block.Text != "" {
			if r.cache != nil {
				r.cache.Set(key, *block.Text, gocache.DefaultExpiration)
			}
			return *block.Text, nil
		}
	}
	return "", &ResponderError{Kind: KindEmptyResponse}
}

// buildSystemPrompt describes the assistant role and enumerates the species
// the store holds, so the model knows the bounds of its data.
func buildSystemPrompt(store *datastore.Store) string {
	var b strings.Builder
	b.WriteString("You are AeroWise, an assistant specialized in airport biodiversity management.\n\n")
	fmt.Fprintf(&b, "You have access to a database of %d species:\n", len(store.Species()))
	for _, sp := range store.Species() {
		fmt.Fprintf(&b, "- %s (%s)\n", sp.ScientificName, sp.CommonName)
	}
	b.WriteString(`
For each species you have a description, conservation status, aviation
collision risk (birds only) and preferred habitat.

YOUR ROLE:
1. Answer questions about airport biodiversity.
2. Provide precise information grounded in your data.
3. Help manage wildlife strike risk.

DIRECTIVES:
- In-domain questions: answer clearly and professionally using the context.
- Ambiguous questions: ask politely for clarification and offer options.
- Off-topic questions: explain you are specialized in airport biodiversity
  and offer to help within that domain instead.

GOLDEN RULE:
If a question concerns biodiversity, ecology, birds, plants, wildlife strike
risk or airport environmental management, answer it. Otherwise redirect
politely to your domain.`)
	return b.String()
}

// buildContext extracts the store records relevant to the question: species
// whose names appear in it, then high-risk or threatened listings when the
// question carries the matching keywords, then a generic overview.
func (r *Responder) buildContext(question string) string {
	q := strings.ToLower(question)
	var parts []string

	for _, sp := range r.store.Species() {
		if strings.Contains(q, strings.ToLower(sp.ScientificName)) ||
			strings.Contains(q, strings.ToLower(sp.CommonName)) {
			parts = append(parts, speciesContext(&sp))
		}
	}

	if len(parts) == 0 && containsAny(q, "risk", "risque", "danger", "collision") {
		parts = append(parts, "HIGH RISK SPECIES:")
		n := 0
		for _, sp := range r.store.Species() {
			if sp.IsBird() && sp.CollisionRisk == model.RiskHigh {
				parts = append(parts, fmt.Sprintf("- %s (%s)", sp.ScientificName, sp.CommonName))
				if n++; n == maxContextEntries {
					break
				}
			}
		}
	}

	if len(parts) == 0 && containsAny(q, "menac", "protég", "threatened", "protected", "conservation", "vulnerable") {
		parts = append(parts, "THREATENED SPECIES:")
		n := 0
		for _, sp := range r.store.Species() {
			if sp.IsThreatened() {
				parts = append(parts, fmt.Sprintf("- %s (%s): %s", sp.ScientificName, sp.CommonName, sp.Description))
				if n++; n == maxContextEntries {
					break
				}
			}
		}
	}

	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf(
			"AVAILABLE DATA: full records for %d species (birds and plants), %d observations and %d incidents.",
			len(r.store.Species()), len(r.store.Observations()), len(r.store.Incidents())))
	}

	return strings.Join(parts, "\n")
}

func speciesContext(sp *model.Species) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SPECIES: %s (%s)\n", sp.ScientificName, sp.CommonName)
	fmt.Fprintf(&b, "Description: %s\n", sp.Description)
	fmt.Fprintf(&b, "Conservation status: %s\n", orNA(string(sp.ConservationStatus)))
	if sp.IsBird() {
		fmt.Fprintf(&b, "Aviation risk: %s\n", orNA(string(sp.CollisionRisk)))
	}
	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func containsAny(s string, substrs ...string) bool {
	for _, substr := range substrs {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
