package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerowise/aerowise-go/internal/conf"
	"github.com/aerowise/aerowise-go/internal/datastore"
)

const messagesEndpoint = "https://api.anthropic.com/v1/messages"

func setupHTTPMock(t *testing.T) {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
}

func testSettings() *conf.Settings {
	s := &conf.Settings{}
	s.LLM.Enabled = true
	s.LLM.Model = "claude-3-5-haiku-20241022"
	s.LLM.APIKey = "test-key"
	s.LLM.Temperature = 0.3
	s.LLM.MaxTokens = 1000
	s.LLM.CacheTTL = 15
	return s
}

func testResponder(t *testing.T, settings *conf.Settings) *Responder {
	t.Helper()
	store, err := datastore.Load(datastore.EmbeddedDataset())
	require.NoError(t, err)
	r, err := NewResponder(store, settings, WithHTTPClient(http.DefaultClient))
	require.NoError(t, err)
	return r
}

func messagesSuccessResponse(text string) string {
	return `{
  "id": "msg_test",
  "type": "message",
  "role": "assistant",
  "model": "claude-3-5-haiku-20241022",
  "content": [{"type": "text", "text": ` + jsonString(text) + `}],
  "stop_reason": "end_turn",
  "usage": {"input_tokens": 10, "output_tokens": 20}
}`
}

func jsonString(s string) string {
	out := `"`
	for _, r := range s {
		switch r {
		case '"':
			out += `\"`
		case '\\':
			out += `\\`
		case '\n':
			out += `\n`
		default:
			out += string(r)
		}
	}
	return out + `"`
}

func TestNewResponderRequiresAPIKey(t *testing.T) {
	settings := testSettings()
	settings.LLM.APIKey = ""

	store, err := datastore.Load(datastore.EmbeddedDataset())
	require.NoError(t, err)

	_, err = NewResponder(store, settings)
	var rerr *ResponderError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, KindMissingAPIKey, rerr.Kind)
}

func TestAskSuccess(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodPost, messagesEndpoint,
		httpmock.NewStringResponder(http.StatusOK,
			messagesSuccessResponse("The Lapwing is a medium-sized wader.")))

	r := testResponder(t, testSettings())
	answer, err := r.Ask(context.Background(), "Tell me about the Lapwing")

	require.NoError(t, err)
	assert.Equal(t, "The Lapwing is a medium-sized wader.", answer)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestAskCachesIdenticalQuestions(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodPost, messagesEndpoint,
		httpmock.NewStringResponder(http.StatusOK, messagesSuccessResponse("cached answer")))

	r := testResponder(t, testSettings())
	ctx := context.Background()

	first, err := r.Ask(ctx, "Which species are threatened?")
	require.NoError(t, err)
	second, err := r.Ask(ctx, "  which species are THREATENED?  ")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, httpmock.GetTotalCallCount(), "second ask must come from cache")
}

func TestAskCacheDisabled(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodPost, messagesEndpoint,
		httpmock.NewStringResponder(http.StatusOK, messagesSuccessResponse("answer")))

	settings := testSettings()
	settings.LLM.CacheTTL = 0

	r := testResponder(t, settings)
	ctx := context.Background()
	_, err := r.Ask(ctx, "same question")
	require.NoError(t, err)
	_, err = r.Ask(ctx, "same question")
	require.NoError(t, err)

	assert.Equal(t, 2, httpmock.GetTotalCallCount())
}

func TestAskRequestFailed(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodPost, messagesEndpoint,
		httpmock.NewStringResponder(http.StatusInternalServerError,
			`{"type": "error", "error": {"type": "api_error", "message": "overloaded"}}`))

	r := testResponder(t, testSettings())
	_, err := r.Ask(context.Background(), "Any risks this week?")

	var rerr *ResponderError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, KindRequestFailed, rerr.Kind)
	assert.NotNil(t, errors.Unwrap(rerr))
}

func TestAskEmptyResponse(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodPost, messagesEndpoint,
		httpmock.NewStringResponder(http.StatusOK, `{
  "id": "msg_test",
  "type": "message",
  "role": "assistant",
  "model": "claude-3-5-haiku-20241022",
  "content": [],
  "stop_reason": "end_turn",
  "usage": {"input_tokens": 10, "output_tokens": 0}
}`))

	r := testResponder(t, testSettings())
	_, err := r.Ask(context.Background(), "Describe the Herring Gull")

	var rerr *ResponderError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, KindEmptyResponse, rerr.Kind)
}

func TestBuildContextSpeciesMention(t *testing.T) {
	r := testResponder(t, testSettings())

	ctx := r.buildContext("Tell me about Vanellus vanellus please")
	assert.Contains(t, ctx, "SPECIES: Vanellus vanellus")
	assert.Contains(t, ctx, "Conservation status: NT")
	assert.Contains(t, ctx, "Aviation risk: medium")
}

func TestBuildContextRiskKeywords(t *testing.T) {
	r := testResponder(t, testSettings())

	ctx := r.buildContext("Quels sont les risques de collision ?")
	assert.Contains(t, ctx, "HIGH RISK SPECIES:")
	assert.Contains(t, ctx, "Larus argentatus")
}

func TestBuildContextThreatenedKeywords(t *testing.T) {
	r := testResponder(t, testSettings())

	ctx := r.buildContext("Quelles espèces sont protégées ?")
	assert.Contains(t, ctx, "THREATENED SPECIES:")
	assert.Contains(t, ctx, "Vanellus vanellus")
}

func TestBuildContextGenericFallback(t *testing.T) {
	r := testResponder(t, testSettings())

	ctx := r.buildContext("Bonjour !")
	assert.Contains(t, ctx, "AVAILABLE DATA")
}

func TestSystemPromptListsAllSpecies(t *testing.T) {
	r := testResponder(t, testSettings())

	for _, name := range []string{"Vanellus vanellus", "Anacamptis morio", "Leucanthemum vulgare"} {
		assert.Contains(t, r.systemPrompt, name)
	}
}
