package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerowise/aerowise-go/internal/agent"
	"github.com/aerowise/aerowise-go/internal/datastore"
	"github.com/aerowise/aerowise-go/internal/model"
)

type stubAnswerer struct {
	resp model.ChatResponse
	err  error
	asks []string
}

func (s *stubAnswerer) Answer(_ context.Context, question string) (model.ChatResponse, error) {
	s.asks = append(s.asks, question)
	return s.resp, s.err
}

func testStore(t *testing.T) *datastore.Store {
	t.Helper()
	store, err := datastore.Load(datastore.EmbeddedDataset())
	require.NoError(t, err)
	return store
}

func runConsole(t *testing.T, input string, answerer Answerer) string {
	t.Helper()
	var out bytes.Buffer
	c := New(strings.NewReader(input), &out, answerer, testStore(t))
	require.NoError(t, c.Run(context.Background()))
	return out.String()
}

func TestRunQuitCommand(t *testing.T) {
	t.Parallel()

	stub := &stubAnswerer{}
	out := runConsole(t, "quit\n", stub)

	assert.Contains(t, out, "AEROWISE CHATBOT")
	assert.Contains(t, out, "Goodbye!")
	assert.Empty(t, stub.asks)
}

func TestRunExitsOnEOF(t *testing.T) {
	t.Parallel()

	out := runConsole(t, "", &stubAnswerer{})
	assert.Contains(t, out, "You: ")
}

func TestRunHelpCommand(t *testing.T) {
	t.Parallel()

	stub := &stubAnswerer{}
	out := runConsole(t, "help\nquit\n", stub)

	assert.Contains(t, out, "EXAMPLE QUESTIONS:")
	assert.Contains(t, out, "COMMANDS:")
	assert.Empty(t, stub.asks, "help must not reach the answerer")
}

func TestRunStatsCommand(t *testing.T) {
	t.Parallel()

	out := runConsole(t, "stats\nquit\n", &stubAnswerer{})

	assert.Contains(t, out, "DATASET STATISTICS")
	assert.Contains(t, out, "Registered species       : 8")
	assert.Contains(t, out, "Birds                : 6")
	assert.Contains(t, out, "Plants               : 2")
}

func TestRunAnswersQuestion(t *testing.T) {
	t.Parallel()

	stub := &stubAnswerer{resp: model.ChatResponse{
		ID:              "resp-1",
		Answer:          "Three birds were observed.",
		QueryType:       "spatial",
		Confidence:      0.85,
		ExecutionTimeMs: 1.5,
	}}
	out := runConsole(t, "Which birds near runway 2?\nquit\n", stub)

	require.Equal(t, []string{"Which birds near runway 2?"}, stub.asks)
	assert.Contains(t, out, "AeroWise: Three birds were observed.")
	assert.Contains(t, out, "[Type: spatial | Confidence: 85% | Time: 2ms]")
}

func TestRunSkipsBlankLines(t *testing.T) {
	t.Parallel()

	stub := &stubAnswerer{resp: model.ChatResponse{Answer: "ok", QueryType: "unknown"}}
	runConsole(t, "\n   \nquit\n", stub)

	assert.Empty(t, stub.asks)
}

func TestRunContinuesAfterAnswerError(t *testing.T) {
	t.Parallel()

	stub := &stubAnswerer{err: errors.New("api unreachable")}
	out := runConsole(t, "first question\nquit\n", stub)

	assert.Contains(t, out, "Error: api unreachable")
	assert.Contains(t, out, "Goodbye!")
}

func TestRuleAnswererEnvelope(t *testing.T) {
	t.Parallel()

	a := agent.New(testStore(t))
	resp, err := RuleAnswerer{Agent: a}.Answer(context.Background(), "Give me the description of the Lapwing")

	require.NoError(t, err)
	assert.Equal(t, "descriptive", resp.QueryType)
	assert.InDelta(t, 0.85, resp.Confidence, 0)
}
