// Package console implements the interactive chat loop: a line-based prompt
// with built-in commands, answer rendering and a metadata line per response.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aerowise/aerowise-go/internal/agent"
	"github.com/aerowise/aerowise-go/internal/conf"
	"github.com/aerowise/aerowise-go/internal/datastore"
	"github.com/aerowise/aerowise-go/internal/llm"
	"github.com/aerowise/aerowise-go/internal/model"
)

const rule = "----------------------------------------------------------------------"
const banner = "======================================================================"

// Answerer produces a chat response for a free-form question.
type Answerer interface {
	Answer(ctx context.Context, question string) (model.ChatResponse, error)
}

// RuleAnswerer adapts the rule-based agent to the Answerer interface. It
// never returns an error.
type RuleAnswerer struct {
	Agent *agent.Agent
}

func (r RuleAnswerer) Answer(_ context.Context, question string) (model.ChatResponse, error) {
	return r.Agent.Ask(question), nil
}

// LLMAnswerer adapts the hosted-model responder to the Answerer interface,
// wrapping its text answer in the standard response envelope.
type LLMAnswerer struct {
	Responder *llm.Responder
}

func (l LLMAnswerer) Answer(ctx context.Context, question string) (model.ChatResponse, error) {
	start := time.Now()
	answer, err := l.Responder.Ask(ctx, question)
	if err != nil {
		return model.ChatResponse{}, err
	}
	return model.ChatResponse{
		ID:              uuid.NewString(),
		Answer:          answer,
		QueryType:       "llm",
		Confidence:      0.85,
		ExecutionTimeMs: float64(time.Since(start).Microseconds()) / 1000.0,
	}, nil
}

// NewAnswerer selects the configured answerer: the hosted-model responder
// when LLM mode is enabled, the rule-based agent otherwise. Agent options
// only apply in rule mode.
func NewAnswerer(store *datastore.Store, settings *conf.Settings, agentOpts ...agent.Option) (Answerer, error) {
	if settings.LLM.Enabled {
		responder, err := llm.NewResponder(store, settings)
		if err != nil {
			return nil, err
		}
		return LLMAnswerer{Responder: responder}, nil
	}
	return RuleAnswerer{Agent: agent.New(store, agentOpts...)}, nil
}

// Console runs the interactive loop.
type Console struct {
	in       io.Reader
	out      io.Writer
	answerer Answerer
	store    *datastore.Store
	queryLog *slog.Logger
}

// Option adjusts console construction.
type Option func(*Console)

// WithQueryLog logs every question/answer pair to the given logger.
func WithQueryLog(l *slog.Logger) Option {
	return func(c *Console) { c.queryLog = l }
}

// New builds a console reading from in and writing to out.
func New(in io.Reader, out io.Writer, answerer Answerer, store *datastore.Store, opts ...Option) *Console {
	c := &Console{in: in, out: out, answerer: answerer, store: store}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run prints the banner and processes input lines until EOF, a quit command
// or context cancellation.
func (c *Console) Run(ctx context.Context) error {
	c.printBanner()
	fmt.Fprintln(c.out, "Agent ready. Ask your questions (type 'help' for examples).")
	fmt.Fprintln(c.out)

	scanner := bufio.NewScanner(c.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(c.out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(c.out)
			return scanner.Err()
		}
		question := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(question) {
		case "":
			continue
		case "quit", "exit", "q":
			fmt.Fprintln(c.out, "\nGoodbye!")
			return nil
		case "help", "?", "aide":
			c.printHelp()
			continue
		case "stats":
			c.printStats()
			continue
		}

		resp, err := c.answerer.Answer(ctx, question)
		if err != nil {
			fmt.Fprintf(c.out, "\nError: %v\n\n", err)
			continue
		}

		fmt.Fprintf(c.out, "\nAeroWise: %s\n\n", resp.Answer)
		fmt.Fprintf(c.out, "[Type: %s | Confidence: %.0f%% | Time: %.0fms]\n\n",
			resp.QueryType, resp.Confidence*100, resp.ExecutionTimeMs)

		if c.queryLog != nil {
			c.queryLog.Info("question answered",
				"id", resp.ID,
				"query_type", resp.QueryType,
				"confidence", resp.Confidence,
				"execution_time_ms", resp.ExecutionTimeMs,
				"question", question,
			)
		}
	}
}

func (c *Console) printBanner() {
	fmt.Fprintln(c.out, banner)
	fmt.Fprintln(c.out, "                         AEROWISE CHATBOT")
	fmt.Fprintln(c.out, banner)
	fmt.Fprintln(c.out, "Airport biodiversity management assistant")
	fmt.Fprintln(c.out, banner)
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, "\nEXAMPLE QUESTIONS:")
	fmt.Fprintln(c.out, rule)
	fmt.Fprintln(c.out, "  1. Which birds were observed near runway 2 this month?")
	fmt.Fprintln(c.out, "  2. Give me the description of the Lapwing")
	fmt.Fprintln(c.out, "  3. Which plants are threatened by the airport?")
	fmt.Fprintln(c.out, "  4. Show me observations similar to observation #5")
	fmt.Fprintln(c.out, "  5. Any particular risks this week?")
	fmt.Fprintln(c.out, rule)
	fmt.Fprintln(c.out, "\nCOMMANDS:")
	fmt.Fprintln(c.out, "  - 'help' or '?': show this help")
	fmt.Fprintln(c.out, "  - 'stats': show dataset statistics")
	fmt.Fprintln(c.out, "  - 'quit' or 'exit': leave the chatbot")
	fmt.Fprintln(c.out)
}

func (c *Console) printStats() {
	WriteStats(c.out, c.store.Stats())
}

// WriteStats renders the dataset statistics table. Shared with the stats
// subcommand.
func WriteStats(w io.Writer, st datastore.Stats) {
	fmt.Fprintln(w, "\nDATASET STATISTICS")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  Registered species       : %d\n", st.Species)
	fmt.Fprintf(w, "    - Birds                : %d\n", st.BirdSpecies)
	fmt.Fprintf(w, "    - Plants               : %d\n", st.PlantSpecies)
	fmt.Fprintf(w, "  Observations             : %d\n", st.Observations)
	fmt.Fprintf(w, "  Airport zones            : %d\n", st.Zones)
	fmt.Fprintf(w, "  Recorded incidents       : %d\n", st.Incidents)
	fmt.Fprintf(w, "    - High severity        : %d\n", st.HighSeverityIncidents)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
}
