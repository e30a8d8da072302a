// Package agent runs the tool-dispatch loop that turns a natural-language
// question about a loaded table into a final answer. Each turn repeatedly
// consults the reasoning oracle, executes the tool it selects, feeds the
// result back, and terminates on a finish call or the step limit.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"tabla/chart"
	"tabla/model"
	"tabla/table"
	"tabla/tools"
)

// ErrOracleTimeout marks a turn that failed because the reasoning oracle
// did not answer within the configured bound. It is the only way an
// external fault surfaces to the user as a failed turn.
var ErrOracleTimeout = errors.New("reasoning oracle timed out")

// ErrEmptyQuestion rejects blank input before a turn starts.
var ErrEmptyQuestion = errors.New("question must not be empty")

const (
	// DefaultMaxSteps bounds reasoning/tool-execution cycles per turn.
	DefaultMaxSteps = 8
	// DefaultOracleTimeout bounds each individual oracle call.
	DefaultOracleTimeout = 60 * time.Second
)

// Step is one (call, result) pair in the turn's transcript.
type Step struct {
	Call   model.ToolCall
	Result tools.Result
}

// FinalAnswer is the terminal output of a turn. Ownership passes to the
// caller; nothing mutates it afterwards.
type FinalAnswer struct {
	Text         string
	ChartPath    string // empty when no chart was rendered
	StepLimitHit bool
	Steps        []Step // the turn's transcript, for display only
}

// Config tunes a Runner. Zero values pick the defaults above.
type Config struct {
	MaxSteps      int
	OracleTimeout time.Duration

	// OnStep, when set, observes each executed step as it happens (the UI
	// renders the live transcript from this).
	OnStep func(Step)

	// Debug receives loop diagnostics when non-nil.
	Debug *log.Logger
}

// Runner executes turns against one table. The table is read-only for the
// runner's lifetime; replace the runner when a new file is loaded.
type Runner struct {
	provider model.Provider
	table    *table.Table
	renderer *chart.Renderer
	cfg      Config
}

// NewRunner wires a runner for one loaded table.
func NewRunner(p model.Provider, t *table.Table, r *chart.Renderer, cfg Config) *Runner {
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = DefaultMaxSteps
	}
	if cfg.OracleTimeout <= 0 {
		cfg.OracleTimeout = DefaultOracleTimeout
	}
	return &Runner{provider: p, table: t, renderer: r, cfg: cfg}
}

// Turn resolves one question into a FinalAnswer.
//
// The loop: consult the oracle with the question, the table schema and the
// transcript so far; execute the tool calls it emits; append each (call,
// result) pair to the transcript; stop on finish, on a missing tool call
// (treated as an implicit finish with the streamed text), or on the step
// limit, which yields a best-effort answer rather than an error.
//
// Tool failures never abort the turn: they are recorded as failed results
// and fed back so the oracle can correct itself. Only oracle timeout,
// unreachability and cancellation end the turn without a FinalAnswer.
func (r *Runner) Turn(ctx context.Context, question string) (*FinalAnswer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}

	// Previous turns' charts are stale the moment a new turn begins.
	r.renderer.Prune()

	exec := tools.NewExecutor(r.table, r.renderer)
	menu := tools.Menu(r.table)
	messages := []model.Message{
		{Role: "system", Content: BuildSystemPrompt(r.table.Schema()), Timestamp: time.Now()},
		{Role: "user", Content: question, Timestamp: time.Now()},
	}

	var transcript []Step
	var lastChart, lastText string

	for cycle := 0; cycle < r.cfg.MaxSteps; cycle++ {
		text, calls, err := r.consult(ctx, messages, menu)
		if err != nil {
			return nil, err
		}
		if text != "" {
			lastText = text
			messages = append(messages, model.Message{Role: "assistant", Content: text, Timestamp: time.Now()})
		}

		if len(calls) == 0 {
			// A plain text response with no tool call is an implicit finish.
			r.debugf("cycle %d: no tool calls, finishing with streamed text", cycle)
			return &FinalAnswer{Text: lastText, ChartPath: lastChart, Steps: transcript}, nil
		}

		for _, tc := range calls {
			call, result := tools.Dispatch(exec, tc)

			if call.Kind == tools.KindFinish && result.OK {
				r.debugf("cycle %d: finish after %d steps", cycle, len(transcript))
				return &FinalAnswer{Text: call.Finish.Answer, ChartPath: lastChart, Steps: transcript}, nil
			}

			step := Step{Call: tc, Result: result}
			transcript = append(transcript, step)
			if r.cfg.OnStep != nil {
				r.cfg.OnStep(step)
			}
			if result.OK && result.ChartPath != "" {
				lastChart = result.ChartPath
			}
			r.debugf("cycle %d: %s ok=%v", cycle, tc.Name, result.OK)

			messages = append(messages, model.Message{
				Role:      "tool",
				Content:   fmt.Sprintf("result of %s: %s", tc.Name, result.Feedback()),
				Timestamp: time.Now(),
			})
		}
	}

	// Step limit reached: terminate gracefully with a best-effort answer.
	r.debugf("step limit (%d) reached", r.cfg.MaxSteps)
	text := lastText
	if text == "" {
		text = "I was unable to complete the analysis within the step limit. Try a more specific question."
	}
	return &FinalAnswer{
		Text:         text,
		ChartPath:    lastChart,
		StepLimitHit: true,
		Steps:        transcript,
	}, nil
}

// consult performs one oracle call under the per-call timeout, accumulating
// streamed text and tool calls.
func (r *Runner) consult(ctx context.Context, messages []model.Message, menu []mcptypes.Tool) (string, []model.ToolCall, error) {
	cctx, cancel := context.WithTimeout(ctx, r.cfg.OracleTimeout)
	defer cancel()

	var b strings.Builder
	var calls []model.ToolCall
	err := r.provider.ChatWithTools(cctx, messages, menu, func(chunk string, toolCalls []model.ToolCall) error {
		b.WriteString(chunk)
		calls = append(calls, toolCalls...)
		return nil
	})
	if err != nil {
		// The SDKs wrap the context error in transport errors; check the
		// contexts directly to classify.
		if ctx.Err() != nil {
			return "", nil, ctx.Err() // caller cancelled the turn
		}
		if errors.Is(err, context.DeadlineExceeded) || cctx.Err() == context.DeadlineExceeded {
			return "", nil, fmt.Errorf("%w after %s", ErrOracleTimeout, r.cfg.OracleTimeout)
		}
		return "", nil, fmt.Errorf("oracle call failed: %w", err)
	}
	return b.String(), calls, nil
}

func (r *Runner) debugf(format string, args ...any) {
	if r.cfg.Debug != nil {
		r.cfg.Debug.Printf("agent: "+format, args...)
	}
}
