package evaluate

import (
	"context"
	"errors"
	"fmt"

	"github.com/okrylov/praktik/internal/llm"
)

// ErrModelTransport marks failures of the model call itself (network,
// auth, rate limit, timeout). These abort the evaluation; they are
// distinct from malformed replies, which always yield a Verdict.
var ErrModelTransport = errors.New("model transport failure")

// Evaluator judges learner explanations with a language model.
type Evaluator struct {
	provider llm.Provider
	cfg      Config
}

// New creates an Evaluator on top of the given provider.
func New(provider llm.Provider, cfg Config) *Evaluator {
	return &Evaluator{provider: provider, cfg: cfg}
}

// Evaluate runs one explanation through the model and reconciles the
// reply into a Verdict. Transport errors wrap ErrModelTransport; a reply
// that arrives, however malformed, never produces an error.
func (e *Evaluator) Evaluate(ctx context.Context, in Input) (Verdict, error) {
	ctx = llm.WithPurpose(ctx, "evaluation")

	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	userMsg, err := buildUserMessage(in)
	if err != nil {
		return Verdict{}, err
	}

	req := llm.Request{
		System: evaluationSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return Verdict{}, fmt.Errorf("%w: %w", ErrModelTransport, err)
	}

	return reconcile(resp.Text), nil
}
