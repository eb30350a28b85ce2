// Package decide is the decision-provider boundary: it turns a structured
// prompt into one participant's utterance or choice, via some LLM backend.
// Everything in here can fail or be rate limited; callers are expected to
// treat that as silence, not as fatal.
package decide

import (
	"context"
	"errors"
)

// Request is one prompt to a provider. System carries the persona, Prompt the
// per-call context and instruction.
type Request struct {
	System string
	Prompt string
}

// Provider turns a request into free text.
type Provider interface {
	Decide(ctx context.Context, req Request) (string, error)
}

// ErrRateLimited marks a backend refusal that the caller may want to
// distinguish from a hard failure. Both are recoverable.
var ErrRateLimited = errors.New("rate limited")

// Exchange is one remembered prompt/reply pair.
type Exchange struct {
	Prompt string
	Reply  string
}

// Backend is a raw chat capability shared by all agents of a game.
type Backend interface {
	Complete(ctx context.Context, system, prompt string, history []Exchange) (string, error)
}

// memoryWindow is how many past exchanges an agent replays into later calls.
const memoryWindow = 5

// Agent binds a backend to one persona, with a bounded conversational memory.
// It is not safe for concurrent use; the orchestration core calls providers
// sequentially within a phase.
type Agent struct {
	backend Backend
	memory  []Exchange
}

func NewAgent(b Backend) *Agent {
	return &Agent{backend: b}
}

func (a *Agent) Decide(ctx context.Context, req Request) (string, error) {
	reply, err := a.backend.Complete(ctx, req.System, req.Prompt, a.memory)
	if err != nil {
		return "", err
	}

	a.memory = append(a.memory, Exchange{Prompt: req.Prompt, Reply: reply})
	if len(a.memory) > memoryWindow {
		a.memory = a.memory[len(a.memory)-memoryWindow:]
	}

	return reply, nil
}
