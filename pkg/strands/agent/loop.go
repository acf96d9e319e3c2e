package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/cagataycali/strands-go/pkg/strands/hooking"
	"github.com/cagataycali/strands-go/pkg/strands/interrupts"
	"github.com/cagataycali/strands-go/pkg/strands/messages"
	"github.com/cagataycali/strands-go/pkg/strands/ports"
	"github.com/cagataycali/strands-go/pkg/stranderrs"
)

// stage marks where a turn stands in the loop state machine. A suspended
// turn records its stage so Resume can re-enter the exact dispatch step.
type stage int

const (
	// stageModelCall: about to fire BeforeModelCall and consult the model.
	stageModelCall stage = iota

	// stageModelResult: model response held, AfterModelCall not yet
	// completed.
	stageModelResult

	// stageDispatch: executing the tool uses of the current response.
	stageDispatch
)

// turn is the resumable state of one agent invocation.
type turn struct {
	controller *interrupts.Controller
	metrics    *EventLoopMetrics
	started    time.Time
	cycles     int
	stage      stage
	response   ports.ModelResponse
	dispatch   dispatchState
}

// Invoke runs one agent turn for the given user prompt. While a previous
// turn is suspended, new invocations are rejected; the caller must resume
// or abandon the pending interrupts first.
func (a *Agent) Invoke(ctx context.Context, prompt string) (*Result, error) {
	return a.InvokeMessage(ctx, messages.NewUserMessage(prompt))
}

// InvokeMessage runs one agent turn for an arbitrary user message.
func (a *Agent) InvokeMessage(ctx context.Context, message messages.Message) (*Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.suspended != nil {
		return nil, stranderrs.NewInterruptError(
			stranderrs.ErrCodeInterruptPending,
			"a suspended turn awaits interrupt responses",
			"",
		)
	}

	t := &turn{
		controller: interrupts.NewController(),
		metrics:    NewEventLoopMetrics(),
		started:    time.Now(),
	}
	if err := a.appendMessage(ctx, message); err != nil {
		return nil, err
	}

	return a.run(ctx, t)
}

// Resume feeds interrupt responses into the suspended turn and continues
// the loop from the recorded dispatch step. Responses must match pending
// interrupts by id; the matched hook's Interrupt call returns the response
// when its event is replayed.
func (a *Agent) Resume(ctx context.Context, envelopes []interrupts.ResponseEnvelope) (*Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.suspended == nil {
		return nil, stranderrs.NewInterruptError(
			stranderrs.ErrCodeNothingToResume,
			"no suspended turn to resume",
			"",
		)
	}

	responses, err := interrupts.Responses(envelopes)
	if err != nil {
		return nil, err
	}

	t := a.suspended
	if err := t.controller.Resolve(responses); err != nil {
		return nil, err
	}
	a.suspended = nil

	return a.run(ctx, t)
}

// run drives the turn state machine until the turn completes or suspends.
func (a *Agent) run(ctx context.Context, t *turn) (*Result, error) {
	for {
		switch t.stage {
		case stageModelCall:
			if t.cycles >= a.maxCycles {
				return nil, stranderrs.NewModelError(
					stranderrs.ErrCodeMaxCyclesExceeded,
					fmt.Sprintf("event loop exceeded %d cycles", a.maxCycles),
					nil,
				)
			}
			t.cycles++
			t.metrics.Cycles = t.cycles

			scope := t.controller.Scope(fmt.Sprintf("beforeModelCall/%d", t.cycles))
			if _, err := a.hooks.Emit(ctx, hooking.NewBeforeModelCallEvent(a.history, scope)); err != nil {
				return a.settle(t, err)
			}

			a.logger.Debug("calling model", "cycle", t.cycles, "history_len", len(a.history))
			response, err := a.model.Generate(ctx, ports.ModelRequest{
				SystemPrompt: a.systemPrompt,
				Messages:     a.history,
				ToolSpecs:    a.registry.Specs(),
			})
			if err != nil {
				return nil, stranderrs.NewModelError(
					stranderrs.ErrCodeModelFailure, "model generate", err,
				)
			}
			t.response = response
			t.stage = stageModelResult

		case stageModelResult:
			scope := t.controller.Scope(fmt.Sprintf("afterModelCall/%d", t.cycles))
			event := hooking.NewAfterModelCallEvent(t.response.StopReason, &t.response.Message, scope)
			if _, err := a.hooks.Emit(ctx, event); err != nil {
				return a.settle(t, err)
			}

			if err := a.appendMessage(ctx, t.response.Message); err != nil {
				return nil, err
			}

			uses := t.response.Message.ToolUses()
			if t.response.StopReason == messages.StopToolUse && len(uses) > 0 {
				t.dispatch = dispatchState{assistant: t.response.Message, uses: uses}
				t.stage = stageDispatch

				continue
			}

			return a.finish(ctx, t, t.response.StopReason, t.response.Message)

		case stageDispatch:
			resultMessage, err := a.dispatchTools(ctx, t)
			if err != nil {
				return a.settle(t, err)
			}
			if err := a.appendMessage(ctx, resultMessage); err != nil {
				return nil, err
			}

			if t.dispatch.returnDirect {
				// A return-direct tool ends the turn; the model is
				// not consulted again.
				return a.finish(ctx, t, messages.StopToolUse, resultMessage)
			}
			t.stage = stageModelCall
		}
	}
}

// settle routes a loop-step error: a suspension freezes the turn and
// surfaces its pending interrupts; anything else is fatal.
func (a *Agent) settle(t *turn, err error) (*Result, error) {
	if _, ok := interrupts.AsSuspend(err); !ok {
		return nil, err
	}

	a.suspended = t
	t.metrics.TotalDuration = time.Since(t.started)
	a.logger.Debug("turn suspended", "pending", len(t.controller.Pending()))

	return &Result{
		StopReason: messages.StopInterrupt,
		Message:    t.response.Message,
		Metrics:    t.metrics,
		State:      a.state.Snapshot(),
		Interrupts: t.controller.Pending(),
	}, nil
}

// finish completes the turn: metrics are finalized and live agent state is
// synced to the session.
func (a *Agent) finish(ctx context.Context, t *turn, stopReason messages.StopReason, message messages.Message) (*Result, error) {
	t.metrics.TotalDuration = time.Since(t.started)
	if err := a.syncSession(ctx); err != nil {
		return nil, err
	}

	return &Result{
		StopReason: stopReason,
		Message:    message,
		Metrics:    t.metrics,
		State:      a.state.Snapshot(),
	}, nil
}
