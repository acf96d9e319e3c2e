package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cagataycali/strands-go/pkg/strands/adapters/inmemstore"
	"github.com/cagataycali/strands-go/pkg/strands/hooking"
	"github.com/cagataycali/strands-go/pkg/strands/internal/testutil"
	"github.com/cagataycali/strands-go/pkg/strands/interrupts"
	"github.com/cagataycali/strands-go/pkg/strands/messages"
	"github.com/cagataycali/strands-go/pkg/strands/options"
	"github.com/cagataycali/strands-go/pkg/strands/session"
	"github.com/cagataycali/strands-go/pkg/strands/tooling"
	"github.com/cagataycali/strands-go/pkg/stranderrs"
)

func echoTool() tooling.Tool {
	return tooling.NewTool(tooling.Spec{
		Name:        "echo",
		Description: "echoes its input",
	}, func(_ context.Context, input map[string]any) (any, error) {
		return input["value"], nil
	})
}

func failingTool() tooling.Tool {
	return tooling.NewTool(tooling.Spec{
		Name:        "flaky",
		Description: "always fails",
	}, func(_ context.Context, _ map[string]any) (any, error) {
		return nil, errors.New("backend exploded")
	})
}

func newAgent(t *testing.T, opts options.AgentOptions) *Agent {
	t.Helper()
	a, err := New(context.Background(), opts)
	if err != nil {
		t.Fatalf("new agent: %v", err)
	}

	return a
}

func use(id, name string, input map[string]any) messages.ToolUseBlock {
	return messages.ToolUseBlock{ToolUseID: id, Name: name, Input: input}
}

func TestInvokeEndTurn(t *testing.T) {
	model := testutil.NewScriptedModel(testutil.TextResponse("hello there"))
	a := newAgent(t, options.AgentOptions{Model: model})

	result, err := a.Invoke(context.Background(), "hi")
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}

	if result.StopReason != messages.StopEndTurn {
		t.Errorf("stop reason: %s", result.StopReason)
	}
	if result.String() != "hello there\n" {
		t.Errorf("final text: %q", result.String())
	}
	if len(result.Interrupts) != 0 {
		t.Errorf("interrupts must be empty on end_turn: %+v", result.Interrupts)
	}
	if result.Metrics.Cycles != 1 {
		t.Errorf("cycles: %d", result.Metrics.Cycles)
	}

	history := a.History()
	if len(history) != 2 {
		t.Fatalf("expected user+assistant history, got %d messages", len(history))
	}
}

func TestInvokeToolRoundTrip(t *testing.T) {
	model := testutil.NewScriptedModel(
		testutil.ToolUseResponse(use("t1", "echo", map[string]any{"value": "ping"})),
		testutil.TextResponse("the tool said ping"),
	)
	a := newAgent(t, options.AgentOptions{Model: model, Tools: []tooling.Tool{echoTool()}})

	result, err := a.Invoke(context.Background(), "call the tool")
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}

	if result.StopReason != messages.StopEndTurn {
		t.Errorf("stop reason: %s", result.StopReason)
	}
	if model.Calls() != 2 {
		t.Errorf("model consultations: %d", model.Calls())
	}

	// History: user, assistant tool use, user tool result, assistant.
	history := a.History()
	if len(history) != 4 {
		t.Fatalf("history length: %d", len(history))
	}
	toolResult := history[2].Content[0].ToolResult
	if toolResult == nil || toolResult.ToolUseID != "t1" {
		t.Fatalf("tool result not merged into history: %+v", history[2])
	}
	if toolResult.Content[0].Text != "ping" {
		t.Errorf("tool output: %q", toolResult.Content[0].Text)
	}

	if result.ToolExecutions()["echo"] != 1 {
		t.Errorf("tool metrics: %v", result.ToolExecutions())
	}
	if result.ToolInputs()["echo"]["value"] != "ping" {
		t.Errorf("tool inputs: %v", result.ToolInputs())
	}

	// The second model call saw the tool specs and updated history.
	if len(model.Requests[1].ToolSpecs) != 1 || model.Requests[1].ToolSpecs[0].Name != "echo" {
		t.Errorf("tool specs not passed to model: %+v", model.Requests[1].ToolSpecs)
	}
}

func TestToolErrorRecoveredLocally(t *testing.T) {
	model := testutil.NewScriptedModel(
		testutil.ToolUseResponse(use("t1", "flaky", nil)),
		testutil.TextResponse("the tool failed, sorry"),
	)
	a := newAgent(t, options.AgentOptions{Model: model, Tools: []tooling.Tool{failingTool()}})

	result, err := a.Invoke(context.Background(), "try it")
	if err != nil {
		t.Fatalf("tool failure must not abort the loop: %v", err)
	}
	if result.StopReason != messages.StopEndTurn {
		t.Errorf("stop reason: %s", result.StopReason)
	}

	toolResult := a.History()[2].Content[0].ToolResult
	if toolResult.Status != messages.ToolResultError {
		t.Errorf("expected error result, got %s", toolResult.Status)
	}
	if !strings.Contains(toolResult.Content[0].Text, "backend exploded") {
		t.Errorf("error text lost: %q", toolResult.Content[0].Text)
	}
}

func TestUnknownToolRecoveredLocally(t *testing.T) {
	model := testutil.NewScriptedModel(
		testutil.ToolUseResponse(use("t1", "ghost", nil)),
		testutil.TextResponse("no such tool"),
	)
	a := newAgent(t, options.AgentOptions{Model: model})

	if _, err := a.Invoke(context.Background(), "try it"); err != nil {
		t.Fatalf("unknown tool must not abort the loop: %v", err)
	}

	toolResult := a.History()[2].Content[0].ToolResult
	if toolResult.Status != messages.ToolResultError {
		t.Errorf("expected error result, got %s", toolResult.Status)
	}
	if toolResult.Content[0].Text != "Unknown tool: ghost" {
		t.Errorf("unexpected text: %q", toolResult.Content[0].Text)
	}
}

func TestModelFailureIsFatal(t *testing.T) {
	model := testutil.NewScriptedModel(testutil.Step{Err: errors.New("auth expired")})
	a := newAgent(t, options.AgentOptions{Model: model})

	_, err := a.Invoke(context.Background(), "hi")
	if !stranderrs.HasCode(err, stranderrs.ErrCodeModelFailure) {
		t.Fatalf("expected model failure, got %v", err)
	}
	if !strings.Contains(err.Error(), "auth expired") {
		t.Errorf("cause lost: %v", err)
	}
}

func TestMaxCyclesExceeded(t *testing.T) {
	steps := make([]testutil.Step, 5)
	for i := range steps {
		steps[i] = testutil.ToolUseResponse(use("t1", "echo", map[string]any{"value": "again"}))
	}
	model := testutil.NewScriptedModel(steps...)
	a := newAgent(t, options.AgentOptions{Model: model, Tools: []tooling.Tool{echoTool()}, MaxCycles: 3})

	_, err := a.Invoke(context.Background(), "loop forever")
	if !stranderrs.HasCode(err, stranderrs.ErrCodeMaxCyclesExceeded) {
		t.Fatalf("expected max-cycles error, got %v", err)
	}
	if model.Calls() != 3 {
		t.Errorf("model calls: %d", model.Calls())
	}
}

func TestReturnDirectShortCircuits(t *testing.T) {
	lookup := tooling.NewTool(tooling.Spec{
		Name:         "lookup",
		ReturnDirect: true,
	}, func(_ context.Context, _ map[string]any) (any, error) {
		return "raw record", nil
	})
	model := testutil.NewScriptedModel(
		testutil.ToolUseResponse(use("t1", "lookup", nil)),
		testutil.TextResponse("never reached"),
	)
	a := newAgent(t, options.AgentOptions{Model: model, Tools: []tooling.Tool{lookup}})

	result, err := a.Invoke(context.Background(), "look it up")
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}

	if result.StopReason != messages.StopToolUse {
		t.Errorf("stop reason: %s", result.StopReason)
	}
	if model.Calls() != 1 {
		t.Errorf("model must not be consulted again, calls=%d", model.Calls())
	}
	final := result.Message.Content[0].ToolResult
	if final == nil || final.Content[0].Text != "raw record" {
		t.Fatalf("final message must carry the tool result: %+v", result.Message)
	}
}

func TestHookOrdering(t *testing.T) {
	capture := &testutil.CaptureHooks{}
	model := testutil.NewScriptedModel(
		testutil.ToolUseResponse(use("t1", "echo", map[string]any{"value": "x"})),
		testutil.TextResponse("done"),
	)
	a := newAgent(t, options.AgentOptions{
		Model: model,
		Tools: []tooling.Tool{echoTool()},
		Hooks: []hooking.Provider{capture},
	})

	if _, err := a.Invoke(context.Background(), "go"); err != nil {
		t.Fatalf("invoke: %v", err)
	}

	if capture.Count(hooking.KindAgentInitialized) != 1 {
		t.Error("AgentInitialized must fire once at construction")
	}
	if capture.Count(hooking.KindBeforeModelCall) != 2 || capture.Count(hooking.KindAfterModelCall) != 2 {
		t.Errorf("model hook counts: before=%d after=%d",
			capture.Count(hooking.KindBeforeModelCall), capture.Count(hooking.KindAfterModelCall))
	}
	if capture.Count(hooking.KindBeforeToolCall) != 1 || capture.Count(hooking.KindAfterToolCall) != 1 {
		t.Errorf("tool hook counts: before=%d after=%d",
			capture.Count(hooking.KindBeforeToolCall), capture.Count(hooking.KindAfterToolCall))
	}
	// user, assistant, tool-result, assistant.
	if capture.Count(hooking.KindMessageAdded) != 4 {
		t.Errorf("MessageAdded count: %d", capture.Count(hooking.KindMessageAdded))
	}
}

// reviewHooks interrupts after the flaky tool fails and branches on the
// resume decision: RETRY rewrites the result to success, SKIP annotates it.
type reviewHooks struct{}

func (reviewHooks) RegisterHooks(registry *hooking.Registry) {
	hooking.On(registry, func(_ context.Context, event *hooking.AfterToolCallEvent) error {
		if event.Result.Status != messages.ToolResultError {
			return nil
		}

		decision, err := event.Interrupt("tool_failure_review", map[string]any{
			"reason": "tool failed, review required",
		})
		if err != nil {
			return err
		}

		switch decision {
		case "RETRY":
			event.Result.Status = messages.ToolResultSuccess
			event.Result.Content = messages.TextResult("retried and recovered")
		case "SKIP":
			event.Result.Content = messages.TextResult("failure acknowledged, skipped")
		}

		return nil
	})
}

func TestInterruptAndResumeRetry(t *testing.T) {
	model := testutil.NewScriptedModel(
		testutil.ToolUseResponse(use("t1", "flaky", nil)),
		testutil.TextResponse("all good now"),
	)
	a := newAgent(t, options.AgentOptions{
		Model: model,
		Tools: []tooling.Tool{failingTool()},
		Hooks: []hooking.Provider{reviewHooks{}},
	})
	ctx := context.Background()

	result, err := a.Invoke(ctx, "run the flaky tool")
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}

	if result.StopReason != messages.StopInterrupt {
		t.Fatalf("stop reason: %s", result.StopReason)
	}
	if len(result.Interrupts) != 1 || result.Interrupts[0].Name != "tool_failure_review" {
		t.Fatalf("interrupts: %+v", result.Interrupts)
	}
	if result.Interrupts[0].Reason != "tool failed, review required" {
		t.Errorf("reason: %q", result.Interrupts[0].Reason)
	}
	if !a.Suspended() {
		t.Fatal("agent must report a suspended turn")
	}

	// While suspended, fresh invocations are rejected.
	if _, err := a.Invoke(ctx, "another prompt"); !stranderrs.HasCode(err, stranderrs.ErrCodeInterruptPending) {
		t.Fatalf("expected interrupt-pending error, got %v", err)
	}

	resumed, err := a.Resume(ctx, []interrupts.ResponseEnvelope{{
		InterruptResponse: interrupts.Response{
			InterruptID: result.Interrupts[0].ID,
			Response:    "RETRY",
		},
	}})
	if err != nil {
		t.Fatalf("resume: %v", err)
	}

	if resumed.StopReason != messages.StopEndTurn {
		t.Errorf("resumed stop reason: %s", resumed.StopReason)
	}
	if a.Suspended() {
		t.Error("turn must no longer be suspended")
	}

	// The committed tool result reflects the RETRY branch rewrite.
	toolResult := a.History()[2].Content[0].ToolResult
	if toolResult.Status != messages.ToolResultSuccess {
		t.Errorf("result status after retry: %s", toolResult.Status)
	}
	if toolResult.Content[0].Text != "retried and recovered" {
		t.Errorf("rewrite lost: %q", toolResult.Content[0].Text)
	}
}

func TestResumeUnmatchedResponse(t *testing.T) {
	model := testutil.NewScriptedModel(
		testutil.ToolUseResponse(use("t1", "flaky", nil)),
	)
	a := newAgent(t, options.AgentOptions{
		Model: model,
		Tools: []tooling.Tool{failingTool()},
		Hooks: []hooking.Provider{reviewHooks{}},
	})
	ctx := context.Background()

	if _, err := a.Invoke(ctx, "go"); err != nil {
		t.Fatalf("invoke: %v", err)
	}

	_, err := a.Resume(ctx, []interrupts.ResponseEnvelope{{
		InterruptResponse: interrupts.Response{InterruptID: "stale", Response: "x"},
	}})
	if !stranderrs.IsUnmatchedResponse(err) {
		t.Fatalf("expected unmatched-response error, got %v", err)
	}
}

func TestResumeWithoutSuspension(t *testing.T) {
	a := newAgent(t, options.AgentOptions{Model: testutil.NewScriptedModel()})

	_, err := a.Resume(context.Background(), nil)
	if !stranderrs.HasCode(err, stranderrs.ErrCodeNothingToResume) {
		t.Fatalf("expected nothing-to-resume error, got %v", err)
	}
}

func TestInterruptStopsBatchPreservingCommittedResults(t *testing.T) {
	var secondRan bool
	second := tooling.NewTool(tooling.Spec{Name: "second"}, func(_ context.Context, _ map[string]any) (any, error) {
		secondRan = true

		return "second done", nil
	})
	model := testutil.NewScriptedModel(
		testutil.ToolUseResponse(
			use("t1", "echo", map[string]any{"value": "first done"}),
			use("t2", "flaky", nil),
			use("t3", "second", nil),
		),
		testutil.TextResponse("wrapped up"),
	)
	a := newAgent(t, options.AgentOptions{
		Model: model,
		Tools: []tooling.Tool{echoTool(), failingTool(), second},
		Hooks: []hooking.Provider{reviewHooks{}},
	})
	ctx := context.Background()

	result, err := a.Invoke(ctx, "run all three")
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if result.StopReason != messages.StopInterrupt {
		t.Fatalf("stop reason: %s", result.StopReason)
	}
	if secondRan {
		t.Fatal("tools after the interrupt point must not start while suspended")
	}

	resumed, err := a.Resume(ctx, []interrupts.ResponseEnvelope{{
		InterruptResponse: interrupts.Response{
			InterruptID: result.Interrupts[0].ID,
			Response:    "SKIP",
		},
	}})
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if resumed.StopReason != messages.StopEndTurn {
		t.Errorf("resumed stop reason: %s", resumed.StopReason)
	}
	if !secondRan {
		t.Error("remaining tools must run after resume")
	}

	// One result message carrying all three results in request order.
	merged := a.History()[2]
	if len(merged.Content) != 3 {
		t.Fatalf("merged result count: %d", len(merged.Content))
	}
	if merged.Content[0].ToolResult.Content[0].Text != "first done" {
		t.Errorf("committed result lost: %q", merged.Content[0].ToolResult.Content[0].Text)
	}
	if merged.Content[1].ToolResult.Content[0].Text != "failure acknowledged, skipped" {
		t.Errorf("SKIP branch rewrite lost: %q", merged.Content[1].ToolResult.Content[0].Text)
	}
	if merged.Content[2].ToolResult.Content[0].Text != "second done" {
		t.Errorf("post-resume result lost: %q", merged.Content[2].ToolResult.Content[0].Text)
	}
}

func TestToolIsNotReExecutedOnResume(t *testing.T) {
	var calls int
	counted := tooling.NewTool(tooling.Spec{Name: "counted"}, func(_ context.Context, _ map[string]any) (any, error) {
		calls++

		return nil, errors.New("always fails")
	})
	model := testutil.NewScriptedModel(
		testutil.ToolUseResponse(use("t1", "counted", nil)),
		testutil.TextResponse("done"),
	)
	a := newAgent(t, options.AgentOptions{
		Model: model,
		Tools: []tooling.Tool{counted},
		Hooks: []hooking.Provider{reviewHooks{}},
	})
	ctx := context.Background()

	result, err := a.Invoke(ctx, "go")
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if _, err := a.Resume(ctx, []interrupts.ResponseEnvelope{{
		InterruptResponse: interrupts.Response{InterruptID: result.Interrupts[0].ID, Response: "SKIP"},
	}}); err != nil {
		t.Fatalf("resume: %v", err)
	}

	if calls != 1 {
		t.Errorf("tool executed %d times; replay must not re-run it", calls)
	}
}

func TestCallToolDirectMatchesLoopBehavior(t *testing.T) {
	stateful := tooling.NewContextTool(tooling.Spec{Name: "mark"}, func(_ context.Context, input map[string]any, tc *tooling.ToolContext) (any, error) {
		tc.State.Set("marked_by", tc.AgentName)

		return "marked", nil
	})
	a := newAgent(t, options.AgentOptions{
		Name:  "direct-agent",
		Model: testutil.NewScriptedModel(),
		Tools: []tooling.Tool{stateful},
	})

	result := a.CallTool(context.Background(), "mark", nil)
	if result.Status != messages.ToolResultSuccess {
		t.Fatalf("direct call failed: %+v", result)
	}
	if a.State().Get("marked_by") != "direct-agent" {
		t.Error("context injection must apply to direct calls too")
	}

	missing := a.CallTool(context.Background(), "ghost", nil)
	if missing.Status != messages.ToolResultError || missing.Content[0].Text != "Unknown tool: ghost" {
		t.Errorf("unknown direct call: %+v", missing)
	}
}

func TestSessionPersistenceAndRestore(t *testing.T) {
	store := inmemstore.New()
	repo := session.NewRepository(store)
	ctx := context.Background()

	manager, err := session.NewManager(ctx, "sess", repo)
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	model := testutil.NewScriptedModel(testutil.TextResponse("persisted reply"))
	a := newAgent(t, options.AgentOptions{Model: model, SessionManager: manager})

	a.State().Set("visits", 1.0)
	if _, err := a.Invoke(ctx, "hello"); err != nil {
		t.Fatalf("invoke: %v", err)
	}

	records, err := repo.ListMessages(ctx, "sess", options.DefaultAgentID, session.ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("persisted messages: %d", len(records))
	}

	// A fresh agent over the same session restores history and state.
	manager2, err := session.NewManager(ctx, "sess", repo)
	if err != nil {
		t.Fatalf("manager2: %v", err)
	}
	restoredAgent := newAgent(t, options.AgentOptions{
		Model:          testutil.NewScriptedModel(testutil.TextResponse("again")),
		SessionManager: manager2,
	})

	history := restoredAgent.History()
	if len(history) != 2 {
		t.Fatalf("restored history: %d", len(history))
	}
	if history[1].TextContent() != "persisted reply\n" {
		t.Errorf("restored content: %q", history[1].TextContent())
	}
	if restoredAgent.State().Get("visits") != 1.0 {
		t.Errorf("restored state: %v", restoredAgent.State().Get("visits"))
	}

	// New turns continue the message index sequence.
	if _, err := restoredAgent.Invoke(ctx, "second turn"); err != nil {
		t.Fatalf("invoke after restore: %v", err)
	}
	records, _ = repo.ListMessages(ctx, "sess", options.DefaultAgentID, session.ListOptions{})
	if len(records) != 4 {
		t.Fatalf("persisted messages after second turn: %d", len(records))
	}
	for i, record := range records {
		if record.MessageID != i {
			t.Fatalf("message ids not contiguous: %d at position %d", record.MessageID, i)
		}
	}
}

func TestMissingModelRejected(t *testing.T) {
	_, err := New(context.Background(), options.AgentOptions{})
	if !stranderrs.HasCode(err, stranderrs.ErrCodeMissingModel) {
		t.Fatalf("expected missing-model error, got %v", err)
	}
}
