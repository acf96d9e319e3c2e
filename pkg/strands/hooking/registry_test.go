package hooking

import (
	"context"
	"errors"
	"testing"

	"github.com/cagataycali/strands-go/pkg/strands/interrupts"
	"github.com/cagataycali/strands-go/pkg/strands/messages"
)

func TestEmitRegistrationOrder(t *testing.T) {
	registry := NewRegistry()
	var order []string
	for _, label := range []string{"first", "second", "third"} {
		registry.Add(KindMessageAdded, func(_ context.Context, _ Event) error {
			order = append(order, label)

			return nil
		})
	}

	message := messages.NewUserMessage("hi")
	if _, err := registry.Emit(context.Background(), &MessageAddedEvent{Message: &message}); err != nil {
		t.Fatalf("emit failed: %v", err)
	}

	want := []string{"first", "second", "third"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("dispatch out of registration order: %v", order)
		}
	}
}

func TestEmitErrorStopsRemaining(t *testing.T) {
	registry := NewRegistry()
	var after int
	registry.Add(KindMessageAdded, func(_ context.Context, _ Event) error {
		return errors.New("first callback failed")
	})
	registry.Add(KindMessageAdded, func(_ context.Context, _ Event) error {
		after++

		return nil
	})

	message := messages.NewUserMessage("hi")
	_, err := registry.Emit(context.Background(), &MessageAddedEvent{Message: &message})
	if err == nil {
		t.Fatal("expected error")
	}
	if after != 0 {
		t.Error("callbacks after a failure must not run")
	}
}

func TestOnFiltersByKind(t *testing.T) {
	registry := NewRegistry()
	var called int
	On(registry, func(_ context.Context, event *AfterToolCallEvent) error {
		called++
		if event.ToolUse.Name != "add" {
			t.Errorf("unexpected payload: %+v", event.ToolUse)
		}

		return nil
	})

	message := messages.NewUserMessage("hi")
	if _, err := registry.Emit(context.Background(), &MessageAddedEvent{Message: &message}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if called != 0 {
		t.Fatal("typed callback fired for the wrong event kind")
	}

	result := messages.ToolResultBlock{ToolUseID: "t1", Status: messages.ToolResultSuccess}
	event := NewAfterToolCallEvent(messages.ToolUseBlock{ToolUseID: "t1", Name: "add"}, &result, nil)
	if _, err := registry.Emit(context.Background(), event); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if called != 1 {
		t.Fatalf("typed callback not invoked: %d", called)
	}
}

func TestResultRewriteVisible(t *testing.T) {
	registry := NewRegistry()
	On(registry, func(_ context.Context, event *AfterToolCallEvent) error {
		event.Result.Content = messages.TextResult("redacted")

		return nil
	})

	result := messages.ToolResultBlock{
		ToolUseID: "t1",
		Status:    messages.ToolResultSuccess,
		Content:   messages.TextResult("secret value"),
	}
	event := NewAfterToolCallEvent(messages.ToolUseBlock{ToolUseID: "t1", Name: "fetch"}, &result, nil)
	if _, err := registry.Emit(context.Background(), event); err != nil {
		t.Fatalf("emit: %v", err)
	}

	if result.Content[0].Text != "redacted" {
		t.Errorf("in-place rewrite lost: %q", result.Content[0].Text)
	}
}

func TestInterruptStopsRoundAndPropagates(t *testing.T) {
	registry := NewRegistry()
	controller := interrupts.NewController()

	var after int
	On(registry, func(_ context.Context, event *AfterToolCallEvent) error {
		_, err := event.Interrupt("approval", nil)

		return err
	})
	On(registry, func(_ context.Context, _ *AfterToolCallEvent) error {
		after++

		return nil
	})

	result := messages.ToolResultBlock{ToolUseID: "t1"}
	event := NewAfterToolCallEvent(
		messages.ToolUseBlock{ToolUseID: "t1", Name: "deploy"},
		&result,
		controller.Scope("afterToolCall/t1"),
	)

	_, err := registry.Emit(context.Background(), event)
	if _, ok := interrupts.AsSuspend(err); !ok {
		t.Fatalf("suspension must survive the emit wrapper, got %v", err)
	}
	if after != 0 {
		t.Error("interrupt must hard-stop remaining callbacks in the round")
	}
	if !controller.HasPending() {
		t.Error("interrupt not recorded as pending")
	}
}

func TestEmitHonorsContextCancellation(t *testing.T) {
	registry := NewRegistry()
	var called int
	registry.Add(KindMessageAdded, func(_ context.Context, _ Event) error {
		called++

		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	message := messages.NewUserMessage("hi")
	if _, err := registry.Emit(ctx, &MessageAddedEvent{Message: &message}); err == nil {
		t.Fatal("expected context error")
	}
	if called != 0 {
		t.Error("callback ran after cancellation")
	}
}
