package agent

import (
	"context"
	"time"

	"github.com/cagataycali/strands-go/pkg/strands/hooking"
	"github.com/cagataycali/strands-go/pkg/strands/messages"
)

// dispatchState is the resumable position inside one tool dispatch round.
// Results committed before a suspension are preserved; tool uses after the
// suspension point have not been started.
type dispatchState struct {
	assistant    messages.Message
	uses         []messages.ToolUseBlock
	results      []messages.ToolResultBlock
	next         int
	invoked      *messages.ToolResultBlock
	returnDirect bool
}

// dispatchTools executes the current response's tool uses in order, firing
// BeforeToolCall and AfterToolCall around each. A hook suspension unwinds
// out of here with the state frozen mid-round; on resume the suspended
// event is replayed and the round continues. The tool itself is never
// re-executed on replay: invoked holds its result across the suspension.
func (a *Agent) dispatchTools(ctx context.Context, t *turn) (messages.Message, error) {
	st := &t.dispatch

	for st.next < len(st.uses) {
		use := st.uses[st.next]
		tool, registered := a.registry.Get(use.Name)

		if st.invoked == nil {
			before := hooking.NewBeforeToolCallEvent(
				use, tool.Spec, t.controller.Scope("beforeToolCall/"+use.ToolUseID),
			)
			if _, err := a.hooks.Emit(ctx, before); err != nil {
				return messages.Message{}, err
			}

			started := time.Now()
			result := a.invoker.Invoke(ctx, use, a.toolContext())
			t.metrics.recordToolCall(
				tool.Spec, use,
				result.Status == messages.ToolResultSuccess,
				time.Since(started),
			)
			st.invoked = &result
		}

		after := hooking.NewAfterToolCallEvent(
			use, st.invoked, t.controller.Scope("afterToolCall/"+use.ToolUseID),
		)
		if _, err := a.hooks.Emit(ctx, after); err != nil {
			return messages.Message{}, err
		}

		// The hook may have rewritten the result in place; the committed
		// copy is what reaches history.
		st.results = append(st.results, *st.invoked)
		st.invoked = nil
		st.next++

		if registered && tool.Spec.ReturnDirect {
			st.returnDirect = true

			break
		}
	}

	return toolResultMessage(st.results), nil
}

// toolResultMessage packs a dispatch round's results into the user-role
// message appended to history.
func toolResultMessage(results []messages.ToolResultBlock) messages.Message {
	content := make([]messages.ContentBlock, len(results))
	for i := range results {
		result := results[i].Clone()
		content[i] = messages.ContentBlock{ToolResult: &result}
	}

	return messages.Message{Role: messages.RoleUser, Content: content}
}
