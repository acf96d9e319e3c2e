// Package main demonstrates the interrupt/resume flow: a hook pauses the
// turn after a tool call for human approval, and the caller resumes with a
// decision that rewrites the pending tool result.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/cagataycali/strands-go/pkg/strands"
	"github.com/cagataycali/strands-go/pkg/strands/hooking"
	"github.com/cagataycali/strands-go/pkg/strands/messages"
	"github.com/cagataycali/strands-go/pkg/strands/ports"
)

// approvalHooks suspends the turn whenever the deploy tool finishes, and
// branches on the resume decision.
type approvalHooks struct{}

func (approvalHooks) RegisterHooks(registry *hooking.Registry) {
	hooking.On(registry, func(_ context.Context, event *hooking.AfterToolCallEvent) error {
		if event.ToolUse.Name != "deploy" {
			return nil
		}

		decision, err := event.Interrupt("deploy_approval", map[string]any{
			"reason": "deployment requires sign-off",
		})
		if err != nil {
			return err
		}

		if decision == "DENY" {
			event.Result.Status = messages.ToolResultError
			event.Result.Content = messages.TextResult("deployment rejected by approver")
		}

		return nil
	})
}

type demoModel struct {
	asked bool
}

func (m *demoModel) Generate(_ context.Context, _ ports.ModelRequest) (ports.ModelResponse, error) {
	if !m.asked {
		m.asked = true
		use := messages.ToolUseBlock{
			ToolUseID: "tooluse_deploy",
			Name:      "deploy",
			Input:     map[string]any{},
		}

		return ports.ModelResponse{
			StopReason: messages.StopToolUse,
			Message: messages.Message{
				Role:    messages.RoleAssistant,
				Content: []messages.ContentBlock{{ToolUse: &use}},
			},
		}, nil
	}

	done := "Deployment handled."

	return ports.ModelResponse{
		StopReason: messages.StopEndTurn,
		Message: messages.Message{
			Role:    messages.RoleAssistant,
			Content: []messages.ContentBlock{{Text: &done}},
		},
	}, nil
}

func main() {
	deploy := strands.NewTool(strands.ToolSpec{
		Name:        "deploy",
		Description: "Deploys the service.",
	}, func(_ context.Context, _ map[string]any) (any, error) {
		return "deployed build 1234", nil
	})

	ctx := context.Background()
	agent, err := strands.New(ctx, strands.AgentOptions{
		Model: &demoModel{},
		Tools: []strands.Tool{deploy},
		Hooks: []strands.HookProvider{approvalHooks{}},
	})
	if err != nil {
		log.Fatalf("create agent: %v", err)
	}

	result, err := agent.Invoke(ctx, "Deploy the service.")
	if err != nil {
		log.Fatalf("invoke: %v", err)
	}
	fmt.Printf("first call: stop_reason=%s interrupts=%d\n", result.StopReason, len(result.Interrupts))

	// In a real application the response comes from a human; here the
	// deployment is approved programmatically.
	resumed, err := agent.Resume(ctx, []strands.ResponseEnvelope{{
		InterruptResponse: strands.InterruptResponse{
			InterruptID: result.Interrupts[0].ID,
			Response:    "APPROVE",
		},
	}})
	if err != nil {
		log.Fatalf("resume: %v", err)
	}

	fmt.Printf("after resume: stop_reason=%s\n", resumed.StopReason)
	fmt.Print(resumed.String())
}
