// Package main demonstrates session persistence: conversation turns are
// written through to a file-backed store and restored when the agent is
// constructed again with the same session id.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/cagataycali/strands-go/pkg/strands"
	"github.com/cagataycali/strands-go/pkg/strands/adapters/filestore"
	"github.com/cagataycali/strands-go/pkg/strands/messages"
	"github.com/cagataycali/strands-go/pkg/strands/ports"
)

type echoModel struct{}

func (echoModel) Generate(_ context.Context, request ports.ModelRequest) (ports.ModelResponse, error) {
	last := request.Messages[len(request.Messages)-1]
	reply := "You said: " + last.TextContent()

	return ports.ModelResponse{
		StopReason: messages.StopEndTurn,
		Message: messages.Message{
			Role:    messages.RoleAssistant,
			Content: []messages.ContentBlock{{Text: &reply}},
		},
	}, nil
}

func main() {
	ctx := context.Background()

	store, err := filestore.New("./sessions-data")
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	repo := strands.NewSessionRepository(store)

	manager, err := strands.NewSessionManager(ctx, "demo-session", repo)
	if err != nil {
		log.Fatalf("open session: %v", err)
	}

	agent, err := strands.New(ctx, strands.AgentOptions{
		Model:          echoModel{},
		SessionManager: manager,
	})
	if err != nil {
		log.Fatalf("create agent: %v", err)
	}

	fmt.Printf("restored %d prior messages\n", len(agent.History()))

	result, err := agent.Invoke(ctx, "hello")
	if err != nil {
		log.Fatalf("invoke: %v", err)
	}
	fmt.Print(result.String())

	// Run this program again: the turn above is restored from disk.
}
