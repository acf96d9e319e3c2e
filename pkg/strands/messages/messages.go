// Package messages defines the conversation data model shared by the event
// loop, the tool invoker, and the session store: messages, content blocks,
// tool results, and stop reasons.
package messages

// Role identifies the author of a message.
type Role string

const (
	// RoleUser marks messages from the caller, including tool results.
	RoleUser Role = "user"

	// RoleAssistant marks messages produced by the model.
	RoleAssistant Role = "assistant"

	// RoleSystem marks system prompt messages.
	RoleSystem Role = "system"
)

// Message is one turn of conversation: a role plus an ordered sequence of
// content blocks. Messages are immutable once appended to history, except
// for the in-place rewrite of tool results during result merge.
type Message struct {
	Role    Role           `json:"role"`
	Content []ContentBlock `json:"content"`
}

// NewUserMessage builds a user message from text.
func NewUserMessage(text string) Message {
	return Message{
		Role:    RoleUser,
		Content: []ContentBlock{{Text: &text}},
	}
}

// NewAssistantMessage builds an assistant message from text.
func NewAssistantMessage(text string) Message {
	return Message{
		Role:    RoleAssistant,
		Content: []ContentBlock{{Text: &text}},
	}
}

// ToolUses returns the tool-use blocks of the message in order.
func (m Message) ToolUses() []ToolUseBlock {
	var uses []ToolUseBlock
	for _, block := range m.Content {
		if block.ToolUse != nil {
			uses = append(uses, *block.ToolUse)
		}
	}

	return uses
}

// TextContent concatenates the text blocks of the message, one per line.
func (m Message) TextContent() string {
	var out string
	for _, block := range m.Content {
		if block.Text != nil {
			out += *block.Text + "\n"
		}
	}

	return out
}

// Clone returns a deep copy of the message. Content blocks are copied so
// that handler mutations on one copy never leak into the other.
func (m Message) Clone() Message {
	cloned := Message{Role: m.Role}
	if m.Content != nil {
		cloned.Content = make([]ContentBlock, len(m.Content))
		for i, block := range m.Content {
			cloned.Content[i] = block.clone()
		}
	}

	return cloned
}

// CloneMessages deep-copies a message history slice.
func CloneMessages(in []Message) []Message {
	if in == nil {
		return nil
	}
	out := make([]Message, len(in))
	for i, m := range in {
		out[i] = m.Clone()
	}

	return out
}
