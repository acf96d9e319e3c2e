package messages

import "fmt"

// ContentBlock is a tagged union over the block kinds a message may carry.
// Exactly one field is populated per block; the JSON representation keys
// the payload by its tag ({"text": ...}, {"toolUse": {...}}, and so on),
// which is also the layout the session store persists.
type ContentBlock struct {
	// Text contains plain text content.
	Text *string `json:"text,omitempty"`

	// Image contains image content by format and source.
	Image *ImageContent `json:"image,omitempty"`

	// Document contains an attached document.
	Document *DocumentContent `json:"document,omitempty"`

	// GuardContent contains content to be evaluated by guardrails.
	GuardContent *GuardContent `json:"guardContent,omitempty"`

	// ToolUse contains a model-issued tool invocation request.
	ToolUse *ToolUseBlock `json:"toolUse,omitempty"`

	// ToolResult contains the outcome of a tool invocation.
	ToolResult *ToolResultBlock `json:"toolResult,omitempty"`
}

// Kind returns the populated tag name, or "empty".
func (b ContentBlock) Kind() string {
	switch {
	case b.Text != nil:
		return "text"
	case b.Image != nil:
		return "image"
	case b.Document != nil:
		return "document"
	case b.GuardContent != nil:
		return "guardContent"
	case b.ToolUse != nil:
		return "toolUse"
	case b.ToolResult != nil:
		return "toolResult"
	default:
		return "empty"
	}
}

func (b ContentBlock) clone() ContentBlock {
	out := ContentBlock{}
	if b.Text != nil {
		text := *b.Text
		out.Text = &text
	}
	if b.Image != nil {
		image := *b.Image
		out.Image = &image
	}
	if b.Document != nil {
		document := *b.Document
		out.Document = &document
	}
	if b.GuardContent != nil {
		guard := *b.GuardContent
		out.GuardContent = &guard
	}
	if b.ToolUse != nil {
		use := b.ToolUse.clone()
		out.ToolUse = &use
	}
	if b.ToolResult != nil {
		result := b.ToolResult.Clone()
		out.ToolResult = &result
	}

	return out
}

// ImageContent is image data attached to a message.
type ImageContent struct {
	// Format is the image format, e.g. "png" or "jpeg".
	Format string `json:"format"`

	// Source carries the raw bytes.
	Source ImageSource `json:"source"`
}

// ImageSource holds the bytes of an image.
type ImageSource struct {
	Bytes []byte `json:"bytes"`
}

// DocumentContent is a document attached to a message.
type DocumentContent struct {
	// Format is the document format, e.g. "pdf" or "txt".
	Format string `json:"format"`

	// Name is the caller-facing document name.
	Name string `json:"name"`

	// Source carries the raw bytes.
	Source DocumentSource `json:"source"`
}

// DocumentSource holds the bytes of a document.
type DocumentSource struct {
	Bytes []byte `json:"bytes"`
}

// GuardContent is content submitted for guardrail evaluation.
type GuardContent struct {
	Text GuardTextContent `json:"text"`
}

// GuardTextContent is the text payload of a guard content block.
type GuardTextContent struct {
	Text       string   `json:"text"`
	Qualifiers []string `json:"qualifiers,omitempty"`
}

// ToolUseBlock is a model-issued request to invoke a named tool with
// structured input.
type ToolUseBlock struct {
	// ToolUseID uniquely identifies this tool use within the turn.
	ToolUseID string `json:"toolUseId"`

	// Name is the tool being invoked.
	Name string `json:"name"`

	// Input contains tool parameters. Intentionally flexible as
	// inputs vary by tool.
	Input map[string]any `json:"input"`
}

func (b ToolUseBlock) clone() ToolUseBlock {
	out := ToolUseBlock{ToolUseID: b.ToolUseID, Name: b.Name}
	if b.Input != nil {
		out.Input = make(map[string]any, len(b.Input))
		for k, v := range b.Input {
			out.Input[k] = v
		}
	}

	return out
}

// ToolResultStatus indicates whether a tool invocation succeeded.
type ToolResultStatus string

const (
	// ToolResultSuccess marks a successful tool invocation.
	ToolResultSuccess ToolResultStatus = "success"

	// ToolResultError marks a failed tool invocation. The error text is
	// surfaced to the model as regular result content.
	ToolResultError ToolResultStatus = "error"
)

// ToolResultBlock is the outcome of a tool invocation. It is produced by
// the invoker, never constructed by the model.
type ToolResultBlock struct {
	// ToolUseID links the result to the corresponding tool use.
	ToolUseID string `json:"toolUseId"`

	// Status indicates success or error.
	Status ToolResultStatus `json:"status"`

	// Content is the tool output. Handlers registered for the
	// after-tool-call event may rewrite it in place before the result
	// is appended to history.
	Content []ToolResultContent `json:"content"`
}

// Clone returns a deep copy of the result block.
func (b ToolResultBlock) Clone() ToolResultBlock {
	out := ToolResultBlock{ToolUseID: b.ToolUseID, Status: b.Status}
	if b.Content != nil {
		out.Content = make([]ToolResultContent, len(b.Content))
		copy(out.Content, b.Content)
	}

	return out
}

// ToolResultContent is one entry of tool output: either text or an
// arbitrary JSON value.
type ToolResultContent struct {
	Text string `json:"text,omitempty"`
	JSON any    `json:"json,omitempty"`
}

// TextResult builds a single-entry text result content list.
func TextResult(format string, args ...any) []ToolResultContent {
	return []ToolResultContent{{Text: fmt.Sprintf(format, args...)}}
}
