package interrupts

import (
	"encoding/json"

	"github.com/cagataycali/strands-go/pkg/stranderrs"
)

// Response is the payload supplied by a caller to resolve one pending
// interrupt.
type Response struct {
	// InterruptID identifies the pending interrupt to resolve.
	InterruptID string `json:"interruptId"`

	// Response is handed back to the hook as the return value of its
	// original Interrupt call.
	Response any `json:"response"`
}

// ResponseEnvelope is the wire shape of one resume entry:
// {"interruptResponse": {"interruptId": ..., "response": ...}}.
type ResponseEnvelope struct {
	InterruptResponse Response `json:"interruptResponse"`
}

// Responses unwraps a sequence of envelopes, validating that every entry
// carries an interrupt id.
func Responses(envelopes []ResponseEnvelope) ([]Response, error) {
	out := make([]Response, 0, len(envelopes))
	for _, envelope := range envelopes {
		if envelope.InterruptResponse.InterruptID == "" {
			return nil, stranderrs.NewValidationError(
				stranderrs.ErrCodeInvalidFormat,
				"interrupt response missing interruptId",
				"interruptId", nil,
			)
		}
		out = append(out, envelope.InterruptResponse)
	}

	return out, nil
}

// ParseResponses decodes resume input from its JSON wire form.
func ParseResponses(data []byte) ([]Response, error) {
	var envelopes []ResponseEnvelope
	if err := json.Unmarshal(data, &envelopes); err != nil {
		return nil, stranderrs.NewValidationError(
			stranderrs.ErrCodeInvalidFormat,
			"malformed interrupt response payload",
			"interruptResponse", string(data),
		)
	}

	return Responses(envelopes)
}
