package messages

// StopReason is the enumerated signal indicating why a model or loop turn
// ended.
type StopReason string

const (
	// StopEndTurn marks normal completion of a turn.
	StopEndTurn StopReason = "end_turn"

	// StopToolUse marks a turn ending with tool invocation. The event
	// loop also reports this when a return-direct tool short-circuits
	// the turn.
	StopToolUse StopReason = "tool_use"

	// StopMaxTokens marks a turn truncated by the model's token limit.
	StopMaxTokens StopReason = "max_tokens"

	// StopStopSequence marks a turn ended by a stop sequence.
	StopStopSequence StopReason = "stop_sequence"

	// StopInterrupt marks a turn suspended by a hook-raised interrupt.
	// The loop returns pending interrupts to the caller instead of a
	// final answer.
	StopInterrupt StopReason = "interrupt"
)

// Terminal reports whether the stop reason ends the agent turn without
// further model consultation or resume input.
func (r StopReason) Terminal() bool {
	switch r {
	case StopEndTurn, StopMaxTokens, StopStopSequence:
		return true
	default:
		return false
	}
}
