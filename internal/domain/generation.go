package domain

import "fmt"

// FailureKind is a closed enum of content validation failures. Retry
// dispatch matches on the kind structurally instead of sniffing reason
// strings; the reason text is for humans and API responses only.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureEmpty
	FailureTooLong
	FailureTooShort
	FailureForbiddenSymbol
	FailureIncomplete
	// FailureGeneration marks an upstream model failure (no text produced
	// after all attempts), as opposed to a content rule violation.
	FailureGeneration
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureEmpty:
		return "empty"
	case FailureTooLong:
		return "too_long"
	case FailureTooShort:
		return "too_short"
	case FailureForbiddenSymbol:
		return "forbidden_symbol"
	case FailureIncomplete:
		return "incomplete"
	case FailureGeneration:
		return "generation_failed"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// Validation is the outcome of checking generated text against content
// rules. Failures are reported, never raised.
type Validation struct {
	Valid  bool
	Kind   FailureKind
	Reason string
}

// GenerationResult is the unit returned by a generation path.
//
// Invariant: Valid implies Text is non-empty, length-compliant and
// emoji-free. Attempts is 1 or 2; 2 only after a strict-length retry.
type GenerationResult struct {
	Text     string         `json:"generated_post,omitempty"`
	Valid    bool           `json:"valid"`
	Kind     FailureKind    `json:"-"`
	Error    string         `json:"error,omitempty"`
	Attempts int            `json:"attempts"`
	Prompt   string         `json:"prompt_used,omitempty"`
	Mode     Mode           `json:"mode"`
	Brief    *Brief         `json:"brief,omitempty"`
	Analysis *StyleAnalysis `json:"analysis,omitempty"`
	Topic    string         `json:"topic,omitempty"`
	// ConnectionType labels the audience for connection-mode posts.
	ConnectionType string `json:"connection_type,omitempty"`
}

// PublishResult reports one publish attempt against the social network.
// Error detail is preserved verbatim from the collaborator when available.
type PublishResult struct {
	Success   bool   `json:"success"`
	DraftID   string `json:"post_id,omitempty"`
	ThreadID  string `json:"thread_id,omitempty"`
	ThreadURL string `json:"thread_url,omitempty"`
	Error     string `json:"error,omitempty"`
}
