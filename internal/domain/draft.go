package domain

import "time"

// Status is a draft's position in the approval workflow.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusPublished Status = "published"
)

// Valid reports whether s is a known workflow status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusPublished:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted from s.
func (s Status) Terminal() bool {
	return s == StatusPublished || s == StatusRejected
}

// CanTransitionTo reports whether the workflow permits moving from s to
// next. Published and rejected are terminal; re-approval of an approved
// draft is the only self-transition allowed.
func (s Status) CanTransitionTo(next Status) bool {
	if s.Terminal() {
		return false
	}
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected || next == StatusPublished
	case StatusApproved:
		return next == StatusApproved || next == StatusPublished
	}
	return false
}

// Mode tags how a draft's text was generated.
type Mode string

const (
	ModeBriefs     Mode = "briefs"
	ModeAnalysis   Mode = "analysis"
	ModeConnection Mode = "connection"
)

// Valid reports whether m is a known generation mode.
func (m Mode) Valid() bool {
	return m == ModeBriefs || m == ModeAnalysis || m == ModeConnection
}

// Draft is a generated post tracked through the approval workflow.
// Metadata carries a snapshot of the originating brief or analysis so the
// publish path can re-derive context without re-fetching sources.
type Draft struct {
	ID          string         `json:"id"`
	Text        string         `json:"post_text"`
	Mode        Mode           `json:"mode"`
	Status      Status         `json:"status"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	ApprovedAt  *time.Time     `json:"approved_at,omitempty"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	ThreadID    *string        `json:"thread_id,omitempty"`
	ThreadURL   *string        `json:"thread_url,omitempty"`
}
