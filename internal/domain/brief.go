package domain

import "time"

// Brief is one content idea sourced from the external brief database.
// Briefs are immutable once fetched; the source owns their lifecycle.
type Brief struct {
	PageID         string    `json:"page_id"`
	Topic          string    `json:"topic"`
	Pillar         string    `json:"pillar,omitempty"`
	Platforms      []string  `json:"platforms,omitempty"`
	PostTypes      []string  `json:"post_type,omitempty"`
	Status         string    `json:"status,omitempty"`
	CreatedTime    time.Time `json:"created_time,omitempty"`
	LastEditedTime time.Time `json:"last_edited_time,omitempty"`
}
