package models

import "time"

// Job is the canonical, source-agnostic posting persisted by the store.
// A zero PostedAt means the upstream never supplied a usable timestamp.
type Job struct {
	ID                 int64     `json:"id,omitempty"`
	Source             string    `json:"source"`
	SourceJobID        string    `json:"source_job_id,omitempty"`
	Title              string    `json:"title"`
	Company            string    `json:"company"`
	Location           string    `json:"location,omitempty"`
	Remote             bool      `json:"remote"`
	Contract           bool      `json:"contract"`
	Tags               []string  `json:"tags,omitempty"`
	URL                string    `json:"url,omitempty"`
	ApplyURL           string    `json:"apply_url,omitempty"`
	OriginDomain       string    `json:"origin_domain,omitempty"`
	Description        string    `json:"description,omitempty"`
	DescriptionSnippet string    `json:"description_snippet,omitempty"`
	PostedAt           time.Time `json:"posted_at,omitempty"`
	Fingerprint        string    `json:"fingerprint,omitempty"`
	CreatedAt          time.Time `json:"created_at,omitempty"`
	UpdatedAt          time.Time `json:"updated_at,omitempty"`
}
