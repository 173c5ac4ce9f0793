package models

import "time"

// RawJob is the partial record emitted by a source adapter before
// normalization. Adapters whitespace-normalize every text field and fill
// whatever the upstream shape provides; the normalizer supplies defaults,
// cross-defaults the URLs and computes the fingerprint.
type RawJob struct {
	Source             string
	SourceJobID        string
	Title              string
	Company            string
	Location           string
	Remote             bool
	Contract           bool
	Tags               []string
	URL                string
	ApplyURL           string
	OriginDomain       string
	Description        string
	DescriptionSnippet string
	PostedAt           time.Time
}
