package ingest

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"strings"

	"github.com/jimezsa/jobsink/internal/models"
)

// SnippetLimit is the maximum snippet length in runes before truncation.
const SnippetLimit = 300

const unknownField = "Unknown"

// CleanText collapses consecutive whitespace to single spaces and trims.
func CleanText(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// OriginDomain extracts the host of a listing URL, lower-cased, with a
// leading "www." stripped. Empty when the URL is absent or unparsable.
func OriginDomain(rawURL string) string {
	if strings.TrimSpace(rawURL) == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Host)
	return strings.TrimPrefix(host, "www.")
}

// NormalizeLocation lower-cases, trims and folds the common United States
// spellings into "us" so that the same place fingerprints identically
// across sources.
func NormalizeLocation(location string) string {
	location = strings.ToLower(CleanText(location))
	location = strings.ReplaceAll(location, "united states", "us")
	location = strings.ReplaceAll(location, "usa", "us")
	return location
}

// Fingerprint is the sole identity key for a posting: a sha1 over the
// pipe-joined normalized (title, company, location, origin domain) tuple.
// Source and tags never participate.
func Fingerprint(title, company, location, originDomain string) string {
	base := strings.Join([]string{
		strings.ToLower(strings.TrimSpace(title)),
		strings.ToLower(strings.TrimSpace(company)),
		NormalizeLocation(location),
		strings.ToLower(strings.TrimSpace(originDomain)),
	}, "|")
	sum := sha1.Sum([]byte(base))
	return hex.EncodeToString(sum[:])
}

// Snippet truncates a description to the first 300 runes and appends a
// literal "..." only when truncation occurred.
func Snippet(description string) string {
	runes := []rune(description)
	if len(runes) <= SnippetLimit {
		return description
	}
	return string(runes[:SnippetLimit]) + "..."
}

// Normalize turns a raw adapter record into a canonical job. It never
// fails: blank required fields default to "Unknown", a single known URL
// is mirrored to its counterpart, and derived fields are recomputed only
// when the adapter did not supply them.
func Normalize(raw models.RawJob) models.Job {
	title := CleanText(raw.Title)
	if title == "" {
		title = unknownField
	}
	company := CleanText(raw.Company)
	if company == "" {
		company = unknownField
	}

	listingURL := strings.TrimSpace(raw.URL)
	applyURL := strings.TrimSpace(raw.ApplyURL)
	if listingURL == "" {
		listingURL = applyURL
	}
	if applyURL == "" {
		applyURL = listingURL
	}

	origin := strings.TrimSpace(raw.OriginDomain)
	if origin == "" {
		origin = OriginDomain(applyURL)
	}

	description := strings.TrimSpace(raw.Description)
	snippet := strings.TrimSpace(raw.DescriptionSnippet)
	if snippet == "" {
		snippet = Snippet(description)
	}

	location := CleanText(raw.Location)

	return models.Job{
		Source:             raw.Source,
		SourceJobID:        raw.SourceJobID,
		Title:              title,
		Company:            company,
		Location:           location,
		Remote:             raw.Remote,
		Contract:           raw.Contract,
		Tags:               cleanTags(raw.Tags),
		URL:                listingURL,
		ApplyURL:           applyURL,
		OriginDomain:       origin,
		Description:        description,
		DescriptionSnippet: snippet,
		PostedAt:           raw.PostedAt,
		Fingerprint:        Fingerprint(title, company, location, origin),
	}
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = CleanText(tag)
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	return out
}
