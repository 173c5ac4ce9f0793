package source

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jimezsa/jobsink/internal/models"
	"github.com/jimezsa/jobsink/internal/network"
)

const remoteokURL = "https://remoteok.com/api"

type RemoteOK struct {
	client *network.Client
}

func NewRemoteOK(client *network.Client) *RemoteOK {
	return &RemoteOK{client: client}
}

func (r *RemoteOK) Name() string {
	return SourceRemoteOK
}

func (r *RemoteOK) Fetch(ctx context.Context, params FetchParams) (FetchResult, error) {
	body, err := fetchBody(ctx, r.client, remoteokURL, map[string]string{
		"accept": "application/json",
	})
	if err != nil {
		return FetchResult{
			Failures: []UnitFailure{{Source: SourceRemoteOK, Unit: "feed", Err: err}},
		}, nil
	}

	// The feed is an array whose first element is legal metadata, and
	// individual elements occasionally carry surprise field types, so
	// items are decoded one by one and bad ones dropped.
	var elements []json.RawMessage
	if err := json.Unmarshal(body, &elements); err != nil {
		return FetchResult{
			Failures: []UnitFailure{{Source: SourceRemoteOK, Unit: "feed", Err: err}},
		}, nil
	}

	var result FetchResult
	for _, element := range elements {
		if capReached(len(result.Records), params.Limit) {
			break
		}

		var item remoteokJob
		if err := json.Unmarshal(element, &item); err != nil {
			continue
		}
		if item.Position == "" || item.ID.String() == "" {
			continue
		}

		record, ok := remoteokRecord(item, params.Query)
		if !ok {
			continue
		}
		result.Records = append(result.Records, record)
	}

	return result, nil
}

type remoteokJob struct {
	ID          json.Number `json:"id"`
	Position    string      `json:"position"`
	Company     string      `json:"company"`
	Location    string      `json:"location"`
	Tags        []string    `json:"tags"`
	URL         string      `json:"url"`
	ApplyURL    string      `json:"apply_url"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
}

func remoteokRecord(item remoteokJob, query string) (models.RawJob, bool) {
	title := cleanText(item.Position)
	company := cleanText(item.Company)
	description := cleanText(item.Description)

	if !matchesQuery(query, title, company, description) {
		return models.RawJob{}, false
	}

	location := cleanText(item.Location)
	if location == "" {
		location = "Remote"
	}

	var tags []string
	contract := false
	for _, tag := range item.Tags {
		tag = cleanText(tag)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
		switch strings.ToLower(tag) {
		case "contract", "freelance":
			contract = true
		}
	}

	applyURL := strings.TrimSpace(item.ApplyURL)
	listingURL := strings.TrimSpace(item.URL)
	if applyURL == "" {
		applyURL = listingURL
	}

	return models.RawJob{
		Source:       SourceRemoteOK,
		SourceJobID:  item.ID.String(),
		Title:        title,
		Company:      company,
		Location:     location,
		Remote:       true,
		Contract:     contract,
		Tags:         tags,
		URL:          listingURL,
		ApplyURL:     applyURL,
		OriginDomain: originDomain(applyURL),
		Description:  description,
		PostedAt:     parsePostedAt(item.Date),
	}, true
}
