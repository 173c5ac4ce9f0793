package source

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/jimezsa/jobsink/internal/models"
	"github.com/jimezsa/jobsink/internal/network"
)

const remotiveURL = "https://remotive.com/api/remote-jobs"

type Remotive struct {
	client *network.Client
}

func NewRemotive(client *network.Client) *Remotive {
	return &Remotive{client: client}
}

func (r *Remotive) Name() string {
	return SourceRemotive
}

// Fetch uses Remotive's server-side search, so no client-side query
// filter is applied.
func (r *Remotive) Fetch(ctx context.Context, params FetchParams) (FetchResult, error) {
	target := remotiveURL
	if query := strings.TrimSpace(params.Query); query != "" {
		target += "?search=" + url.QueryEscape(query)
	}

	var response remotiveResponse
	if err := fetchJSON(ctx, r.client, target, &response); err != nil {
		return FetchResult{
			Failures: []UnitFailure{{Source: SourceRemotive, Unit: "feed", Err: err}},
		}, nil
	}

	return FetchResult{Records: remotiveRecords(response, params.Limit)}, nil
}

type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

type remotiveJob struct {
	ID              json.Number `json:"id"`
	Title           string      `json:"title"`
	CompanyName     string      `json:"company_name"`
	URL             string      `json:"url"`
	Category        string      `json:"category"`
	Tags            []string    `json:"tags"`
	JobType         string      `json:"job_type"`
	PublicationDate string      `json:"publication_date"`
	Description     string      `json:"description"`
}

func remotiveRecords(response remotiveResponse, limit int) []models.RawJob {
	var records []models.RawJob
	for _, item := range response.Jobs {
		if capReached(len(records), limit) {
			break
		}

		applyURL := strings.TrimSpace(item.URL)

		var tags []string
		if category := cleanText(item.Category); category != "" {
			tags = append(tags, category)
		}
		for _, tag := range item.Tags {
			if tag = cleanText(tag); tag != "" {
				tags = append(tags, tag)
			}
		}

		sourceID := item.ID.String()
		if sourceID == "" {
			sourceID = applyURL
		}

		records = append(records, models.RawJob{
			Source:       SourceRemotive,
			SourceJobID:  sourceID,
			Title:        cleanText(item.Title),
			Company:      cleanText(item.CompanyName),
			Location:     "Remote",
			Remote:       true,
			Contract:     strings.Contains(strings.ToLower(item.JobType), "contract"),
			Tags:         tags,
			URL:          applyURL,
			ApplyURL:     applyURL,
			OriginDomain: originDomain(applyURL),
			Description:  cleanText(item.Description),
			PostedAt:     parsePostedAt(item.PublicationDate),
		})
	}
	return records
}
