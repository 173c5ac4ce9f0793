package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jimezsa/jobsink/internal/models"
	"github.com/jimezsa/jobsink/internal/network"
)

const greenhouseBaseURL = "https://boards-api.greenhouse.io/v1/boards"

type Greenhouse struct {
	client *network.Client
}

func NewGreenhouse(client *network.Client) *Greenhouse {
	return &Greenhouse{client: client}
}

func (g *Greenhouse) Name() string {
	return SourceGreenhouse
}

// Fetch pulls each roster company's Greenhouse board. A company without
// a greenhouse slug is skipped silently; a board that fails to fetch
// contributes zero records and a unit failure.
func (g *Greenhouse) Fetch(ctx context.Context, params FetchParams) (FetchResult, error) {
	var result FetchResult

	for _, company := range params.Companies {
		board := strings.TrimSpace(company.Greenhouse)
		if board == "" {
			continue
		}

		displayName := strings.TrimSpace(company.Name)
		if displayName == "" {
			displayName = board
		}

		target := fmt.Sprintf("%s/%s/jobs?content=true", greenhouseBaseURL, board)
		var response greenhouseResponse
		if err := fetchJSON(ctx, g.client, target, &response); err != nil {
			result.Failures = append(result.Failures, UnitFailure{
				Source: SourceGreenhouse,
				Unit:   board,
				Err:    err,
			})
			continue
		}

		result.Records = append(result.Records,
			greenhouseRecords(response, displayName, params.Query, params.Limit)...)
	}

	return result, nil
}

type greenhouseResponse struct {
	Jobs []greenhouseJob `json:"jobs"`
}

type greenhouseJob struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	AbsoluteURL string      `json:"absolute_url"`
	Content     string      `json:"content"`
	UpdatedAt   string      `json:"updated_at"`
	CreatedAt   string      `json:"created_at"`
	Location    struct {
		Name string `json:"name"`
	} `json:"location"`
	Departments []greenhouseNamed `json:"departments"`
	Offices     []greenhouseNamed `json:"offices"`
}

type greenhouseNamed struct {
	Name string `json:"name"`
}

func greenhouseRecords(response greenhouseResponse, company, query string, limit int) []models.RawJob {
	var records []models.RawJob
	for _, item := range response.Jobs {
		if capReached(len(records), limit) {
			break
		}

		title := cleanText(item.Title)
		description := cleanText(item.Content)
		if !matchesQuery(query, title, company, description) {
			continue
		}

		timestamp := item.UpdatedAt
		if timestamp == "" {
			timestamp = item.CreatedAt
		}

		tags := namedTags(item.Departments, 3)
		tags = append(tags, namedTags(item.Offices, 3)...)

		applyURL := strings.TrimSpace(item.AbsoluteURL)
		records = append(records, models.RawJob{
			Source:       SourceGreenhouse,
			SourceJobID:  item.ID.String(),
			Title:        title,
			Company:      company,
			Location:     cleanText(item.Location.Name),
			Tags:         tags,
			URL:          applyURL,
			ApplyURL:     applyURL,
			OriginDomain: originDomain(applyURL),
			Description:  description,
			PostedAt:     parsePostedAt(timestamp),
		})
	}
	return records
}

func namedTags(items []greenhouseNamed, max int) []string {
	var tags []string
	for _, item := range items {
		if len(tags) >= max {
			break
		}
		if name := cleanText(item.Name); name != "" {
			tags = append(tags, name)
		}
	}
	return tags
}
