package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jimezsa/jobsink/internal/models"
	"github.com/jimezsa/jobsink/internal/network"
)

const leverBaseURL = "https://api.lever.co/v0/postings"

type Lever struct {
	client *network.Client
}

func NewLever(client *network.Client) *Lever {
	return &Lever{client: client}
}

func (l *Lever) Name() string {
	return SourceLever
}

func (l *Lever) Fetch(ctx context.Context, params FetchParams) (FetchResult, error) {
	var result FetchResult

	for _, company := range params.Companies {
		slug := strings.TrimSpace(company.Lever)
		if slug == "" {
			continue
		}

		displayName := strings.TrimSpace(company.Name)
		if displayName == "" {
			displayName = slug
		}

		target := fmt.Sprintf("%s/%s?mode=json", leverBaseURL, slug)
		var postings []leverJob
		if err := fetchJSON(ctx, l.client, target, &postings); err != nil {
			result.Failures = append(result.Failures, UnitFailure{
				Source: SourceLever,
				Unit:   slug,
				Err:    err,
			})
			continue
		}

		result.Records = append(result.Records,
			leverRecords(postings, displayName, params.Query, params.Limit)...)
	}

	return result, nil
}

type leverJob struct {
	ID               string `json:"id"`
	Text             string `json:"text"`
	HostedURL        string `json:"hostedUrl"`
	CreatedAt        int64  `json:"createdAt"`
	DescriptionPlain string `json:"descriptionPlain"`
	Description      string `json:"description"`
	Categories       struct {
		Team       string `json:"team"`
		Commitment string `json:"commitment"`
		Location   string `json:"location"`
		Department string `json:"department"`
	} `json:"categories"`
}

func leverRecords(postings []leverJob, company, query string, limit int) []models.RawJob {
	var records []models.RawJob
	for _, item := range postings {
		if capReached(len(records), limit) {
			break
		}

		title := cleanText(item.Text)
		description := cleanText(item.DescriptionPlain)
		if description == "" {
			description = cleanText(item.Description)
		}
		if !matchesQuery(query, title, company, description) {
			continue
		}

		var tags []string
		for _, tag := range []string{
			item.Categories.Team,
			item.Categories.Commitment,
			item.Categories.Location,
			item.Categories.Department,
		} {
			if tag = cleanText(tag); tag != "" {
				tags = append(tags, tag)
			}
		}

		// createdAt is milliseconds since epoch.
		var postedAt time.Time
		if item.CreatedAt > 0 {
			postedAt = time.UnixMilli(item.CreatedAt).UTC()
		}

		applyURL := strings.TrimSpace(item.HostedURL)
		records = append(records, models.RawJob{
			Source:       SourceLever,
			SourceJobID:  item.ID,
			Title:        title,
			Company:      company,
			Location:     cleanText(item.Categories.Location),
			Contract:     strings.Contains(strings.ToLower(strings.Join(tags, " ")), "contract"),
			Tags:         tags,
			URL:          applyURL,
			ApplyURL:     applyURL,
			OriginDomain: originDomain(applyURL),
			Description:  description,
			PostedAt:     postedAt,
		})
	}
	return records
}
