package source

import (
	"context"

	"github.com/jimezsa/jobsink/internal/models"
	"github.com/jimezsa/jobsink/internal/network"
)

const arbeitnowURL = "https://www.arbeitnow.com/api/job-board-api"

type Arbeitnow struct {
	client *network.Client
}

func NewArbeitnow(client *network.Client) *Arbeitnow {
	return &Arbeitnow{client: client}
}

func (a *Arbeitnow) Name() string {
	return SourceArbeitnow
}

// Fetch walks the API's next-page links until the limit is reached or
// the feed runs out. The upstream has no server-side search, so the
// query filter runs per item; the cap applies mid-page.
func (a *Arbeitnow) Fetch(ctx context.Context, params FetchParams) (FetchResult, error) {
	var result FetchResult

	next := arbeitnowURL
	for next != "" && !capReached(len(result.Records), params.Limit) {
		var response arbeitnowResponse
		if err := fetchJSON(ctx, a.client, next, &response); err != nil {
			result.Failures = append(result.Failures, UnitFailure{
				Source: SourceArbeitnow,
				Unit:   next,
				Err:    err,
			})
			break
		}

		for _, item := range response.Data {
			record, ok := arbeitnowRecord(item, params.Query)
			if !ok {
				continue
			}
			result.Records = append(result.Records, record)
			if capReached(len(result.Records), params.Limit) {
				break
			}
		}

		next = response.Links.Next
	}

	return result, nil
}

type arbeitnowResponse struct {
	Data  []arbeitnowJob `json:"data"`
	Links struct {
		Next string `json:"next"`
	} `json:"links"`
}

type arbeitnowJob struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Remote      bool   `json:"remote"`
	Location    string `json:"location"`
}

func arbeitnowRecord(item arbeitnowJob, query string) (models.RawJob, bool) {
	title := cleanText(item.Title)
	company := cleanText(item.CompanyName)
	description := cleanText(item.Description)

	if !matchesQuery(query, title, company, description) {
		return models.RawJob{}, false
	}

	location := cleanText(item.Location)
	var tags []string
	if item.Remote {
		location = "Remote"
		tags = []string{"remote"}
	}

	sourceID := item.Slug
	if sourceID == "" {
		sourceID = item.URL
	}

	return models.RawJob{
		Source:       SourceArbeitnow,
		SourceJobID:  sourceID,
		Title:        title,
		Company:      company,
		Location:     location,
		Remote:       item.Remote,
		Tags:         tags,
		URL:          item.URL,
		ApplyURL:     item.URL,
		OriginDomain: originDomain(item.URL),
		Description:  description,
	}, true
}
