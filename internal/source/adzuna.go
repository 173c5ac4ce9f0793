package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/jimezsa/jobsink/internal/models"
	"github.com/jimezsa/jobsink/internal/network"
)

const adzunaBaseURL = "https://api.adzuna.com/v1/api/jobs"

// ErrAdzunaCredentials is raised when the required API credentials are
// absent. This is the one configuration failure that aborts a run.
var ErrAdzunaCredentials = errors.New("missing ADZUNA_APP_ID or ADZUNA_APP_KEY")

type Adzuna struct {
	client *network.Client
	appID  string
	appKey string
}

func NewAdzuna(client *network.Client) *Adzuna {
	return &Adzuna{
		client: client,
		appID:  strings.TrimSpace(os.Getenv("ADZUNA_APP_ID")),
		appKey: strings.TrimSpace(os.Getenv("ADZUNA_APP_KEY")),
	}
}

func (a *Adzuna) Name() string {
	return SourceAdzuna
}

func (a *Adzuna) Fetch(ctx context.Context, params FetchParams) (FetchResult, error) {
	if a.appID == "" || a.appKey == "" {
		return FetchResult{}, ErrAdzunaCredentials
	}

	pages := params.Pages
	if pages < 1 {
		pages = 1
	}

	var result FetchResult
	for page := 1; page <= pages; page++ {
		target := a.pageURL(page, params)

		var response adzunaResponse
		if err := fetchJSON(ctx, a.client, target, &response); err != nil {
			result.Failures = append(result.Failures, UnitFailure{
				Source: SourceAdzuna,
				Unit:   fmt.Sprintf("page %d", page),
				Err:    err,
			})
			continue
		}

		result.Records = append(result.Records, adzunaRecords(response)...)
	}
	return result, nil
}

func (a *Adzuna) pageURL(page int, params FetchParams) string {
	values := url.Values{}
	values.Set("app_id", a.appID)
	values.Set("app_key", a.appKey)
	values.Set("results_per_page", "50")
	values.Set("what", strings.TrimSpace(params.Query))
	values.Set("content-type", "application/json")
	if where := strings.TrimSpace(params.Where); where != "" {
		values.Set("where", where)
	}
	return fmt.Sprintf("%s/us/search/%d?%s", adzunaBaseURL, page, values.Encode())
}

type adzunaResponse struct {
	Results []adzunaJob `json:"results"`
}

type adzunaJob struct {
	ID      json.Number `json:"id"`
	Title   string      `json:"title"`
	Company struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	Description  string `json:"description"`
	RedirectURL  string `json:"redirect_url"`
	Created      string `json:"created"`
	ContractTime string `json:"contract_time"`
	Category     struct {
		Label string `json:"label"`
	} `json:"category"`
}

func adzunaRecords(response adzunaResponse) []models.RawJob {
	records := make([]models.RawJob, 0, len(response.Results))
	for _, item := range response.Results {
		title := cleanText(item.Title)
		company := cleanText(item.Company.DisplayName)
		location := cleanText(item.Location.DisplayName)
		description := cleanText(item.Description)
		applyURL := strings.TrimSpace(item.RedirectURL)

		var tags []string
		if label := cleanText(item.Category.Label); label != "" {
			tags = append(tags, label)
		}

		// Adzuna has no reliable remote flag; infer from text.
		remoteHay := strings.ToLower(title + " " + location + " " + description)

		records = append(records, models.RawJob{
			Source:       SourceAdzuna,
			SourceJobID:  item.ID.String(),
			Title:        title,
			Company:      company,
			Location:     location,
			Remote:       strings.Contains(remoteHay, "remote"),
			Contract:     strings.Contains(strings.ToLower(item.ContractTime), "contract"),
			Tags:         tags,
			URL:          applyURL,
			ApplyURL:     applyURL,
			OriginDomain: originDomain(applyURL),
			Description:  description,
			PostedAt:     parsePostedAt(item.Created),
		})
	}
	return records
}
