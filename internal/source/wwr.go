package source

import (
	"context"
	"strings"

	"github.com/jimezsa/jobsink/internal/models"
	"github.com/jimezsa/jobsink/internal/network"
	"github.com/mmcdole/gofeed"
)

const wwrFeedURL = "https://weworkremotely.com/remote-jobs.rss"

// WWR reads the We Work Remotely RSS feed and then fetches each
// listing's detail page for the full description. A failed detail fetch
// degrades to the feed summary; it never drops the item.
type WWR struct {
	client *network.Client
}

func NewWWR(client *network.Client) *WWR {
	return &WWR{client: client}
}

func (w *WWR) Name() string {
	return SourceWWR
}

func (w *WWR) Fetch(ctx context.Context, params FetchParams) (FetchResult, error) {
	body, err := fetchBody(ctx, w.client, wwrFeedURL, map[string]string{
		"accept": "application/rss+xml, application/xml;q=0.9, */*;q=0.8",
	})
	if err != nil {
		return FetchResult{
			Failures: []UnitFailure{{Source: SourceWWR, Unit: "feed", Err: err}},
		}, nil
	}

	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return FetchResult{
			Failures: []UnitFailure{{Source: SourceWWR, Unit: "feed", Err: err}},
		}, nil
	}

	var result FetchResult
	for _, item := range feed.Items {
		if capReached(len(result.Records), params.Limit) {
			break
		}

		record, ok := wwrRecord(item, params.Query)
		if !ok {
			continue
		}

		if description, derr := w.fetchDescription(ctx, record.URL); derr != nil {
			result.Failures = append(result.Failures, UnitFailure{
				Source: SourceWWR,
				Unit:   record.URL,
				Err:    derr,
			})
		} else if description != "" {
			record.Description = description
		}

		result.Records = append(result.Records, record)
	}

	return result, nil
}

func (w *WWR) fetchDescription(ctx context.Context, listingURL string) (string, error) {
	if listingURL == "" {
		return "", nil
	}
	doc, err := fetchDocument(ctx, w.client, listingURL)
	if err != nil {
		return "", err
	}
	return cleanText(doc.Find("div.listing-container").Text()), nil
}

func wwrRecord(item *gofeed.Item, query string) (models.RawJob, bool) {
	company, title := splitWWRTitle(item.Title)
	link := strings.TrimSpace(item.Link)
	summary := cleanText(stripTags(item.Description))

	if !matchesQuery(query, title, company, summary) {
		return models.RawJob{}, false
	}

	sourceID := strings.TrimSpace(item.GUID)
	if sourceID == "" {
		sourceID = link
	}

	record := models.RawJob{
		Source:       SourceWWR,
		SourceJobID:  sourceID,
		Title:        title,
		Company:      company,
		Location:     "Remote",
		Remote:       true,
		URL:          link,
		ApplyURL:     link,
		OriginDomain: originDomain(link),
		Description:  summary,
	}
	if item.PublishedParsed != nil {
		record.PostedAt = item.PublishedParsed.UTC()
	}
	return record, true
}

// splitWWRTitle handles the feed's "Company: Role" title convention.
func splitWWRTitle(raw string) (company, title string) {
	raw = cleanText(raw)
	if at := strings.Index(raw, ":"); at >= 0 {
		return cleanText(raw[:at]), cleanText(raw[at+1:])
	}
	return "", raw
}

func stripTags(value string) string {
	var builder strings.Builder
	inTag := false
	for _, r := range value {
		switch {
		case r == '<':
			inTag = true
			builder.WriteRune(' ')
		case r == '>':
			inTag = false
		case !inTag:
			builder.WriteRune(r)
		}
	}
	return builder.String()
}
