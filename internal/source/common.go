package source

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/jobsink/internal/network"
)

func fetchBody(ctx context.Context, client *network.Client, target string, headers map[string]string) ([]byte, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	applyHeaders(req, headers)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("http %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func fetchJSON(ctx context.Context, client *network.Client, target string, out any) error {
	body, err := fetchBody(ctx, client, target, map[string]string{
		"accept": "application/json",
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

func fetchDocument(ctx context.Context, client *network.Client, target string) (*goquery.Document, error) {
	body, err := fetchBody(ctx, client, target, map[string]string{
		"accept": "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	})
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(string(body)))
}

func applyHeaders(req *fhttp.Request, headers map[string]string) {
	if headers == nil {
		headers = map[string]string{}
	}
	if _, ok := headers["accept-language"]; !ok {
		headers["accept-language"] = "en-US,en;q=0.9"
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
}

func cleanText(value string) string {
	value = html.UnescapeString(value)
	return strings.Join(strings.Fields(value), " ")
}

// originDomain derives the host of a listing URL: lower-cased, leading
// "www." stripped, empty on absent or unparsable input. Every adapter
// applies this same rule to whatever URL it extracts.
func originDomain(rawURL string) string {
	if strings.TrimSpace(rawURL) == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
}

// matchesQuery is the client-side fallback for upstreams without
// server-side search: a case-insensitive substring match against title,
// company and description. An empty query matches everything.
func matchesQuery(query, title, company, description string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	hay := strings.ToLower(title + " " + company + " " + description)
	return strings.Contains(hay, query)
}

// parsePostedAt tries the timestamp layouts seen across upstreams and
// degrades to the zero time instead of failing.
func parsePostedAt(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
		time.RFC1123Z,
		time.RFC1123,
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func capReached(count, limit int) bool {
	return limit > 0 && count >= limit
}
