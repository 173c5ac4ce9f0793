package source

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestAdzunaMissingCredentials(t *testing.T) {
	os.Unsetenv("ADZUNA_APP_ID")
	os.Unsetenv("ADZUNA_APP_KEY")

	adapter := NewAdzuna(nil)
	_, err := adapter.Fetch(context.Background(), FetchParams{})
	if !errors.Is(err, ErrAdzunaCredentials) {
		t.Fatalf("expected ErrAdzunaCredentials, got %v", err)
	}
}

func TestAdzunaPageURL(t *testing.T) {
	adapter := &Adzuna{appID: "id", appKey: "key"}

	target := adapter.pageURL(2, FetchParams{Query: "java developer", Where: "Austin"})
	for _, fragment := range []string{
		"/jobs/us/search/2?",
		"app_id=id",
		"app_key=key",
		"results_per_page=50",
		"what=java+developer",
		"where=Austin",
	} {
		if !strings.Contains(target, fragment) {
			t.Fatalf("page URL missing %q: %s", fragment, target)
		}
	}

	noWhere := adapter.pageURL(1, FetchParams{Query: "java"})
	if strings.Contains(noWhere, "where=") {
		t.Fatalf("empty where must be omitted: %s", noWhere)
	}
}

func TestAdzunaRecords(t *testing.T) {
	payload := `{
		"results": [
			{
				"id": 123456,
				"title": "Senior Java  Developer",
				"company": {"display_name": "Acme Corp"},
				"location": {"display_name": "Austin, TX"},
				"description": "Build Spring services. Remote friendly.",
				"redirect_url": "https://www.adzuna.com/land/ad/123456",
				"created": "2024-03-01T12:00:00Z",
				"contract_time": "full_time",
				"category": {"label": "IT Jobs"}
			}
		]
	}`

	var response adzunaResponse
	if err := json.Unmarshal([]byte(payload), &response); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	records := adzunaRecords(response)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	job := records[0]
	if job.Source != SourceAdzuna {
		t.Fatalf("source = %q", job.Source)
	}
	if job.SourceJobID != "123456" {
		t.Fatalf("source id = %q", job.SourceJobID)
	}
	if job.Title != "Senior Java Developer" {
		t.Fatalf("title not cleaned: %q", job.Title)
	}
	if job.Company != "Acme Corp" || job.Location != "Austin, TX" {
		t.Fatalf("company/location = %q/%q", job.Company, job.Location)
	}
	if !job.Remote {
		t.Fatalf("remote should be inferred from the description text")
	}
	if job.Contract {
		t.Fatalf("full_time must not mark the job as contract")
	}
	if len(job.Tags) != 1 || job.Tags[0] != "IT Jobs" {
		t.Fatalf("tags = %v", job.Tags)
	}
	if job.OriginDomain != "adzuna.com" {
		t.Fatalf("origin domain = %q", job.OriginDomain)
	}
	want := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if !job.PostedAt.Equal(want) {
		t.Fatalf("posted_at = %v, want %v", job.PostedAt, want)
	}
}
