package source

import (
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

func TestSplitWWRTitle(t *testing.T) {
	cases := []struct {
		input   string
		company string
		title   string
	}{
		{"Acme: Senior Backend Engineer", "Acme", "Senior Backend Engineer"},
		{"Acme Corp:  DevOps  Engineer ", "Acme Corp", "DevOps Engineer"},
		{"Acme: Engineer: Platform", "Acme", "Engineer: Platform"},
		{"Just A Title", "", "Just A Title"},
	}
	for _, tc := range cases {
		company, title := splitWWRTitle(tc.input)
		if company != tc.company || title != tc.title {
			t.Fatalf("splitWWRTitle(%q) = %q/%q, want %q/%q",
				tc.input, company, title, tc.company, tc.title)
		}
	}
}

func TestStripTags(t *testing.T) {
	input := `<p>We need a <strong>Java</strong> developer.</p>`
	got := cleanText(stripTags(input))
	if got != "We need a Java developer." {
		t.Fatalf("stripTags = %q", got)
	}
}

func TestWWRRecord(t *testing.T) {
	published := time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)
	item := &gofeed.Item{
		Title:           "Acme: Senior Java Engineer",
		Link:            "https://weworkremotely.com/remote-jobs/acme-senior-java-engineer",
		GUID:            "https://weworkremotely.com/remote-jobs/acme-senior-java-engineer",
		Description:     "<p>Build Spring services with Kafka.</p>",
		PublishedParsed: &published,
	}

	record, ok := wwrRecord(item, "")
	if !ok {
		t.Fatalf("record dropped unexpectedly")
	}
	if record.Source != SourceWWR {
		t.Fatalf("source = %q", record.Source)
	}
	if record.Company != "Acme" || record.Title != "Senior Java Engineer" {
		t.Fatalf("company/title = %q/%q", record.Company, record.Title)
	}
	if !record.Remote || record.Location != "Remote" {
		t.Fatalf("wwr jobs are always remote")
	}
	if record.Description != "Build Spring services with Kafka." {
		t.Fatalf("feed summary not stripped: %q", record.Description)
	}
	if record.OriginDomain != "weworkremotely.com" {
		t.Fatalf("origin domain = %q", record.OriginDomain)
	}
	if !record.PostedAt.Equal(published) {
		t.Fatalf("posted_at = %v, want %v", record.PostedAt, published)
	}
}

func TestWWRRecordQueryFilter(t *testing.T) {
	item := &gofeed.Item{
		Title:       "Acme: Rails Engineer",
		Link:        "https://weworkremotely.com/remote-jobs/x",
		Description: "Ruby on Rails",
	}
	if _, ok := wwrRecord(item, "java"); ok {
		t.Fatalf("non-matching item should be dropped")
	}
	if _, ok := wwrRecord(item, "rails"); !ok {
		t.Fatalf("matching item should be kept")
	}
}

func TestWWRRecordMissingGUID(t *testing.T) {
	item := &gofeed.Item{
		Title: "Acme: Engineer",
		Link:  "https://weworkremotely.com/remote-jobs/y",
	}
	record, ok := wwrRecord(item, "")
	if !ok {
		t.Fatalf("record dropped unexpectedly")
	}
	if record.SourceJobID != "https://weworkremotely.com/remote-jobs/y" {
		t.Fatalf("source id should fall back to the link, got %q", record.SourceJobID)
	}
	if !record.PostedAt.IsZero() {
		t.Fatalf("missing publish date should leave posted_at zero")
	}
}
