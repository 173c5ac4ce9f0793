package source

import (
	"testing"
	"time"
)

func greenhouseFixture() greenhouseResponse {
	return greenhouseResponse{Jobs: []greenhouseJob{
		{
			ID:          "4001",
			Title:       "Staff Java Engineer",
			AbsoluteURL: "https://boards.greenhouse.io/acme/jobs/4001",
			Content:     "Own our Kafka pipelines.",
			UpdatedAt:   "2024-02-15T09:00:00Z",
			CreatedAt:   "2024-01-01T09:00:00Z",
			Location:    struct {
				Name string `json:"name"`
			}{Name: "New York, NY"},
			Departments: []greenhouseNamed{{Name: "Engineering"}, {Name: "Platform"}},
			Offices:     []greenhouseNamed{{Name: "NYC"}},
		},
		{
			ID:          "4002",
			Title:       "Recruiter",
			AbsoluteURL: "https://boards.greenhouse.io/acme/jobs/4002",
			Content:     "Hire great people.",
		},
	}}
}

func TestGreenhouseRecords(t *testing.T) {
	records := greenhouseRecords(greenhouseFixture(), "Acme", "", 0)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	job := records[0]
	if job.Source != SourceGreenhouse || job.SourceJobID != "4001" {
		t.Fatalf("identity fields: %q/%q", job.Source, job.SourceJobID)
	}
	if job.Company != "Acme" {
		t.Fatalf("company should come from the roster, got %q", job.Company)
	}
	if job.Location != "New York, NY" {
		t.Fatalf("location = %q", job.Location)
	}
	if job.OriginDomain != "boards.greenhouse.io" {
		t.Fatalf("origin domain = %q", job.OriginDomain)
	}

	// updated_at wins over created_at.
	want := time.Date(2024, 2, 15, 9, 0, 0, 0, time.UTC)
	if !job.PostedAt.Equal(want) {
		t.Fatalf("posted_at = %v, want %v", job.PostedAt, want)
	}

	wantTags := []string{"Engineering", "Platform", "NYC"}
	if len(job.Tags) != len(wantTags) {
		t.Fatalf("tags = %v", job.Tags)
	}
	for i, tag := range wantTags {
		if job.Tags[i] != tag {
			t.Fatalf("tag %d = %q, want %q", i, job.Tags[i], tag)
		}
	}
}

func TestGreenhouseQueryAndLimit(t *testing.T) {
	records := greenhouseRecords(greenhouseFixture(), "Acme", "kafka", 0)
	if len(records) != 1 || records[0].SourceJobID != "4001" {
		t.Fatalf("query filter failed: %v", records)
	}

	records = greenhouseRecords(greenhouseFixture(), "Acme", "", 1)
	if len(records) != 1 {
		t.Fatalf("limit not applied, got %d records", len(records))
	}
}

func TestGreenhouseCreatedAtFallback(t *testing.T) {
	response := greenhouseResponse{Jobs: []greenhouseJob{{
		ID:        "1",
		Title:     "Dev",
		CreatedAt: "2024-01-01T09:00:00Z",
	}}}
	records := greenhouseRecords(response, "Acme", "", 0)
	if len(records) != 1 {
		t.Fatalf("expected 1 record")
	}
	want := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	if !records[0].PostedAt.Equal(want) {
		t.Fatalf("posted_at = %v, want created_at fallback %v", records[0].PostedAt, want)
	}
}

func TestNamedTagsCap(t *testing.T) {
	items := []greenhouseNamed{
		{Name: "a"}, {Name: ""}, {Name: "b"}, {Name: "c"}, {Name: "d"},
	}
	tags := namedTags(items, 3)
	if len(tags) != 3 || tags[0] != "a" || tags[1] != "b" || tags[2] != "c" {
		t.Fatalf("namedTags = %v", tags)
	}
}
