package source

import (
	"testing"
	"time"
)

func TestCleanText(t *testing.T) {
	cases := map[string]string{
		"  hello   world ":          "hello world",
		"a\n\tb":                    "a b",
		"Fish &amp; Chips":          "Fish & Chips",
		"café &eacute;clair":   "café éclair",
		"":                          "",
	}
	for input, want := range cases {
		if got := cleanText(input); got != want {
			t.Fatalf("cleanText(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestOriginDomain(t *testing.T) {
	cases := map[string]string{
		"https://www.acme.com/jobs/1":         "acme.com",
		"https://boards.greenhouse.io/acme/1": "boards.greenhouse.io",
		"https://Jobs.Lever.CO/acme":          "jobs.lever.co",
		"":                                    "",
		"   ":                                 "",
	}
	for input, want := range cases {
		if got := originDomain(input); got != want {
			t.Fatalf("originDomain(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestMatchesQuery(t *testing.T) {
	cases := []struct {
		query       string
		title       string
		company     string
		description string
		want        bool
	}{
		{"", "anything", "", "", true},
		{"   ", "anything", "", "", true},
		{"java", "Senior Java Developer", "", "", true},
		{"JAVA", "senior java developer", "", "", true},
		{"acme", "Developer", "Acme Corp", "", true},
		{"kafka", "Developer", "Acme", "We run Kafka at scale", true},
		{"rust", "Java Developer", "Acme", "Spring services", false},
	}
	for _, tc := range cases {
		got := matchesQuery(tc.query, tc.title, tc.company, tc.description)
		if got != tc.want {
			t.Fatalf("matchesQuery(%q, %q, %q, %q) = %v, want %v",
				tc.query, tc.title, tc.company, tc.description, got, tc.want)
		}
	}
}

func TestParsePostedAt(t *testing.T) {
	cases := []struct {
		input string
		want  time.Time
	}{
		{"2024-03-01T12:30:00Z", time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)},
		{"2024-03-01T12:30:00", time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)},
		{"2024-03-01 12:30:00", time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)},
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"Fri, 01 Mar 2024 12:30:00 +0000", time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)},
		{"", time.Time{}},
		{"yesterday", time.Time{}},
	}
	for _, tc := range cases {
		got := parsePostedAt(tc.input)
		if !got.Equal(tc.want) {
			t.Fatalf("parsePostedAt(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCapReached(t *testing.T) {
	if capReached(5, 0) {
		t.Fatalf("zero limit means unlimited")
	}
	if capReached(4, 5) {
		t.Fatalf("below the limit is not capped")
	}
	if !capReached(5, 5) {
		t.Fatalf("at the limit is capped")
	}
}
