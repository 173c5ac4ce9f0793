package filter

import (
	"testing"

	"github.com/jimezsa/jobsink/internal/models"
)

func TestParseRegion(t *testing.T) {
	cases := []struct {
		input   string
		want    Region
		wantErr bool
	}{
		{"", RegionAll, false},
		{"all", RegionAll, false},
		{"us", RegionUS, false},
		{"USA", RegionUS, false},
		{"us-only", RegionUS, false},
		{"eu", "", true},
	}
	for _, tc := range cases {
		got, err := ParseRegion(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseRegion(%q): expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseRegion(%q): %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("ParseRegion(%q) = %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestRegionAllAcceptsEverything(t *testing.T) {
	jobs := []models.Job{
		{Location: "Berlin, Germany"},
		{Remote: true, Location: "Worldwide"},
		{},
	}
	for i, job := range jobs {
		if !RegionAll.Accepts(job) {
			t.Fatalf("job %d: region all must not filter", i)
		}
	}
}

func TestRegionUSOnsite(t *testing.T) {
	cases := []struct {
		name     string
		location string
		want     bool
	}{
		{"state code", "Austin, TX", true},
		{"dc", "Washington, DC", true},
		{"country name", "United States", true},
		{"usa", "Remote, USA", true},
		{"dotted us", "U.S. Remote", true},
		{"lowercase state code ignored", "Dublin, Ireland", false},
		{"non-us country", "Berlin, Germany", false},
		{"uk abbreviation", "London, UK", false},
		{"region bucket", "EMEA", false},
		{"canada beats state-like text", "Toronto, ON, Canada", false},
		{"empty defaults to deny", "", false},
		{"bare city defaults to deny", "Springfield", false},
	}
	for _, tc := range cases {
		job := models.Job{Location: tc.location}
		if got := RegionUS.Accepts(job); got != tc.want {
			t.Fatalf("%s: Accepts(%q) = %v, want %v", tc.name, tc.location, got, tc.want)
		}
	}
}

func TestRegionUSRemote(t *testing.T) {
	cases := []struct {
		name string
		job  models.Job
		want bool
	}{
		{
			"explicit us only",
			models.Job{Remote: true, Location: "Remote - US Only"},
			true,
		},
		{
			"signal in description",
			models.Job{Remote: true, Location: "Remote", Description: "Must be authorized to work in the US."},
			true,
		},
		{
			"timezone signal",
			models.Job{Remote: true, Location: "Remote", Description: "Overlap with EST business hours required."},
			true,
		},
		{
			"worldwide rejected even with us mention",
			models.Job{Remote: true, Location: "Remote - Worldwide", Description: "US candidates welcome."},
			false,
		},
		{
			"anywhere rejected",
			models.Job{Remote: true, Location: "Remote, Anywhere"},
			false,
		},
		{
			"non-us remote",
			models.Job{Remote: true, Location: "Remote, Germany"},
			false,
		},
		{
			"no signal defaults to deny",
			models.Job{Remote: true, Location: "Remote", Description: "Great team, async culture."},
			false,
		},
		{
			"state code in location",
			models.Job{Remote: true, Location: "Remote - Denver, CO"},
			true,
		},
	}
	for _, tc := range cases {
		if got := RegionUS.Accepts(tc.job); got != tc.want {
			t.Fatalf("%s: Accepts = %v, want %v", tc.name, got, tc.want)
		}
	}
}
