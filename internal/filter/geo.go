package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jimezsa/jobsink/internal/models"
)

// Region selects the geography policy applied to ingested jobs.
type Region string

const (
	// RegionAll performs no geography filtering.
	RegionAll Region = "all"
	// RegionUS keeps only postings eligible for a US-based audience.
	// Ambiguous postings are dropped rather than risk showing roles the
	// audience cannot take.
	RegionUS Region = "us"
)

func ParseRegion(value string) (Region, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(RegionAll):
		return RegionAll, nil
	case string(RegionUS), "usa", "us-only":
		return RegionUS, nil
	default:
		return "", fmt.Errorf("unknown region: %s", value)
	}
}

// State and territory postal codes, DC included.
var usStateCodes = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL", "GA",
	"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD", "MA",
	"MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ", "NM", "NY",
	"NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC", "SD", "TN", "TX",
	"UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

// Matches the trailing state code of a "City, ST" location. Upper-case
// codes only, so "Dublin, Ireland" never trips the Indiana code.
var usStatePattern = regexp.MustCompile(`,\s*(` + strings.Join(usStateCodes, "|") + `)\b`)

var nonUSPatterns = compileWordPatterns([]string{
	"united kingdom", "uk", "england", "scotland", "wales", "ireland",
	"canada", "germany", "france", "spain", "portugal", "italy",
	"netherlands", "belgium", "switzerland", "austria", "poland",
	"czech", "romania", "ukraine", "russia", "turkey", "israel",
	"india", "pakistan", "bangladesh", "philippines", "vietnam",
	"indonesia", "singapore", "japan", "china", "south korea",
	"australia", "new zealand", "brazil", "argentina", "colombia",
	"mexico", "chile", "nigeria", "kenya", "south africa", "egypt",
	"europe", "emea", "apac", "latam",
})

var globalPatterns = compileWordPatterns([]string{
	"worldwide", "anywhere", "global", "international",
})

var usCountryPatterns = compileWordPatterns([]string{
	"united states", "usa",
})

var usRemotePatterns = compileWordPatterns([]string{
	"united states", "usa", "us only", "us-only", "us based", "us-based",
	"us residents", "us citizens", "authorized to work in the us",
	"us work authorization", "est", "cst", "pst", "mst",
})

func compileWordPatterns(terms []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		out = append(out, regexp.MustCompile(`\b`+regexp.QuoteMeta(term)+`\b`))
	}
	return out
}

func matchesAny(patterns []*regexp.Regexp, haystack string) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(haystack) {
			return true
		}
	}
	return false
}

// Accepts reports whether a job falls inside the target region. On-site
// postings are judged on the location string alone; remote postings on
// the concatenation of title, location and description. Both paths
// default to deny when no signal is present.
func (r Region) Accepts(job models.Job) bool {
	if r != RegionUS {
		return true
	}
	if job.Remote {
		return acceptsRemoteUS(job)
	}
	return acceptsOnsiteUS(job.Location)
}

func acceptsOnsiteUS(location string) bool {
	lower := strings.ToLower(location)

	if matchesAny(nonUSPatterns, lower) {
		return false
	}
	if matchesAny(usCountryPatterns, lower) || strings.Contains(lower, "u.s.") {
		return true
	}
	if usStatePattern.MatchString(location) {
		return true
	}
	if strings.Contains(lower, "remote") && matchesAny(usRemotePatterns, lower) {
		return true
	}
	return false
}

func acceptsRemoteUS(job models.Job) bool {
	text := strings.Join([]string{job.Title, job.Location, job.Description}, " ")
	lower := strings.ToLower(text)

	// Global-remote is excluded outright, even when US is also mentioned.
	if matchesAny(globalPatterns, lower) {
		return false
	}
	if matchesAny(nonUSPatterns, lower) {
		return false
	}
	if matchesAny(usRemotePatterns, lower) || strings.Contains(lower, "u.s.") {
		return true
	}
	if usStatePattern.MatchString(text) {
		return true
	}
	return false
}
