package filter

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jimezsa/jobsink/internal/models"
)

// ExclusionGroup names an independently toggleable set of exclusion
// patterns.
type ExclusionGroup string

const (
	ExcludeEducation  ExclusionGroup = "education"
	ExcludeEntryLevel ExclusionGroup = "entry-level"
	ExcludeUnpaid     ExclusionGroup = "unpaid"
)

// Role is a profile in the inclusion catalog: a job must contain at
// least one Include keyword, and none of the Exclude keywords.
type Role struct {
	Include []string
	Exclude []string
}

// Catalog holds the immutable pattern and keyword sets shared by the
// ingest pipeline and the serving layer. Build one with DefaultCatalog
// or inject a custom one in tests.
type Catalog struct {
	exclusions map[ExclusionGroup][]*regexp.Regexp
	roles      map[string]Role
}

func NewCatalog(exclusions map[ExclusionGroup][]string, roles map[string]Role) (*Catalog, error) {
	compiled := make(map[ExclusionGroup][]*regexp.Regexp, len(exclusions))
	for group, patterns := range exclusions {
		for _, pattern := range patterns {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("exclusion group %s: %w", group, err)
			}
			compiled[group] = append(compiled[group], re)
		}
	}
	return &Catalog{exclusions: compiled, roles: roles}, nil
}

// DefaultCatalog returns the built-in exclusion groups and role profiles.
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog(defaultExclusions, defaultRoles)
	if err != nil {
		panic(err)
	}
	return catalog
}

var defaultExclusions = map[ExclusionGroup][]string{
	ExcludeEducation: {
		`\btutor(ing)?\b`,
		`\bteacher\b`,
		`\binstructor\b`,
		`\btrainer\b`,
		`\btraining\b`,
		`\bcourse\b`,
		`\bboot ?camp\b`,
		`\beducation\b`,
		`\bschool\b`,
		`\buniversity\b`,
		`\bstudent\b`,
		`\bacadem(y|ic)\b`,
		`\bcoach(ing)?\b`,
	},
	ExcludeEntryLevel: {
		`\bintern(ship)?\b`,
		`\bco[- ]?op\b`,
		`\bgraduate\b`,
		`\bnew grad\b`,
		`\bentry[- ]level\b`,
		`\bjr\.?\b`,
		`\bjunior\b`,
		`\btrainee\b`,
		`\bapprentice\b`,
	},
	ExcludeUnpaid: {
		`\bvolunteer\b`,
		`\bunpaid\b`,
	},
}

var defaultRoles = map[string]Role{
	"java": {
		Include: []string{
			"java", "spring", "spring boot", "microservices", "hibernate",
			"kafka", "j2ee", "maven", "gradle",
		},
		Exclude: []string{"teacher", "tutor", "instructor"},
	},
	"devops": {
		Include: []string{
			"devops", "site reliability", "sre", "platform", "infrastructure",
			"kubernetes", "k8s", "docker", "terraform", "ansible", "ci/cd",
			"jenkins", "github actions", "helm", "observability", "prometheus",
			"grafana", "aws", "azure", "gcp",
		},
		Exclude: []string{"teacher", "tutor", "instructor", "working student"},
	},
	"dotnet": {
		Include: []string{
			".net", "dotnet", "c#", "asp.net", "aspnet", "entity framework",
			"ef core", "web api",
		},
		Exclude: []string{"teacher", "tutor", "instructor"},
	},
}

// RoleNames lists the catalog's profiles in stable order.
func (c *Catalog) RoleNames() []string {
	names := make([]string, 0, len(c.roles))
	for name := range c.roles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Catalog) role(name string) (Role, bool) {
	role, ok := c.roles[normalizeRoleName(name)]
	return role, ok
}

func normalizeRoleName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == ".net" {
		return "dotnet"
	}
	return name
}

// ContentOptions selects which exclusion groups run and, optionally, a
// role profile. All groups default to enabled.
type ContentOptions struct {
	KeepEducation  bool
	KeepEntryLevel bool
	KeepUnpaid     bool
	Role           string
}

// Content drops postings matching any enabled exclusion pattern and,
// when a role is set, postings that miss every one of the role's include
// keywords. Exclusions always run before role inclusion.
type Content struct {
	catalog  *Catalog
	disabled map[ExclusionGroup]bool
	role     string
}

func NewContent(catalog *Catalog, opts ContentOptions) (*Content, error) {
	role := normalizeRoleName(opts.Role)
	if role != "" {
		if _, ok := catalog.role(role); !ok {
			return nil, fmt.Errorf("unknown role profile: %s", opts.Role)
		}
	}
	return &Content{
		catalog: catalog,
		disabled: map[ExclusionGroup]bool{
			ExcludeEducation:  opts.KeepEducation,
			ExcludeEntryLevel: opts.KeepEntryLevel,
			ExcludeUnpaid:     opts.KeepUnpaid,
		},
		role: role,
	}, nil
}

func (f *Content) Keep(job models.Job) bool {
	haystack := contentHaystack(job)

	for group, patterns := range f.catalog.exclusions {
		if f.disabled[group] {
			continue
		}
		if matchesAny(patterns, haystack) {
			return false
		}
	}

	if f.role == "" {
		return true
	}
	role, ok := f.catalog.role(f.role)
	if !ok {
		return true
	}
	return matchesRole(role, haystack)
}

func matchesRole(role Role, haystack string) bool {
	included := false
	for _, keyword := range role.Include {
		if strings.Contains(haystack, keyword) {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, keyword := range role.Exclude {
		if strings.Contains(haystack, keyword) {
			return false
		}
	}
	return true
}

func contentHaystack(job models.Job) string {
	description := job.Description
	if description == "" {
		description = job.DescriptionSnippet
	}
	parts := []string{job.Title, job.Company, job.Location, description}
	parts = append(parts, job.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}
