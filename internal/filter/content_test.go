package filter

import (
	"testing"

	"github.com/jimezsa/jobsink/internal/models"
)

func mustContent(t *testing.T, opts ContentOptions) *Content {
	t.Helper()
	content, err := NewContent(DefaultCatalog(), opts)
	if err != nil {
		t.Fatalf("NewContent: %v", err)
	}
	return content
}

func TestContentExclusionGroups(t *testing.T) {
	intern := models.Job{Title: "Software Engineering Intern"}
	tutor := models.Job{Title: "Math Tutor"}
	volunteer := models.Job{Title: "Volunteer Developer"}
	senior := models.Job{Title: "Senior Backend Engineer"}

	allOn := mustContent(t, ContentOptions{})
	for _, job := range []models.Job{intern, tutor, volunteer} {
		if allOn.Keep(job) {
			t.Fatalf("%q should be excluded with all groups enabled", job.Title)
		}
	}
	if !allOn.Keep(senior) {
		t.Fatalf("%q should pass with all groups enabled", senior.Title)
	}

	allOff := mustContent(t, ContentOptions{KeepEducation: true, KeepEntryLevel: true, KeepUnpaid: true})
	for _, job := range []models.Job{intern, tutor, volunteer, senior} {
		if !allOff.Keep(job) {
			t.Fatalf("%q should pass with all groups disabled", job.Title)
		}
	}
}

func TestContentGroupsToggleIndependently(t *testing.T) {
	intern := models.Job{Title: "Software Engineering Intern"}
	tutor := models.Job{Title: "Math Tutor"}

	keepEntry := mustContent(t, ContentOptions{KeepEntryLevel: true})
	if !keepEntry.Keep(intern) {
		t.Fatalf("intern should pass when only entry-level is disabled")
	}
	if keepEntry.Keep(tutor) {
		t.Fatalf("tutor should still be excluded by the education group")
	}

	keepEducation := mustContent(t, ContentOptions{KeepEducation: true})
	if !keepEducation.Keep(tutor) {
		t.Fatalf("tutor should pass when only education is disabled")
	}
	if keepEducation.Keep(intern) {
		t.Fatalf("intern should still be excluded by the entry-level group")
	}
}

func TestContentCombinedKeywords(t *testing.T) {
	job := models.Job{Title: "Intern Tutor"}

	allOff := mustContent(t, ContentOptions{KeepEducation: true, KeepEntryLevel: true, KeepUnpaid: true})
	if !allOff.Keep(job) {
		t.Fatalf("posting should be retained with every group disabled")
	}

	entryOnly := mustContent(t, ContentOptions{KeepEducation: true, KeepUnpaid: true})
	if entryOnly.Keep(job) {
		t.Fatalf("entry-level group alone should drop the posting")
	}
}

func TestContentWordBoundaries(t *testing.T) {
	content := mustContent(t, ContentOptions{})

	cases := []struct {
		title string
		want  bool
	}{
		{"International Sales Engineer", true}, // "intern" only as a prefix
		{"Internal Tools Engineer", true},
		{"Junior Developer", false},
		{"Jr. Developer", false},
		{"Cooperative Program Lead", true},
		{"Co-op Student Developer", false},
	}
	for _, tc := range cases {
		if got := content.Keep(models.Job{Title: tc.title}); got != tc.want {
			t.Fatalf("Keep(%q) = %v, want %v", tc.title, got, tc.want)
		}
	}
}

func TestContentRoleProfiles(t *testing.T) {
	java := mustContent(t, ContentOptions{Role: "java"})

	if !java.Keep(models.Job{Title: "Senior Java Developer", Description: "Spring Boot microservices"}) {
		t.Fatalf("java role should keep a spring boot posting")
	}
	if java.Keep(models.Job{Title: "Senior Ruby Developer", Description: "Rails monolith"}) {
		t.Fatalf("java role should drop a posting with no include keyword")
	}

	// Keyword match in tags alone suffices.
	if !java.Keep(models.Job{Title: "Backend Engineer", Tags: []string{"kafka"}}) {
		t.Fatalf("role keywords should match against tags")
	}

	// Exclusions run before role inclusion.
	if java.Keep(models.Job{Title: "Java Instructor", Description: "Teach Spring courses"}) {
		t.Fatalf("excluded posting must not be rescued by a role match")
	}

	dotnet := mustContent(t, ContentOptions{Role: ".net"})
	if !dotnet.Keep(models.Job{Title: "C# Developer", Description: "ASP.NET Core services"}) {
		t.Fatalf(".net alias should resolve to the dotnet profile")
	}
}

func TestContentUnknownRole(t *testing.T) {
	if _, err := NewContent(DefaultCatalog(), ContentOptions{Role: "cobol"}); err == nil {
		t.Fatalf("unknown role profile should be rejected")
	}
}

func TestContentHaystackFallsBackToSnippet(t *testing.T) {
	java := mustContent(t, ContentOptions{Role: "java"})
	job := models.Job{Title: "Backend Engineer", DescriptionSnippet: "Hibernate and Kafka stack"}
	if !java.Keep(job) {
		t.Fatalf("snippet should be searched when the description is empty")
	}
}
