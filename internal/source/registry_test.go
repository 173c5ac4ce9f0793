package source

import (
	"context"
	"testing"
)

type stubSource struct {
	name string
}

func (s stubSource) Name() string { return s.name }

func (s stubSource) Fetch(ctx context.Context, params FetchParams) (FetchResult, error) {
	return FetchResult{}, nil
}

func stubRegistry() map[string]Source {
	registry := map[string]Source{}
	for _, name := range DefaultOrder {
		registry[name] = stubSource{name: name}
	}
	return registry
}

func TestSelectAll(t *testing.T) {
	for _, arg := range []string{"", "all", " ALL "} {
		selected, err := Select(stubRegistry(), arg)
		if err != nil {
			t.Fatalf("Select(%q): %v", arg, err)
		}
		if len(selected) != len(DefaultOrder) {
			t.Fatalf("Select(%q) picked %d sources, want %d", arg, len(selected), len(DefaultOrder))
		}
		for i, name := range DefaultOrder {
			if selected[i].Name() != name {
				t.Fatalf("Select(%q)[%d] = %s, want %s", arg, i, selected[i].Name(), name)
			}
		}
	}
}

func TestSelectCanonicalOrder(t *testing.T) {
	// Requested out of order; result follows the canonical order.
	selected, err := Select(stubRegistry(), "wwr, adzuna ,remotive")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	want := []string{SourceAdzuna, SourceRemotive, SourceWWR}
	if len(selected) != len(want) {
		t.Fatalf("picked %d sources, want %d", len(selected), len(want))
	}
	for i, name := range want {
		if selected[i].Name() != name {
			t.Fatalf("selected[%d] = %s, want %s", i, selected[i].Name(), name)
		}
	}
}

func TestSelectUnknownSource(t *testing.T) {
	if _, err := Select(stubRegistry(), "adzuna,linkedin"); err == nil {
		t.Fatalf("unknown source name must fail before fetching")
	}
}

func TestSelectDeduplicates(t *testing.T) {
	selected, err := Select(stubRegistry(), "lever,lever")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(selected) != 1 {
		t.Fatalf("duplicate names should collapse, got %d", len(selected))
	}
}
