package source

import (
	"fmt"
	"strings"

	"github.com/jimezsa/jobsink/internal/network"
)

const (
	SourceAdzuna     = "adzuna"
	SourceArbeitnow  = "arbeitnow"
	SourceGreenhouse = "greenhouse"
	SourceLever      = "lever"
	SourceRemotive   = "remotive"
	SourceRemoteOK   = "remoteok"
	SourceWWR        = "wwr"
)

// DefaultOrder is the canonical adapter invocation order. Deduplication
// is insertion-order-stable, so runs stay reproducible only if sources
// execute in a fixed sequence.
var DefaultOrder = []string{
	SourceAdzuna,
	SourceArbeitnow,
	SourceGreenhouse,
	SourceLever,
	SourceRemotive,
	SourceRemoteOK,
	SourceWWR,
}

func Registry(rotator *network.Rotator) (map[string]Source, error) {
	makeClient := func() (*network.Client, error) {
		return network.NewClient(rotator)
	}

	registry := map[string]Source{}
	for _, name := range DefaultOrder {
		client, err := makeClient()
		if err != nil {
			return nil, err
		}
		switch name {
		case SourceAdzuna:
			registry[name] = NewAdzuna(client)
		case SourceArbeitnow:
			registry[name] = NewArbeitnow(client)
		case SourceGreenhouse:
			registry[name] = NewGreenhouse(client)
		case SourceLever:
			registry[name] = NewLever(client)
		case SourceRemotive:
			registry[name] = NewRemotive(client)
		case SourceRemoteOK:
			registry[name] = NewRemoteOK(client)
		case SourceWWR:
			registry[name] = NewWWR(client)
		}
	}
	return registry, nil
}

// Select resolves a comma-separated source list ("all" or empty selects
// every adapter) into Sources in canonical order. An unknown name is a
// fatal operator error, raised before any fetching begins.
func Select(registry map[string]Source, namesArg string) ([]Source, error) {
	requested := normalizeNames(strings.Split(namesArg, ","))
	if len(requested) == 0 || (len(requested) == 1 && requested[0] == "all") {
		requested = DefaultOrder
	}

	picked := make(map[string]bool, len(requested))
	for _, name := range requested {
		if _, ok := registry[name]; !ok {
			return nil, fmt.Errorf("unknown source: %s", name)
		}
		picked[name] = true
	}

	selected := make([]Source, 0, len(picked))
	for _, name := range DefaultOrder {
		if picked[name] {
			selected = append(selected, registry[name])
		}
	}
	return selected, nil
}

func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		out = append(out, name)
	}
	return out
}
