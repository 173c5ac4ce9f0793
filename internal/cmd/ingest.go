package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jimezsa/jobsink/internal/config"
	"github.com/jimezsa/jobsink/internal/filter"
	"github.com/jimezsa/jobsink/internal/ingest"
	"github.com/jimezsa/jobsink/internal/network"
	"github.com/jimezsa/jobsink/internal/source"
	"github.com/jimezsa/jobsink/internal/store"
)

type IngestCmd struct {
	Query string `arg:"" optional:"" help:"Free-text query applied by every adapter."`

	Sources   string `help:"Comma-separated source list (default: all)." default:"all"`
	Region    string `help:"Geography policy: us or all." env:"JOBSINK_REGION"`
	Where     string `help:"Geographic hint for upstreams that take one." env:"JOBSINK_WHERE"`
	Pages     int    `help:"Pages to walk for paginated upstreams." env:"JOBSINK_PAGES"`
	Limit     int    `help:"Maximum records per source (per company for ATS boards)." env:"JOBSINK_LIMIT"`
	Companies string `help:"Path to the ATS companies roster (JSON)."`
	Profile   string `help:"Role profile filter: java, devops, dotnet."`

	KeepTutoring bool `help:"Keep education/training postings."`
	KeepEntry    bool `help:"Keep junior/entry-level postings."`
	KeepUnpaid   bool `help:"Keep unpaid/volunteer postings."`

	DB      string `help:"SQLite database path." env:"JOBSINK_DB"`
	DryRun  bool   `help:"Fetch and filter without persisting."`
	Proxies string `help:"Comma-separated proxy URLs." env:"JOBSINK_PROXIES"`
}

func (c *IngestCmd) Run(ctx *Context) error {
	cfg := ctx.Config

	region, err := filter.ParseRegion(firstNonEmpty(c.Region, cfg.Region))
	if err != nil {
		return err
	}

	content, err := filter.NewContent(filter.DefaultCatalog(), filter.ContentOptions{
		KeepEducation:  c.KeepTutoring,
		KeepEntryLevel: c.KeepEntry,
		KeepUnpaid:     c.KeepUnpaid,
		Role:           c.Profile,
	})
	if err != nil {
		return err
	}

	proxies, err := config.LoadProxies(c.Proxies)
	if err != nil {
		return err
	}
	var rotator *network.Rotator
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, 10*time.Minute)
		if err != nil {
			return err
		}
	}

	registry, err := source.Registry(rotator)
	if err != nil {
		return err
	}
	selected, err := source.Select(registry, c.Sources)
	if err != nil {
		return err
	}

	companies, err := config.LoadCompanies(c.Companies)
	if err != nil {
		return err
	}

	params := source.FetchParams{
		Query:     firstNonEmpty(c.Query, cfg.DefaultQuery),
		Where:     firstNonEmpty(c.Where, cfg.Where),
		Pages:     defaultInt(c.Pages, cfg.Pages),
		Limit:     defaultInt(c.Limit, cfg.Limit),
		Companies: companies,
	}

	pipeline := ingest.Pipeline{
		Sources: selected,
		Region:  region,
		Content: content,
		Logger:  ctx.Logger,
		DryRun:  c.DryRun,
	}

	if !c.DryRun {
		st, err := store.Open(context.Background(), firstNonEmpty(c.DB, cfg.DBPath))
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		pipeline.Store = st
	}

	summary, err := pipeline.Run(context.Background(), params)
	if err != nil {
		return err
	}

	if summary.Failures > 0 && ctx.UI != nil {
		ctx.UI.Warnf("%d fetch unit(s) failed; see log for details", summary.Failures)
	}

	_, err = fmt.Fprintf(ctx.Out,
		"summary: fetched=%d deduped=%d kept=%d inserted=%d updated=%d\n",
		summary.Fetched, summary.Deduped, summary.Kept,
		summary.Inserted, summary.Updated)
	return err
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func defaultInt(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}
