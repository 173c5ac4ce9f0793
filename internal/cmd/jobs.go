package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jimezsa/jobsink/internal/export"
	"github.com/jimezsa/jobsink/internal/filter"
	"github.com/jimezsa/jobsink/internal/models"
	"github.com/jimezsa/jobsink/internal/store"
	"github.com/muesli/termenv"
)

type JobsCmd struct {
	Q            string `help:"Substring filter across title, company, location, description, tags."`
	Remote       bool   `help:"Remote postings only."`
	Contract     bool   `help:"Contract postings only."`
	Source       string `help:"Filter by source adapter name."`
	Company      string `help:"Filter by company name substring."`
	OriginDomain string `help:"Filter by origin domain substring."`
	OnlyATS      bool   `name:"only-ats" help:"Greenhouse/Lever postings only."`
	Profile      string `help:"Role profile filter: java, devops, dotnet."`

	KeepTutoring bool `help:"Keep education/training postings."`
	KeepEntry    bool `help:"Keep junior/entry-level postings."`
	KeepUnpaid   bool `help:"Keep unpaid/volunteer postings."`

	Limit  int    `help:"Maximum rows." default:"100"`
	Format string `help:"Output format: csv, json, md, tsv." enum:",csv,json,md,tsv,table" default:""`
	Links  string `help:"Table link display: short or full." enum:"short,full" default:"full"`
	Output string `name:"output" short:"o" help:"Write output to a file."`
	DB     string `help:"SQLite database path." env:"JOBSINK_DB"`
}

func (c *JobsCmd) Run(ctx *Context) error {
	st, err := store.Open(context.Background(), firstNonEmpty(c.DB, ctx.Config.DBPath))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	content, err := filter.NewContent(filter.DefaultCatalog(), filter.ContentOptions{
		KeepEducation:  c.KeepTutoring,
		KeepEntryLevel: c.KeepEntry,
		KeepUnpaid:     c.KeepUnpaid,
		Role:           c.Profile,
	})
	if err != nil {
		return err
	}

	storeFilter := store.Filter{
		Q:            c.Q,
		Source:       c.Source,
		Company:      c.Company,
		OriginDomain: c.OriginDomain,
		OnlyATS:      c.OnlyATS,
		Limit:        c.Limit,
	}
	if c.Remote {
		remote := true
		storeFilter.Remote = &remote
	}
	if c.Contract {
		contract := true
		storeFilter.Contract = &contract
	}

	jobs, err := st.ListJobs(context.Background(), storeFilter)
	if err != nil {
		return err
	}

	kept := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if content.Keep(job) {
			kept = append(kept, job)
		}
	}

	writer := ctx.Out
	if c.Output != "" {
		file, err := os.Create(c.Output)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}

	format, err := resolveFormat(ctx, c.Format, c.Output)
	if err != nil {
		return err
	}

	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled
	hyperlinks := colorEnabled && isTTY(writer)
	linkStyle := export.LinkStyleFull
	if strings.EqualFold(c.Links, string(export.LinkStyleShort)) {
		linkStyle = export.LinkStyleShort
	}

	return export.WriteJobs(writer, kept, format, export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   hyperlinks,
		LinkStyle:    linkStyle,
	})
}

func resolveFormat(ctx *Context, flagValue, outputPath string) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if flagValue != "" {
		return parseFormat(flagValue)
	}
	if outputPath != "" {
		return export.FormatCSV, nil
	}
	if isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

func parseFormat(value string) (export.Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "csv":
		return export.FormatCSV, nil
	case "json":
		return export.FormatJSON, nil
	case "md", "markdown":
		return export.FormatMarkdown, nil
	case "tsv":
		return export.FormatTSV, nil
	case "table", "":
		return export.FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}
