package source

import (
	"context"
	"fmt"

	"github.com/jimezsa/jobsink/internal/config"
	"github.com/jimezsa/jobsink/internal/models"
)

// FetchParams carries the normalized inputs shared by all adapters.
// Adapters ignore the parameters they have no use for.
type FetchParams struct {
	// Query filters results. Adapters whose upstream supports server-side
	// search pass it through; the rest apply a case-insensitive substring
	// match against title, company and description.
	Query string
	// Where is the free-text geographic hint for upstreams that take one.
	Where string
	// Pages bounds page-walking adapters.
	Pages int
	// Limit caps emitted records, per company for roster adapters.
	Limit int
	// Companies is the board roster for ATS adapters.
	Companies []config.Company
}

// UnitFailure records one upstream unit (a page, a company board, a
// detail fetch) that yielded nothing. Unit failures never abort a fetch.
type UnitFailure struct {
	Source string
	Unit   string
	Err    error
}

func (f UnitFailure) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Source, f.Unit, f.Err)
}

// FetchResult is an adapter's contribution to one ingestion run.
type FetchResult struct {
	Records  []models.RawJob
	Failures []UnitFailure
}

// Source fetches one upstream and shapes its items into raw records.
// The returned error is reserved for total failure: missing credentials
// or an unreachable sole endpoint. Partial failures land in
// FetchResult.Failures instead.
type Source interface {
	Name() string
	Fetch(ctx context.Context, params FetchParams) (FetchResult, error)
}
