package ingest

import "github.com/jimezsa/jobsink/internal/models"

// Dedupe collapses jobs sharing a fingerprint down to one record each.
// The variant with the most recent PostedAt wins; a timestamped variant
// beats an untimestamped one; when neither carries a timestamp the
// first-seen record is kept. Output preserves first-seen order, so the
// result is reproducible as long as adapters run in a fixed order.
func Dedupe(jobs []models.Job) []models.Job {
	index := make(map[string]int, len(jobs))
	out := make([]models.Job, 0, len(jobs))

	for _, job := range jobs {
		at, ok := index[job.Fingerprint]
		if !ok {
			index[job.Fingerprint] = len(out)
			out = append(out, job)
			continue
		}

		incumbent := out[at]
		if job.PostedAt.IsZero() {
			continue
		}
		if incumbent.PostedAt.IsZero() || job.PostedAt.After(incumbent.PostedAt) {
			out[at] = job
		}
	}

	return out
}
