package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jimezsa/jobsink/internal/models"
)

var ErrNotFound = errors.New("job not found")

const jobColumns = `id, fingerprint, source, source_job_id, title, company,
	location, remote, contract, tags, url, apply_url, origin_domain,
	description, description_snippet, posted_at, created_at, updated_at`

// UpsertJob writes a job by fingerprint inside the caller's transaction
// as a single atomic insert-or-update, so concurrent ingestion runs
// racing on the same fingerprint converge instead of one of them
// failing on the unique constraint. An existing row keeps its id and
// created_at while every ingestion field is overwritten. Returns true
// when a row was inserted.
func (s *Store) UpsertJob(ctx context.Context, tx *sql.Tx, job *models.Job) (bool, error) {
	now := time.Now().UTC()

	row := tx.QueryRowContext(ctx, `
		INSERT INTO jobs (fingerprint, source, source_job_id, title, company,
			location, remote, contract, tags, url, apply_url, origin_domain,
			description, description_snippet, posted_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO UPDATE SET
			source = excluded.source,
			source_job_id = excluded.source_job_id,
			title = excluded.title,
			company = excluded.company,
			location = excluded.location,
			remote = excluded.remote,
			contract = excluded.contract,
			tags = excluded.tags,
			url = excluded.url,
			apply_url = excluded.apply_url,
			origin_domain = excluded.origin_domain,
			description = excluded.description,
			description_snippet = excluded.description_snippet,
			posted_at = excluded.posted_at,
			updated_at = excluded.updated_at
		RETURNING id, created_at, created_at = updated_at`,
		job.Fingerprint, job.Source, job.SourceJobID, job.Title, job.Company,
		job.Location, job.Remote, job.Contract, tagsToDB(job.Tags),
		job.URL, job.ApplyURL, job.OriginDomain,
		job.Description, job.DescriptionSnippet,
		nullTime(job.PostedAt), now, now,
	)

	var (
		createdAt time.Time
		inserted  bool
	)
	if err := row.Scan(&job.ID, &createdAt, &inserted); err != nil {
		return false, err
	}
	job.CreatedAt = createdAt
	job.UpdatedAt = now
	return inserted, nil
}

func (s *Store) FindByFingerprint(ctx context.Context, fingerprint string) (*models.Job, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE fingerprint = ?`, fingerprint)
	return scanJob(row)
}

func (s *Store) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	return scanJob(row)
}

func (s *Store) CountJobs(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count)
	return count, err
}

// Filter narrows ListJobs. Nil boolean pointers mean "either".
type Filter struct {
	Q            string
	Remote       *bool
	Contract     *bool
	Source       string
	Company      string
	OriginDomain string
	OnlyATS      bool
	Limit        int
}

func (s *Store) ListJobs(ctx context.Context, f Filter) ([]models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs`
	var (
		conds []string
		args  []any
	)

	if q := strings.TrimSpace(f.Q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		conds = append(conds, `(lower(title) LIKE ? OR lower(company) LIKE ?
			OR lower(location) LIKE ? OR lower(description) LIKE ?
			OR lower(tags) LIKE ? OR lower(source) LIKE ?
			OR lower(origin_domain) LIKE ?)`)
		for i := 0; i < 7; i++ {
			args = append(args, like)
		}
	}
	if f.Remote != nil {
		conds = append(conds, `remote = ?`)
		args = append(args, *f.Remote)
	}
	if f.Contract != nil {
		conds = append(conds, `contract = ?`)
		args = append(args, *f.Contract)
	}
	if f.Source != "" {
		conds = append(conds, `source = ?`)
		args = append(args, strings.ToLower(strings.TrimSpace(f.Source)))
	}
	if f.Company != "" {
		conds = append(conds, `lower(company) LIKE ?`)
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(f.Company))+"%")
	}
	if f.OriginDomain != "" {
		conds = append(conds, `lower(origin_domain) LIKE ?`)
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(f.OriginDomain))+"%")
	}
	if f.OnlyATS {
		conds = append(conds, `source IN ('greenhouse', 'lever')`)
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		job, err := scanJobRow(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row *sql.Row) (*models.Job, error) {
	job, err := scanJobRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return job, err
}

func scanJobRow(scanner rowScanner) (*models.Job, error) {
	var (
		job         models.Job
		sourceJobID sql.NullString
		location    sql.NullString
		tags        sql.NullString
		listingURL  sql.NullString
		applyURL    sql.NullString
		origin      sql.NullString
		description sql.NullString
		snippet     sql.NullString
		postedAt    sql.NullTime
	)

	err := scanner.Scan(
		&job.ID, &job.Fingerprint, &job.Source, &sourceJobID,
		&job.Title, &job.Company, &location, &job.Remote, &job.Contract,
		&tags, &listingURL, &applyURL, &origin,
		&description, &snippet, &postedAt, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	job.SourceJobID = sourceJobID.String
	job.Location = location.String
	job.Tags = tagsFromDB(tags.String)
	job.URL = listingURL.String
	job.ApplyURL = applyURL.String
	job.OriginDomain = origin.String
	job.Description = description.String
	job.DescriptionSnippet = snippet.String
	if postedAt.Valid {
		job.PostedAt = postedAt.Time
	}
	return &job, nil
}

func nullTime(value time.Time) any {
	if value.IsZero() {
		return nil
	}
	return value.UTC()
}

// tagsToDB serializes tags as a comma-joined string, blank entries
// dropped. tagsFromDB is its inverse; insertion order is preserved.
func tagsToDB(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		cleaned = append(cleaned, tag)
	}
	return strings.Join(cleaned, ",")
}

func tagsFromDB(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tags = append(tags, part)
	}
	return tags
}
