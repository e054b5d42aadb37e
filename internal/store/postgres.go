package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/svnstat/svnstat/internal/models"
)

//go:embed migrations/*.sql
var migrations embed.FS

// PostgresStore persists record sets in Postgres. Commits are unique on
// (repository_url, revision) with inserts resolving conflicts by keeping the
// existing row, matching the merge contract.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens and pings a Postgres connection.
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Migrate runs the embedded goose migrations.
func (s *PostgresStore) Migrate() error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// LoadCommits returns the persisted set ordered by revision ascending.
func (s *PostgresStore) LoadCommits(ctx context.Context, repoURL string) ([]*models.Commit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT revision, author, commit_date, message
		FROM commits
		WHERE repository_url = $1
		ORDER BY revision ASC`, repoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to query commits: %w", err)
	}
	defer rows.Close()

	var commits []*models.Commit
	for rows.Next() {
		var c models.Commit
		if err := rows.Scan(&c.Revision, &c.Author, &c.Date, &c.Message); err != nil {
			return nil, fmt.Errorf("failed to scan commit: %w", err)
		}
		commits = append(commits, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating commits: %w", err)
	}

	return commits, nil
}

// LoadRange returns the persisted span from the repositories table, nil when
// the repository has never been synced.
func (s *PostgresStore) LoadRange(ctx context.Context, repoURL string) (*models.DateRange, error) {
	var rng models.DateRange
	err := s.db.QueryRowContext(ctx, `
		SELECT first_commit_at, last_commit_at
		FROM repositories
		WHERE url = $1 AND first_commit_at IS NOT NULL`, repoURL).
		Scan(&rng.Start, &rng.End)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query repository range: %w", err)
	}

	return &rng, nil
}

// SaveCommits upserts the merged set and records the recomputed span. New
// rows are inserted; conflicting revisions keep the existing row.
func (s *PostgresStore) SaveCommits(ctx context.Context, repoURL string, commits []*models.Commit, span models.DateRange) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO repositories (url, first_commit_at, last_commit_at, last_synced_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (url) DO UPDATE SET
			first_commit_at = EXCLUDED.first_commit_at,
			last_commit_at = EXCLUDED.last_commit_at,
			last_synced_at = NOW()`,
		repoURL, span.Start, span.End)
	if err != nil {
		return fmt.Errorf("failed to save repository span: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO commits (repository_url, revision, author, commit_date, message)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (repository_url, revision) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range commits {
		if _, err := stmt.ExecContext(ctx, repoURL, c.Revision, c.Author, c.Date, c.Message); err != nil {
			return fmt.Errorf("failed to save commit r%d: %w", c.Revision, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListCommits returns a page of commits ordered by revision descending plus
// the total count.
func (s *PostgresStore) ListCommits(ctx context.Context, repoURL string, limit, offset int) ([]*models.Commit, int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM commits WHERE repository_url = $1`, repoURL).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count commits: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT revision, author, commit_date, message
		FROM commits
		WHERE repository_url = $1
		ORDER BY revision DESC
		LIMIT $2 OFFSET $3`, repoURL, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query commits: %w", err)
	}
	defer rows.Close()

	var commits []*models.Commit
	for rows.Next() {
		var c models.Commit
		if err := rows.Scan(&c.Revision, &c.Author, &c.Date, &c.Message); err != nil {
			return nil, 0, fmt.Errorf("failed to scan commit: %w", err)
		}
		commits = append(commits, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating commits: %w", err)
	}

	return commits, total, nil
}

// TopAuthors aggregates per-author totals in SQL.
func (s *PostgresStore) TopAuthors(ctx context.Context, repoURL string, limit int) ([]*models.AuthorStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			author,
			COUNT(*) AS commit_count,
			MIN(commit_date) AS first_commit_at,
			MAX(commit_date) AS last_commit_at
		FROM commits
		WHERE repository_url = $1
		GROUP BY author
		ORDER BY commit_count DESC, author ASC
		LIMIT $2`, repoURL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	var authors []*models.AuthorStats
	for rows.Next() {
		var a models.AuthorStats
		if err := rows.Scan(&a.Name, &a.CommitCount, &a.FirstCommitAt, &a.LastCommitAt); err != nil {
			return nil, fmt.Errorf("failed to scan author stats: %w", err)
		}
		authors = append(authors, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating author stats: %w", err)
	}

	return authors, nil
}

// DeleteCommits wipes all persisted data for a repository.
func (s *PostgresStore) DeleteCommits(ctx context.Context, repoURL string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM commits WHERE repository_url = $1`, repoURL); err != nil {
		return fmt.Errorf("failed to delete commits: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM repositories WHERE url = $1`, repoURL); err != nil {
		return fmt.Errorf("failed to delete repository: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
