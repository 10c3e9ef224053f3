package store

import (
	"context"
	"fmt"

	apperrors "codeberg.org/libroteca/server/internal/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// Client implements Store against PostgreSQL with the pgvector extension.
// Connections are pooled; every operation is a single independent round trip.
type Client struct {
	pool     *pgxpool.Pool
	ownsPool bool
}

// creates a new storage client with its own connection pool
func NewClient(ctx context.Context, connString string) (*Client, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{pool: pool, ownsPool: true}, nil
}

// creates a storage client on a shared connection pool
func NewClientFromPool(pool *pgxpool.Pool) *Client {
	return &Client{pool: pool}
}

// closes the pool if this client owns it
func (c *Client) Close() {
	if c.ownsPool {
		c.pool.Close()
	}
}

// creates the pgvector extension and the books table; safe to call repeatedly
func (c *Client) EnsureSchema(ctx context.Context) error {
	if _, err := c.pool.Exec(ctx, createExtensionQuery); err != nil {
		return apperrors.Storage("create extension", err)
	}

	if _, err := c.pool.Exec(ctx, createTableQuery); err != nil {
		return apperrors.Storage("create table", err)
	}

	return nil
}

// runs a nearest-neighbor scan with the pgvector <-> operator. Results come
// back ordered by ascending distance, capped at k, all strictly below
// maxDistance.
func (c *Client) Search(ctx context.Context, embedding []float32, maxDistance float64, k int) ([]Match, error) {
	rows, err := c.pool.Query(ctx, searchBooksQuery, pgvector.NewVector(embedding), maxDistance, k)
	if err != nil {
		return nil, apperrors.Storage("search", err)
	}
	defer rows.Close()

	var matches []Match

	for rows.Next() {
		var (
			match Match
			vec   pgvector.Vector
		)

		err := rows.Scan(
			&match.Book.Title,
			&match.Book.Author,
			&match.Book.Description,
			&vec,
			&match.Distance,
		)

		if err != nil {
			return nil, apperrors.Storage("scan search row", err)
		}

		match.Book.Embedding = vec.Slice()
		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage("iterate search rows", err)
	}

	return matches, nil
}

// appends one record; titles are not deduplicated at this layer
func (c *Client) Insert(ctx context.Context, book Book) error {
	_, err := c.pool.Exec(ctx, insertBookQuery,
		book.Title,
		book.Author,
		book.Description,
		pgvector.NewVector(book.Embedding),
	)

	if err != nil {
		return apperrors.Storage("insert", err)
	}

	return nil
}

// returns the set of stored titles from a single query, giving the dedup
// check one consistent snapshot
func (c *Client) ListTitles(ctx context.Context) (map[string]struct{}, error) {
	rows, err := c.pool.Query(ctx, listTitlesQuery)
	if err != nil {
		return nil, apperrors.Storage("list titles", err)
	}
	defer rows.Close()

	titles := make(map[string]struct{})

	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, apperrors.Storage("scan title", err)
		}

		titles[title] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage("iterate titles", err)
	}

	return titles, nil
}

// returns title/author pairs for catalog listings, without embeddings
func (c *Client) ListSummaries(ctx context.Context) ([]BookSummary, error) {
	rows, err := c.pool.Query(ctx, listSummariesQuery)
	if err != nil {
		return nil, apperrors.Storage("list summaries", err)
	}
	defer rows.Close()

	var summaries []BookSummary

	for rows.Next() {
		var summary BookSummary
		if err := rows.Scan(&summary.Title, &summary.Author); err != nil {
			return nil, apperrors.Storage("scan summary", err)
		}

		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage("iterate summaries", err)
	}

	return summaries, nil
}

// returns the total number of stored books
func (c *Client) Count(ctx context.Context) (int, error) {
	var count int

	if err := c.pool.QueryRow(ctx, countBooksQuery).Scan(&count); err != nil {
		return 0, apperrors.Storage("count", err)
	}

	return count, nil
}
