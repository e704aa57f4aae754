package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"vsmsearch/internal/indexer/index"
	"vsmsearch/pkg/config"
	"vsmsearch/pkg/postgres"
)

// PostgresSource streams documents out of a database table with columns
// (id, title, body).
type PostgresSource struct {
	client *postgres.Client
	rows   *sql.Rows
}

func OpenPostgres(ctx context.Context, cfg config.PostgresConfig) (*PostgresSource, error) {
	client, err := postgres.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT id, title, body FROM %s", cfg.Table)
	rows, err := client.DB.QueryContext(ctx, query)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("querying corpus table %s: %w", cfg.Table, err)
	}
	return &PostgresSource{client: client, rows: rows}, nil
}

func (s *PostgresSource) Next(ctx context.Context) (index.Document, error) {
	if err := ctx.Err(); err != nil {
		return index.Document{}, err
	}
	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return index.Document{}, fmt.Errorf("iterating corpus rows: %w", err)
		}
		return index.Document{}, io.EOF
	}
	var doc index.Document
	if err := s.rows.Scan(&doc.ID, &doc.Title, &doc.Text); err != nil {
		return index.Document{}, fmt.Errorf("scanning corpus row: %w", err)
	}
	return doc, nil
}

func (s *PostgresSource) Close() error {
	s.rows.Close()
	return s.client.Close()
}
