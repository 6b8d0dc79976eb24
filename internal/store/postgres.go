package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voyagen/tvcatalog/internal/models"
)

// Postgres implements Store using PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres store from a DSN. Caller must call Close when done.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute
	cfg.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// Ping checks the database connection.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// ListChannels fetches the page and the total match count in one query using
// COUNT(*) OVER(). A page past the end returns no rows and therefore no
// total, so only in that case a separate count is issued.
func (p *Postgres) ListChannels(ctx context.Context, filter ChannelFilter) ([]models.Channel, int, error) {
	where, args := buildChannelWhere(filter, 1)
	query := fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total FROM tv_channels %s ORDER BY name ASC, id ASC`,
		channelColumns, where)
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ListChannels: %w", err)
	}
	defer rows.Close()

	var (
		channels []models.Channel
		total    int
	)
	for rows.Next() {
		var ch models.Channel
		if err := rows.Scan(
			&ch.ID, &ch.Name, &ch.Category, &ch.Language, &ch.Country,
			&ch.StreamURL, &ch.LogoURL, &ch.Description, &ch.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("ListChannels scan: %w", err)
		}
		channels = append(channels, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ListChannels rows: %w", err)
	}

	if len(channels) == 0 && filter.Offset > 0 {
		total, err = p.countChannels(ctx, filter)
		if err != nil {
			return nil, 0, err
		}
	}
	return channels, total, nil
}

func (p *Postgres) countChannels(ctx context.Context, filter ChannelFilter) (int, error) {
	where, args := buildChannelWhere(filter, 1)
	var total int
	if err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tv_channels `+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count channels: %w", err)
	}
	return total, nil
}

// GetChannelByID returns a single channel by id.
func (p *Postgres) GetChannelByID(ctx context.Context, id string) (*models.Channel, error) {
	var ch models.Channel
	err := p.pool.QueryRow(ctx,
		`SELECT `+channelColumns+` FROM tv_channels WHERE id = $1::uuid`, id,
	).Scan(
		&ch.ID, &ch.Name, &ch.Category, &ch.Language, &ch.Country,
		&ch.StreamURL, &ch.LogoURL, &ch.Description, &ch.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetChannelByID: %w", err)
	}
	return &ch, nil
}

// ListChannelFacets scans category/language/country of every channel in
// creation order.
func (p *Postgres) ListChannelFacets(ctx context.Context) ([]models.ChannelFacets, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT category, language, country FROM tv_channels ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("ListChannelFacets: %w", err)
	}
	facets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ChannelFacets, error) {
		var f models.ChannelFacets
		err := row.Scan(&f.Category, &f.Language, &f.Country)
		return f, err
	})
	if err != nil {
		return nil, fmt.Errorf("ListChannelFacets: %w", err)
	}
	return facets, nil
}
