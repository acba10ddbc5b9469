package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// CatalogStore abstracts DB queries for testability.
type CatalogStore interface {
	LoadAll(ctx context.Context) ([]*toolRow, error)
}

type toolRow struct {
	Slug          string
	Title         string
	Description   sql.NullString
	Category      string
	Subcategory   sql.NullString
	EngineID      string
	InputsSchema  string // JSONB as string
	ComputeConfig string
	HowTo         string
	FAQ           string
	RelatedSlugs  string
}

// sqlCatalogStore is the real implementation using *sql.DB.
type sqlCatalogStore struct {
	db *sql.DB
}

func (s *sqlCatalogStore) LoadAll(ctx context.Context) ([]*toolRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slug, title, description, category, subcategory, engine_id,
		       inputs_schema, compute_config, how_to, faq, related_slugs
		FROM quicktools_tools
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*toolRow
	for rows.Next() {
		var r toolRow
		if err := rows.Scan(
			&r.Slug, &r.Title, &r.Description, &r.Category, &r.Subcategory,
			&r.EngineID, &r.InputsSchema, &r.ComputeConfig, &r.HowTo,
			&r.FAQ, &r.RelatedSlugs,
		); err != nil {
			return nil, err
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

// PostgresCatalog fetches the catalog from the quicktools_tools table,
// caching whole snapshots with stale-while-revalidate.
type PostgresCatalog struct {
	store  CatalogStore
	cache  *CatalogCache
	logger *zap.Logger
}

// PostgresCatalogConfig configures the PostgresCatalog.
type PostgresCatalogConfig struct {
	DB       *sql.DB
	CacheTTL time.Duration
	Logger   *zap.Logger
}

// NewPostgresCatalog creates a new PostgresCatalog.
func NewPostgresCatalog(cfg PostgresCatalogConfig) *PostgresCatalog {
	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = 60 * time.Second
	}
	return &PostgresCatalog{
		store:  &sqlCatalogStore{db: cfg.DB},
		cache:  NewCatalogCache(ttl),
		logger: cfg.Logger,
	}
}

// newPostgresCatalogWithStore creates a catalog with a custom store (for testing).
func newPostgresCatalogWithStore(store CatalogStore, cacheTTL time.Duration, logger *zap.Logger) *PostgresCatalog {
	if cacheTTL == 0 {
		cacheTTL = 60 * time.Second
	}
	return &PostgresCatalog{
		store:  store,
		cache:  NewCatalogCache(cacheTTL),
		logger: logger,
	}
}

func (c *PostgresCatalog) All(ctx context.Context) ([]*ToolDescriptor, error) {
	snap, err := c.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("All: %w", err)
	}
	return snap.Tools, nil
}

func (c *PostgresCatalog) BySlug(ctx context.Context, slug string) (*ToolDescriptor, error) {
	snap, err := c.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("BySlug: %w", err)
	}
	return snap.BySlug[slug], nil
}

func (c *PostgresCatalog) Related(ctx context.Context, tool *ToolDescriptor) ([]*ToolDescriptor, error) {
	snap, err := c.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("Related: %w", err)
	}
	return relatedFrom(snap.Tools, tool), nil
}

func (c *PostgresCatalog) snapshot(ctx context.Context) (CacheGetResult, error) {
	cached := c.cache.Get()
	if cached.Hit {
		if cached.NeedsRefresh {
			go c.refreshInBackground()
		}
		return cached, nil
	}

	// Cache miss — fetch from DB
	tools, err := c.fetchFromDB(ctx)
	if err != nil {
		return CacheGetResult{}, err
	}
	c.cache.Set(tools)
	return c.cache.Get(), nil
}

func (c *PostgresCatalog) fetchFromDB(ctx context.Context) ([]*ToolDescriptor, error) {
	rows, err := c.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	tools := make([]*ToolDescriptor, 0, len(rows))
	for _, row := range rows {
		t, err := parseToolRow(row)
		if err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	return tools, nil
}

func (c *PostgresCatalog) refreshInBackground() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tools, err := c.fetchFromDB(ctx)
	if err != nil {
		c.logger.Warn("background catalog refresh failed", zap.Error(err))
		return
	}
	c.cache.Set(tools)
}

func parseToolRow(row *toolRow) (*ToolDescriptor, error) {
	t := &ToolDescriptor{
		Slug:     row.Slug,
		Title:    row.Title,
		Category: row.Category,
		EngineID: row.EngineID,
	}

	if row.Description.Valid {
		t.Description = row.Description.String
	}
	if row.Subcategory.Valid {
		t.Subcategory = row.Subcategory.String
	}

	// Parse inputs_schema (JSONB object)
	if row.InputsSchema != "" && row.InputsSchema != "{}" {
		if err := json.Unmarshal([]byte(row.InputsSchema), &t.InputsSchema); err != nil {
			return nil, fmt.Errorf("parseToolRow: inputs_schema: %w", err)
		}
	}

	// Parse compute_config (JSONB object)
	if row.ComputeConfig != "" && row.ComputeConfig != "{}" {
		if err := json.Unmarshal([]byte(row.ComputeConfig), &t.ComputeConfig); err != nil {
			return nil, fmt.Errorf("parseToolRow: compute_config: %w", err)
		}
	}

	// Parse how_to (JSONB array)
	if row.HowTo != "" && row.HowTo != "[]" {
		if err := json.Unmarshal([]byte(row.HowTo), &t.HowTo); err != nil {
			return nil, fmt.Errorf("parseToolRow: how_to: %w", err)
		}
	}

	// Parse faq (JSONB array)
	if row.FAQ != "" && row.FAQ != "[]" {
		if err := json.Unmarshal([]byte(row.FAQ), &t.FAQ); err != nil {
			return nil, fmt.Errorf("parseToolRow: faq: %w", err)
		}
	}

	// Parse related_slugs (JSONB array)
	if row.RelatedSlugs != "" && row.RelatedSlugs != "[]" {
		if err := json.Unmarshal([]byte(row.RelatedSlugs), &t.RelatedSlugs); err != nil {
			return nil, fmt.Errorf("parseToolRow: related_slugs: %w", err)
		}
	}

	return t, nil
}
