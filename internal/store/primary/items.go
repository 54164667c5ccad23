package primary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"cardkeep/internal/models"
	"cardkeep/internal/store"
)

const itemColumns = `id, title, item_type, url, username, note, tags, ai_summary, ai_confidence, ai_model, created_at, updated_at`

func scanItem(row pgx.Row) (*models.Item, error) {
	item := &models.Item{}
	err := row.Scan(
		&item.ID,
		&item.Title,
		&item.Type,
		&item.URL,
		&item.Username,
		&item.Note,
		&item.Tags,
		&item.AISummary,
		&item.AIConfidence,
		&item.AIModel,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *StoreImpl) CreateItem(ctx context.Context, item *models.Item) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	if item.Tags == nil {
		item.Tags = []string{}
	}

	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := s.db.Exec(ctx, query,
		item.ID, item.Title, item.Type, item.URL, item.Username, item.Note,
		item.Tags, item.AISummary, item.AIConfidence, item.AIModel,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("item %s: %w", item.ID, store.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

func (s *StoreImpl) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	item, err := scanItem(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get item %s: %w", id, err)
	}
	return item, nil
}

func (s *StoreImpl) ListItems(ctx context.Context) ([]*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY created_at DESC`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := []*models.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("item row iteration: %w", err)
	}
	return items, nil
}

func (s *StoreImpl) UpdateItem(ctx context.Context, item *models.Item) error {
	item.UpdatedAt = time.Now().UTC()
	if item.Tags == nil {
		item.Tags = []string{}
	}

	query := `
		UPDATE items
		SET title = $2, item_type = $3, url = $4, username = $5, note = $6,
		    tags = $7, ai_summary = $8, ai_confidence = $9, ai_model = $10,
		    updated_at = $11
		WHERE id = $1`

	tag, err := s.db.Exec(ctx, query,
		item.ID, item.Title, item.Type, item.URL, item.Username, item.Note,
		item.Tags, item.AISummary, item.AIConfidence, item.AIModel,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update item %s: %w", item.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *StoreImpl) DeleteItem(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
