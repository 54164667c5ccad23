package store

import (
	"context"

	"github.com/google/uuid"

	"cardkeep/internal/models"
)

// ItemStore is the persistence boundary for information cards. The tagging
// core never talks to it directly; the item service shapes the tag-bearing
// fields and hands finished items over.
type ItemStore interface {
	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error)
	// ListItems returns all items ordered by creation time, newest first.
	ListItems(ctx context.Context) ([]*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}
