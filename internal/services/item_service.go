package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"cardkeep/internal/models"
	"cardkeep/internal/store"
	"cardkeep/pkg/tagger"
)

// TagGenerator is the slice of the tagging client the item service uses.
type TagGenerator interface {
	Generate(ctx context.Context, d models.Draft, opts tagger.Options) (models.TagResult, error)
}

// ItemService owns the card lifecycle: tag a draft, gate the result, persist
// the item, and fan the change out to feed subscribers.
type ItemService struct {
	store   store.ItemStore
	tagger  TagGenerator
	changes *store.Hub
}

func NewItemService(st store.ItemStore, tg TagGenerator, hub *store.Hub) *ItemService {
	return &ItemService{store: st, tagger: tg, changes: hub}
}

// CreateFromDraft tags the draft, applies the gate and persists the item.
// Gate rejections and validation failures propagate unchanged so callers can
// map them to user-facing errors.
func (s *ItemService) CreateFromDraft(ctx context.Context, d models.Draft, allowFallback bool, opts tagger.Options) (*models.Item, error) {
	res, err := s.tagger.Generate(ctx, d, opts)
	if err != nil {
		return nil, err
	}
	res, err = tagger.Accept(res, allowFallback)
	if err != nil {
		return nil, err
	}

	item := &models.Item{
		ID:       uuid.New(),
		Title:    d.Title,
		Type:     d.Type,
		URL:      d.URL,
		Username: d.Username,
		Note:     d.Note,
	}
	item.ApplyTagResult(res)

	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("persist item: %w", err)
	}
	log.Infof("created item %s (%d tags, model=%s)", item.ID, len(item.Tags), item.AIModel)

	s.changes.Publish(store.ChangeEvent{Op: store.OpCreate, ID: item.ID, Item: item})
	return item, nil
}

// UpdateItem overwrites the editable fields of an existing item. With retag
// set the draft is run through the tagging pipeline again and the fresh
// result replaces the stored tag fields, subject to the same gate.
func (s *ItemService) UpdateItem(ctx context.Context, id uuid.UUID, d models.Draft, retag, allowFallback bool, opts tagger.Options) (*models.Item, error) {
	item, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Title = d.Title
	item.Type = d.Type
	item.URL = d.URL
	item.Username = d.Username
	item.Note = d.Note

	if retag {
		res, err := s.tagger.Generate(ctx, d, opts)
		if err != nil {
			return nil, err
		}
		res, err = tagger.Accept(res, allowFallback)
		if err != nil {
			return nil, err
		}
		item.ApplyTagResult(res)
	}

	if err := s.store.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	s.changes.Publish(store.ChangeEvent{Op: store.OpUpdate, ID: item.ID, Item: item})
	return item, nil
}

func (s *ItemService) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	return s.store.GetItem(ctx, id)
}

func (s *ItemService) ListItems(ctx context.Context) ([]*models.Item, error) {
	return s.store.ListItems(ctx)
}

func (s *ItemService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.changes.Publish(store.ChangeEvent{Op: store.OpDelete, ID: id})
	return nil
}

// Watch exposes the change feed for realtime list subscriptions.
func (s *ItemService) Watch() (<-chan store.ChangeEvent, func()) {
	return s.changes.Subscribe()
}
