package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"cardkeep/internal/config"
	"cardkeep/internal/services"
	"cardkeep/internal/store"
	"cardkeep/internal/store/primary"
	"cardkeep/pkg/tagger"
)

// App wires configuration, the tagging client, the item store and the
// services together. Commands pull it out of the cobra context.
type App struct {
	Config *config.Config

	ItemStore store.ItemStore
	Changes   *store.Hub
	Tagger    *tagger.Client

	ItemService *services.ItemService
}

// NewApp initializes the application. The tagging client always comes up;
// the store is optional so commands that never touch the database (tag
// preview, serve with tagging only) still work without a DSN.
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	app.Tagger = tagger.NewClient(tagger.Config{
		GoogleAPIKey: cfg.Tagging.GoogleAPIKey,
		Model:        cfg.Tagging.Model,
		OpenAIAPIKey: cfg.Tagging.OpenaiAPIKey,
		OpenAIModel:  cfg.Tagging.OpenaiModel,
		MinTags:      cfg.Tagging.MinTags,
		MaxTags:      cfg.Tagging.MaxTags,
		Endpoint:     cfg.Tagging.Endpoint,
	})
	app.Changes = store.NewHub()

	if cfg.Database.DSN == "" {
		log.Warn("no database DSN configured; item persistence is disabled")
		return app, nil
	}

	ctx := context.Background()
	ps, err := primary.NewPrimaryStore(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("init primary store: %w", err)
	}
	if err := ps.EnsureSchema(ctx); err != nil {
		ps.Close()
		return nil, err
	}
	app.ItemStore = ps
	app.ItemService = services.NewItemService(ps, app.Tagger, app.Changes)

	log.Debug("application initialization complete")
	return app, nil
}

// Close releases held resources.
func (a *App) Close() {
	if closer, ok := a.ItemStore.(interface{ Close() }); ok {
		closer.Close()
	}
}
