package models

import (
	"time"

	"github.com/google/uuid"
)

// ItemType enumerates the card kinds the manager knows about.
// Unknown values are tolerated and stored verbatim.
type ItemType string

const (
	ItemTypeAccount      ItemType = "account"
	ItemTypeTodo         ItemType = "todo"
	ItemTypeSubscription ItemType = "subscription"
	ItemTypeMemo         ItemType = "memo"
)

// Draft holds the unsaved candidate fields submitted for tag inference.
// It is transient input to the tagging pipeline and is never persisted as-is.
type Draft struct {
	Title    string `json:"title"`
	Type     string `json:"type"`
	URL      string `json:"url,omitempty"`
	Username string `json:"username,omitempty"`
	Note     string `json:"note,omitempty"`
}

// TagResult is the outcome of one tagging attempt. It records provenance
// (Model) and whether the heuristic layer had to substitute for the model
// (Fallback). A TagResult is constructed once and never mutated afterwards.
type TagResult struct {
	Tags       []string `json:"tags"`
	Summary    string   `json:"summary"`
	Confidence float64  `json:"confidence"`
	Model      string   `json:"model"`
	Fallback   bool     `json:"fallback"`
	Error      string   `json:"error,omitempty"`
	Raw        any      `json:"raw,omitempty"`
}

// Item is a persisted information card. The tagging core only computes the
// Tags/AISummary/AIConfidence/AIModel fields; everything else is plain CRUD.
type Item struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Type         string    `json:"type"`
	URL          string    `json:"url,omitempty"`
	Username     string    `json:"username,omitempty"`
	Note         string    `json:"note,omitempty"`
	Tags         []string  `json:"tags"`
	AISummary    string    `json:"aiSummary,omitempty"`
	AIConfidence float64   `json:"aiConfidence,omitempty"`
	AIModel      string    `json:"aiModel,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Draft returns the item fields as a Draft, for re-tagging an existing card.
func (i *Item) Draft() Draft {
	return Draft{
		Title:    i.Title,
		Type:     i.Type,
		URL:      i.URL,
		Username: i.Username,
		Note:     i.Note,
	}
}

// ApplyTagResult merges an accepted tagging result into the item.
// Callers must gate the result first; this does no policy checks.
func (i *Item) ApplyTagResult(res TagResult) {
	i.Tags = res.Tags
	i.AISummary = res.Summary
	i.AIConfidence = res.Confidence
	i.AIModel = res.Model
}
