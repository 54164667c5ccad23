package tagger

import (
	"cardkeep/internal/models"
)

// Accept is the policy gate between a tagging result and the store: the last
// check before a write. It never persists an untagged item, and it refuses
// heuristic-only results unless the caller opted in, so the user can retry
// with richer input instead of silently accepting generic tags.
func Accept(res models.TagResult, allowFallback bool) (models.TagResult, error) {
	if len(res.Tags) == 0 {
		return models.TagResult{}, models.ErrEmptyTags
	}
	if res.Fallback && !allowFallback {
		return models.TagResult{}, models.ErrFallbackRejected
	}
	return res, nil
}
