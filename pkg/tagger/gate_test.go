package tagger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardkeep/internal/models"
)

func TestAccept_EmptyTags(t *testing.T) {
	res := models.TagResult{Tags: nil, Fallback: false}
	for _, allow := range []bool{true, false} {
		_, err := Accept(res, allow)
		assert.ErrorIs(t, err, models.ErrEmptyTags, "allowFallback=%v", allow)
	}
}

func TestAccept_FallbackRejectedByDefault(t *testing.T) {
	res := models.TagResult{Tags: []string{"メモ"}, Fallback: true}
	_, err := Accept(res, false)
	assert.ErrorIs(t, err, models.ErrFallbackRejected)
}

func TestAccept_FallbackAllowed(t *testing.T) {
	res := models.TagResult{Tags: []string{"メモ"}, Fallback: true, Model: ModelHeuristicForce}
	got, err := Accept(res, true)
	require.NoError(t, err)
	assert.Equal(t, res, got, "accepted result must pass through unchanged")
}

func TestAccept_ModelResultPasses(t *testing.T) {
	res := models.TagResult{Tags: []string{"a", "b"}, Fallback: false, Model: "gemini-2.0-flash"}
	got, err := Accept(res, false)
	require.NoError(t, err)
	assert.Equal(t, res, got)
}

// Empty tags outrank the fallback policy: the empty check fires first.
func TestAccept_EmptyBeatsFallback(t *testing.T) {
	res := models.TagResult{Tags: []string{}, Fallback: true}
	_, err := Accept(res, false)
	assert.ErrorIs(t, err, models.ErrEmptyTags)
}
