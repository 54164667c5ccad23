package tagger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload_DirectJSON(t *testing.T) {
	p, err := parsePayload(`{"tags": ["サブスク", "video"], "summary": "要約", "confidence": 0.85}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"サブスク", "video"}, p.Tags)
	assert.Equal(t, "要約", p.Summary)
	assert.Equal(t, 0.85, p.Confidence)
}

func TestParsePayload_MarkdownFences(t *testing.T) {
	p, err := parsePayload("```json\n{\"tags\": [\"a\"], \"summary\": \"s\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, p.Tags)
}

func TestParsePayload_ProseWrapped(t *testing.T) {
	text := `Sure! Here is the result you asked for:
{"tags": ["memo"], "summary": "done", "confidence": 0.5}
Hope that helps.`
	p, err := parsePayload(text)
	require.NoError(t, err)
	assert.Equal(t, []string{"memo"}, p.Tags)
	assert.Equal(t, 0.5, p.Confidence)
}

func TestParsePayload_ToleratesLooseTyping(t *testing.T) {
	// Non-string tags are dropped, quoted confidence is accepted.
	p, err := parsePayload(`{"tags": ["ok", 42, null, ""], "confidence": "0.4"}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, p.Tags)
	assert.Equal(t, 0.4, p.Confidence)
}

func TestParsePayload_NoJSON(t *testing.T) {
	_, err := parsePayload("just plain prose with no object at all")
	assert.Error(t, err)
}

func TestExtractObject_NestedBraces(t *testing.T) {
	// The scan must balance nested objects, not stop at the first '}'.
	s := `noise {"a": {"b": {"c": 1}}, "d": 2} trailing`
	got, err := extractObject(s)
	require.NoError(t, err)
	assert.Equal(t, `{"a": {"b": {"c": 1}}, "d": 2}`, got)
}

func TestExtractObject_BracesInsideStrings(t *testing.T) {
	s := `{"summary": "a } inside", "note": "escaped \" quote {"}`
	got, err := extractObject(s)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestExtractObject_Unbalanced(t *testing.T) {
	_, err := extractObject(`{"a": 1`)
	assert.Error(t, err)
	_, err = extractObject(`no braces here`)
	assert.Error(t, err)
}
