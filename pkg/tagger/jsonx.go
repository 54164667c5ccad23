package tagger

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// payload is the validated shape of a model response. Field types are checked
// explicitly because model output is only loosely JSON: tags may contain
// non-strings and confidence sometimes arrives as a quoted number.
type payload struct {
	Tags       []string
	Summary    string
	Confidence float64
}

// parsePayload parses model output as JSON. Direct parse first; on failure
// the first balanced {...} group is extracted and parsed, which copes with
// answers wrapped in prose or markdown fences.
func parsePayload(text string) (payload, error) {
	cleaned := stripFences(strings.TrimSpace(text))
	if p, err := decodePayload(cleaned); err == nil {
		return p, nil
	}
	obj, err := extractObject(cleaned)
	if err != nil {
		return payload{}, fmt.Errorf("no JSON object in model output: %w", err)
	}
	p, err := decodePayload(obj)
	if err != nil {
		return payload{}, fmt.Errorf("extracted object is not valid JSON: %w", err)
	}
	return p, nil
}

func decodePayload(s string) (payload, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return payload{}, err
	}
	var p payload
	if ts, ok := raw["tags"].([]any); ok {
		for _, t := range ts {
			if tag, ok := t.(string); ok && strings.TrimSpace(tag) != "" {
				p.Tags = append(p.Tags, tag)
			}
		}
	}
	if s, ok := raw["summary"].(string); ok {
		p.Summary = strings.TrimSpace(s)
	}
	switch c := raw["confidence"].(type) {
	case float64:
		p.Confidence = c
	case string:
		if f, err := strconv.ParseFloat(c, 64); err == nil {
			p.Confidence = f
		}
	}
	return p, nil
}

func stripFences(s string) string {
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// extractObject returns the first balanced {...} group. This is a real
// bracket-matching scan, aware of string literals and escapes, so nested
// objects are handled correctly.
func extractObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", errors.New("no opening brace")
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", errors.New("unbalanced braces")
}
