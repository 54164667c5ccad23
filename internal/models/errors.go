package models

import (
	"errors"
)

var (
	ErrNotFound = errors.New("not found")

	// Input validation failures. These are hard errors: they block the
	// tagging call before any remote attempt and propagate to the caller.
	ErrInputTooShort = errors.New("input too short: title and note must total at least 3 characters")
	ErrInputTooLarge = errors.New("input too large: title is limited to 2000 and note to 8000 characters")

	// Gate-level policy rejections. Also hard errors; everything else that
	// can go wrong during tagging is absorbed into a fallback TagResult.
	ErrEmptyTags        = errors.New("empty tag set: refusing to persist an untagged item")
	ErrFallbackRejected = errors.New("fallback result rejected: heuristic-only tags need explicit approval")
)
