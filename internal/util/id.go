// Package util provides shared utility functions.
package util

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	// RandomSuffixLength is the number of random base-36 characters appended to a task ID.
	RandomSuffixLength = 5
	// DefaultShortIDLength is the default number of characters for short IDs.
	DefaultShortIDLength = 8
	// MaxAmbiguousCandidates is the max number of candidates to show in ambiguous error.
	MaxAmbiguousCandidates = 5
)

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Errors returned by ID resolution functions.
var (
	ErrAmbiguousID = errors.New("ambiguous ID prefix")
	ErrNotFound    = errors.New("not found")
)

// NewTaskID builds a task ID from the creation time in base 36 followed by a
// short random base-36 suffix. IDs sort roughly by creation time; uniqueness
// is probabilistic.
func NewTaskID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 36) + randomBase36(RandomSuffixLength)
}

func randomBase36(n int) string {
	var sb strings.Builder
	sb.Grow(n)
	limit := big.NewInt(int64(len(base36Alphabet)))
	for range n {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// crypto/rand does not fail on supported platforms; fall back to the clock.
			idx = big.NewInt(time.Now().UnixNano() % int64(len(base36Alphabet)))
		}
		sb.WriteByte(base36Alphabet[idx.Int64()])
	}
	return sb.String()
}

// ShortID returns a shortened version of an ID.
// If n is 0 or negative, DefaultShortIDLength (8) is used.
//
// Examples:
//
//	ShortID("lx3k9a2bq7f1z", 0) → "lx3k9a2b"
//	ShortID("lx3k9a2bq7f1z", 4) → "lx3k"
//	ShortID("abc", 20) → "abc" (no truncation if shorter)
func ShortID(id string, n int) string {
	if n <= 0 {
		n = DefaultShortIDLength
	}
	if len(id) <= n {
		return id
	}
	return id[:n]
}

// IDPrefixResolver provides methods to find IDs by prefix.
// This is implemented by the task service.
type IDPrefixResolver interface {
	FindTaskIDsByPrefix(ctx context.Context, prefix string) ([]string, error)
}

// ResolveTaskID resolves a task ID or prefix to a full task ID.
//
// Resolution rules:
//  1. If idOrPrefix matches a task ID exactly, return it.
//  2. If idOrPrefix matches exactly one task ID prefix, return that ID.
//  3. If multiple matches, return ErrAmbiguousID with candidates.
//  4. If nothing matches as typed, retry 1-3 with the lowercased input.
//  5. If no matches, return ErrNotFound.
//
// Matching is case-sensitive. Generated IDs are lowercase, so the lowercase
// retry only lets "LX3K" find "lx3k..." and never shadows a stored ID.
func ResolveTaskID(ctx context.Context, resolver IDPrefixResolver, idOrPrefix string) (string, error) {
	trimmed := strings.TrimSpace(idOrPrefix)
	if trimmed == "" {
		return "", fmt.Errorf("task ID: %w", ErrNotFound)
	}

	prefix := trimmed
	candidates, err := resolver.FindTaskIDsByPrefix(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("find task IDs: %w", err)
	}
	if lower := strings.ToLower(trimmed); len(candidates) == 0 && lower != trimmed {
		prefix = lower
		candidates, err = resolver.FindTaskIDsByPrefix(ctx, prefix)
		if err != nil {
			return "", fmt.Errorf("find task IDs: %w", err)
		}
	}

	for _, c := range candidates {
		if c == prefix {
			return c, nil
		}
	}

	return resolveFromCandidates(prefix, candidates, "task")
}

// resolveFromCandidates handles the common resolution logic.
func resolveFromCandidates(prefix string, candidates []string, entityType string) (string, error) {
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%s with prefix %q: %w", entityType, prefix, ErrNotFound)
	case 1:
		return candidates[0], nil
	default:
		shown := candidates
		if len(shown) > MaxAmbiguousCandidates {
			shown = shown[:MaxAmbiguousCandidates]
		}
		return "", fmt.Errorf("%w: prefix %q matches %d %ss: %v",
			ErrAmbiguousID, prefix, len(candidates), entityType, shown)
	}
}
