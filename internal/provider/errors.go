package provider

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel markers for failure classification. Callers test with errors.Is;
// only ErrTransient failures are worth retrying.
var (
	// ErrTransient tags retryable noise: malformed or empty responses,
	// network hiccups, rate limiting.
	ErrTransient = errors.New("transient failure")
	// ErrNotFound tags a video that does not exist or is private.
	ErrNotFound = errors.New("video not found")
	// ErrNoCaptions tags a video that authoritatively has captions disabled.
	ErrNoCaptions = errors.New("captions disabled")
)

// Wrap builds an error carrying backend and operation context while tagging
// it with one of the sentinel markers above for later classification.
func Wrap(marker error, backend, operation string, err error) error {
	if marker == nil {
		marker = ErrTransient
	}
	detail := buildDetail(backend, operation)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsTransient reports whether the failure is worth retrying.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

func buildDetail(backend, operation string) string {
	parts := make([]string, 0, 2)
	if backend = strings.TrimSpace(backend); backend != "" {
		parts = append(parts, backend)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if len(parts) == 0 {
		return "provider failure"
	}
	return strings.Join(parts, ": ")
}
