// Package constants provides shared constants used throughout the intake codebase.
// This includes timeouts, retry policy, pagination sizes, and field limits that
// should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to external APIs
	DefaultHTTPTimeout = 30 * time.Second

	// RunTimeout is the timeout for a complete sync or verify run
	RunTimeout = 10 * time.Minute

	// RetryBackoff is the base backoff duration for retries
	RetryBackoff = 1 * time.Second

	// MaxRetryBackoff is the maximum backoff duration for retries
	MaxRetryBackoff = 30 * time.Second

	// StorePaceDelay is the pause between consecutive record-store requests.
	// The store API rate-limits at roughly 3 requests per second.
	StorePaceDelay = 350 * time.Millisecond
)

// Limit constants define various limits and capacities
const (
	// MaxRetries is the maximum number of retry attempts for failed requests
	MaxRetries = 3

	// DefaultPageSize is the number of items requested per page from
	// both the survey source and the record store
	DefaultPageSize = 100

	// MaxRichTextLength is the hard cap the record store places on a single
	// rich-text value. Longer values must be truncated before writing.
	MaxRichTextLength = 2000
)
