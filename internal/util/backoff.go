// ABOUTME: Backoff helper for retrying calls against model backends
// ABOUTME: Used by the LLM client and audio transcriber for consistent retry behavior
package util

import (
	"math/rand/v2"
	"time"
)

const maxBackoff = 30 * time.Second

// Backoff returns the exponential delay before the given retry attempt,
// with random jitter of up to ±25%. Attempt 0 means "first try" and
// returns zero delay.
func Backoff(base time.Duration, attempt int) time.Duration {
	if attempt <= 0 || base <= 0 {
		return 0
	}
	if attempt > 30 {
		attempt = 30
	}
	delay := base * time.Duration(1<<uint(attempt))
	if delay > maxBackoff || delay <= 0 {
		delay = maxBackoff
	}
	jitter := time.Duration(rand.Int64N(int64(delay)/2)) - delay/4
	return delay + jitter
}
