package youtube

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/promoscan/promoscan/models"
)

// QuotaExceededError is fatal to the in-flight operation; it carries the
// ledger snapshot so a client can decide whether to wait for the reset.
// Upstream marks the variant where the remote API rejected the call itself.
type QuotaExceededError struct {
	Status   models.QuotaStatus
	Upstream bool
}

func (e *QuotaExceededError) Error() string {
	if e.Upstream {
		return "YouTube API quota exceeded, try again after the daily reset"
	}
	return fmt.Sprintf("daily API quota exhausted: %s of %s units used, resets at %s",
		humanize.Comma(e.Status.Used), humanize.Comma(e.Status.Limit), e.Status.ResetsAt)
}

// UnresolvableError means no resolution path could map the reference to a
// channel ID. Never retried.
type UnresolvableError struct {
	Input string
}

func (e *UnresolvableError) Error() string {
	return "unable to resolve a channel ID from the provided URL or handle"
}

// UpstreamError is any other non-success upstream response, message already
// truncated for propagation.
type UpstreamError struct {
	Op      string
	Code    int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: upstream HTTP %d: %s", e.Op, e.Code, e.Message)
}

func truncateMessage(msg string, max int) string {
	if len(msg) > max {
		return msg[:max]
	}
	return msg
}
